package service

import (
	"campus_lms_backend/internal/model"
	"testing"
	"time"
)

func reviewFixture(allowReview bool) (*model.Quiz, []model.Question, []model.Answer, *model.QuizAttempt) {
	quiz := &model.Quiz{
		UUIDBase:     model.UUIDBase{ID: "quiz-1"},
		Title:        "期中测验",
		TotalPoints:  10,
		PassingScore: 60,
		ShowResults:  true,
		AllowReview:  allowReview,
	}
	questions := []model.Question{
		{
			UUIDBase:    model.UUIDBase{ID: "q1"},
			Type:        model.MultipleChoice,
			Text:        "栈的特性是？",
			Points:      10,
			Explanation: "后进先出",
			Options: []model.Option{
				{UUIDBase: model.UUIDBase{ID: "a"}, Text: "LIFO", IsCorrect: true},
				{UUIDBase: model.UUIDBase{ID: "b"}, Text: "FIFO"},
			},
		},
	}
	correct := true
	answers := []model.Answer{
		{QuestionID: "q1", SelectedOptionID: strPtr("a"), IsCorrect: &correct, PointsEarned: 10},
	}
	score := 10
	percentage := 100.0
	submittedAt := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	attempt := &model.QuizAttempt{
		UUIDBase:    model.UUIDBase{ID: "att-1"},
		QuizID:      "quiz-1",
		StudentID:   7,
		Status:      model.AttemptSubmitted,
		Score:       &score,
		Percentage:  &percentage,
		SubmittedAt: &submittedAt,
	}
	return quiz, questions, answers, attempt
}

func TestBuildTakingViewMergesSavedAnswers(t *testing.T) {
	quiz, questions, _, attempt := reviewFixture(false)
	saved := []model.Answer{{QuestionID: "q1", SelectedOptionID: strPtr("b")}}

	view := BuildTakingView(quiz, questions, saved, attempt, 600)
	if len(view.Questions) != 1 {
		t.Fatalf("questions = %d", len(view.Questions))
	}
	sa := view.Questions[0].SavedAnswer
	if sa == nil || sa.SelectedOptionID == nil || *sa.SelectedOptionID != "b" {
		t.Errorf("saved answer not merged: %+v", sa)
	}
	if view.RemainingSeconds != 600 {
		t.Errorf("remaining = %d", view.RemainingSeconds)
	}
}

func TestBuildTakingViewShuffleKeepsAllItems(t *testing.T) {
	quiz, questions, _, attempt := reviewFixture(false)
	quiz.ShuffleQuestions = true
	quiz.ShuffleOptions = true

	view := BuildTakingView(quiz, questions, nil, attempt, 0)
	if len(view.Questions) != len(questions) {
		t.Fatalf("shuffle lost questions: %d vs %d", len(view.Questions), len(questions))
	}
	seen := map[string]bool{}
	for _, o := range view.Questions[0].Options {
		seen[o.ID] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("shuffle lost options: %v", seen)
	}
}

func TestResultViewWithReview(t *testing.T) {
	quiz, questions, answers, attempt := reviewFixture(true)

	view := BuildResultView(quiz, questions, answers, attempt)
	if !view.Passed {
		t.Error("100%% should pass at passing score 60")
	}
	q := view.Questions[0]
	if q.CorrectOptionID != "a" {
		t.Errorf("correctOptionId = %q, want a", q.CorrectOptionID)
	}
	if q.Explanation == "" {
		t.Error("explanation missing with allowReview=true")
	}
	foundCorrect := false
	for _, o := range q.Options {
		if o.IsCorrect {
			foundCorrect = true
		}
	}
	if !foundCorrect {
		t.Error("option correctness missing with allowReview=true")
	}
}

func TestResultViewWithoutReviewHidesAnswerKey(t *testing.T) {
	quiz, questions, answers, attempt := reviewFixture(false)

	view := BuildResultView(quiz, questions, answers, attempt)
	q := view.Questions[0]
	if q.CorrectOptionID != "" {
		t.Errorf("correctOptionId leaked: %q", q.CorrectOptionID)
	}
	if q.Explanation != "" {
		t.Errorf("explanation leaked: %q", q.Explanation)
	}
	for _, o := range q.Options {
		if o.IsCorrect {
			t.Errorf("option %s leaked isCorrect with allowReview=false", o.ID)
		}
	}
	// 自己的得分信息仍然可见
	if q.PointsEarned != 10 || q.IsCorrect == nil {
		t.Errorf("own grading info should remain visible: %+v", q)
	}
}

func TestResultViewFailedBelowPassingScore(t *testing.T) {
	quiz, questions, answers, attempt := reviewFixture(true)
	percentage := 50.0
	attempt.Percentage = &percentage

	view := BuildResultView(quiz, questions, answers, attempt)
	if view.Passed {
		t.Error("50%% must not pass at passing score 60")
	}
}
