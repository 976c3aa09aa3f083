package service

import (
	"campus_lms_backend/internal/model"
	"testing"
)

func strPtr(s string) *string { return &s }

func mcQuestion(id string, points int, correctOptID string, wrongOptIDs ...string) model.Question {
	q := model.Question{
		UUIDBase: model.UUIDBase{ID: id},
		Type:     model.MultipleChoice,
		Text:     "q",
		Points:   points,
	}
	q.Options = append(q.Options, model.Option{UUIDBase: model.UUIDBase{ID: correctOptID}, IsCorrect: true})
	for _, w := range wrongOptIDs {
		q.Options = append(q.Options, model.Option{UUIDBase: model.UUIDBase{ID: w}})
	}
	return q
}

func TestGradeAnswerMultipleChoice(t *testing.T) {
	q := mcQuestion("q1", 5, "optA", "optB", "optC")

	tests := []struct {
		name       string
		answer     *model.Answer
		wantOK     bool
		wantPoints int
	}{
		{"correct option", &model.Answer{SelectedOptionID: strPtr("optA")}, true, 5},
		{"wrong option", &model.Answer{SelectedOptionID: strPtr("optB")}, false, 0},
		{"unknown option id counts as wrong", &model.Answer{SelectedOptionID: strPtr("no-such-option")}, false, 0},
		{"no selection", &model.Answer{}, false, 0},
		{"nil answer", nil, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradeAnswer(&q, tt.answer)
			if got.IsCorrect == nil {
				t.Fatal("IsCorrect should never be nil for MULTIPLE_CHOICE")
			}
			if *got.IsCorrect != tt.wantOK {
				t.Errorf("IsCorrect = %v, want %v", *got.IsCorrect, tt.wantOK)
			}
			if got.PointsEarned != tt.wantPoints {
				t.Errorf("PointsEarned = %d, want %d", got.PointsEarned, tt.wantPoints)
			}
		})
	}
}

func TestGradeAnswerTrueFalse(t *testing.T) {
	q := model.Question{
		UUIDBase: model.UUIDBase{ID: "q1"},
		Type:     model.TrueFalse,
		Points:   2,
		Options: []model.Option{
			{UUIDBase: model.UUIDBase{ID: "t"}, Text: "True", IsCorrect: true},
			{UUIDBase: model.UUIDBase{ID: "f"}, Text: "False"},
		},
	}

	got := GradeAnswer(&q, &model.Answer{SelectedOptionID: strPtr("t")})
	if got.IsCorrect == nil || !*got.IsCorrect || got.PointsEarned != 2 {
		t.Errorf("true answer: got %+v", got)
	}

	got = GradeAnswer(&q, &model.Answer{SelectedOptionID: strPtr("f")})
	if got.IsCorrect == nil || *got.IsCorrect || got.PointsEarned != 0 {
		t.Errorf("false answer: got %+v", got)
	}
}

func TestGradeAnswerShortAnswerNeverAutoGraded(t *testing.T) {
	q := model.Question{UUIDBase: model.UUIDBase{ID: "q1"}, Type: model.ShortAnswer, Points: 10}

	got := GradeAnswer(&q, &model.Answer{TextAnswer: strPtr("some long essay")})
	if got.IsCorrect != nil {
		t.Errorf("SHORT_ANSWER IsCorrect = %v, want nil", *got.IsCorrect)
	}
	if got.PointsEarned != 0 {
		t.Errorf("SHORT_ANSWER PointsEarned = %d, want 0", got.PointsEarned)
	}
}

func TestGradeAttemptSumsAndPercentage(t *testing.T) {
	questions := []model.Question{
		mcQuestion("q1", 4, "q1a", "q1b"),
		mcQuestion("q2", 6, "q2a", "q2b"),
		{UUIDBase: model.UUIDBase{ID: "q3"}, Type: model.ShortAnswer, Points: 10},
	}
	answers := []model.Answer{
		{QuestionID: "q1", SelectedOptionID: strPtr("q1a")}, // +4
		{QuestionID: "q2", SelectedOptionID: strPtr("q2b")}, // +0
		{QuestionID: "q3", TextAnswer: strPtr("essay")},     // 人工评分
	}

	score, percentage, graded := GradeAttempt(questions, answers)
	if score != 4 {
		t.Errorf("score = %d, want 4", score)
	}
	if percentage != 20.0 {
		t.Errorf("percentage = %v, want 20", percentage)
	}
	if len(graded) != 3 {
		t.Fatalf("graded = %d answers, want 3", len(graded))
	}
	for _, g := range graded {
		if g.QuestionID == "q3" && g.IsCorrect != nil {
			t.Error("short answer was auto-graded")
		}
	}
}

func TestGradeAttemptSkipsUnknownQuestions(t *testing.T) {
	questions := []model.Question{mcQuestion("q1", 5, "a", "b")}
	answers := []model.Answer{
		{QuestionID: "q1", SelectedOptionID: strPtr("a")},
		{QuestionID: "phantom", SelectedOptionID: strPtr("a")},
	}

	score, _, graded := GradeAttempt(questions, answers)
	if score != 5 {
		t.Errorf("score = %d, want 5", score)
	}
	if len(graded) != 1 {
		t.Errorf("graded = %d, want 1 (phantom answer must be skipped)", len(graded))
	}
}

func TestGradeAttemptZeroTotalPoints(t *testing.T) {
	_, percentage, _ := GradeAttempt(nil, nil)
	if percentage != 0 {
		t.Errorf("percentage = %v, want 0 for empty quiz", percentage)
	}
}

func TestGradeAttemptDeterministic(t *testing.T) {
	questions := []model.Question{
		mcQuestion("q1", 3, "a", "b"),
		mcQuestion("q2", 7, "c", "d"),
	}
	answers := []model.Answer{
		{QuestionID: "q1", SelectedOptionID: strPtr("a")},
		{QuestionID: "q2", SelectedOptionID: strPtr("d")},
	}

	s1, p1, _ := GradeAttempt(questions, answers)
	for i := 0; i < 10; i++ {
		s2, p2, _ := GradeAttempt(questions, answers)
		if s1 != s2 || p1 != p2 {
			t.Fatalf("grading not deterministic: (%d, %v) vs (%d, %v)", s1, p1, s2, p2)
		}
	}
}
