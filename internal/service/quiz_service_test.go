package service

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestValidateQuestion(t *testing.T) {
	mc := func(points int, opts ...OptionReq) QuestionReq {
		return QuestionReq{Type: model.MultipleChoice, Text: "q", Points: points, Options: opts}
	}

	tests := []struct {
		name    string
		req     QuestionReq
		wantErr bool
	}{
		{
			"valid multiple choice",
			mc(5, OptionReq{Text: "a", IsCorrect: true}, OptionReq{Text: "b"}),
			false,
		},
		{
			"multiple choice with one option",
			mc(5, OptionReq{Text: "a", IsCorrect: true}),
			true,
		},
		{
			"multiple choice without correct option",
			mc(5, OptionReq{Text: "a"}, OptionReq{Text: "b"}),
			true,
		},
		{
			"zero points",
			mc(0, OptionReq{Text: "a", IsCorrect: true}, OptionReq{Text: "b"}),
			true,
		},
		{
			"negative points",
			mc(-3, OptionReq{Text: "a", IsCorrect: true}, OptionReq{Text: "b"}),
			true,
		},
		{
			"valid true/false",
			QuestionReq{Type: model.TrueFalse, Text: "q", Points: 2, Options: []OptionReq{
				{Text: "True", IsCorrect: true}, {Text: "False"},
			}},
			false,
		},
		{
			"true/false with three options",
			QuestionReq{Type: model.TrueFalse, Text: "q", Points: 2, Options: []OptionReq{
				{Text: "True", IsCorrect: true}, {Text: "False"}, {Text: "Maybe"},
			}},
			true,
		},
		{
			"true/false with two correct options",
			QuestionReq{Type: model.TrueFalse, Text: "q", Points: 2, Options: []OptionReq{
				{Text: "True", IsCorrect: true}, {Text: "False", IsCorrect: true},
			}},
			true,
		},
		{
			"valid short answer",
			QuestionReq{Type: model.ShortAnswer, Text: "q", Points: 10},
			false,
		},
		{
			"short answer with options",
			QuestionReq{Type: model.ShortAnswer, Text: "q", Points: 10, Options: []OptionReq{{Text: "a"}}},
			true,
		},
		{
			"unknown type",
			QuestionReq{Type: "ESSAY", Text: "q", Points: 5},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuestion() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// 内存假仓库，遵守 QuizAuthoringStore 的契约：
// 每个题目写操作结束时 totalPoints == sum(points)，删除后 order 压实。

type fakeAuthoringStore struct {
	quizzes   map[string]*model.Quiz
	questions map[string][]model.Question
}

func newFakeAuthoringStore() *fakeAuthoringStore {
	return &fakeAuthoringStore{
		quizzes:   map[string]*model.Quiz{},
		questions: map[string][]model.Question{},
	}
}

func (f *fakeAuthoringStore) CreateQuiz(quiz *model.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = model.GenerateUUID()
	}
	f.quizzes[quiz.ID] = quiz
	return nil
}

func (f *fakeAuthoringStore) FindQuizByID(id string) (*model.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (f *fakeAuthoringStore) UpdateQuiz(quiz *model.Quiz) error {
	f.quizzes[quiz.ID] = quiz
	return nil
}

func (f *fakeAuthoringStore) DeleteQuiz(id string) error {
	delete(f.quizzes, id)
	delete(f.questions, id)
	return nil
}

func (f *fakeAuthoringStore) ListQuizzes(offeringID uint, page, limit int) ([]repository.QuizListRow, int64, error) {
	return nil, 0, nil
}

func (f *fakeAuthoringStore) ListPublishedByOffering(offeringID uint) ([]model.Quiz, error) {
	return nil, nil
}

func (f *fakeAuthoringStore) CountQuestions(quizID string) (int64, error) {
	return int64(len(f.questions[quizID])), nil
}

func (f *fakeAuthoringStore) CreateQuestion(q *model.Question) error {
	if q.ID == "" {
		q.ID = model.GenerateUUID()
	}
	f.questions[q.QuizID] = append(f.questions[q.QuizID], *q)
	f.recomputeTotalPoints(q.QuizID)
	return nil
}

func (f *fakeAuthoringStore) FindQuestionByID(id string) (*model.Question, error) {
	for _, qs := range f.questions {
		for i := range qs {
			if qs[i].ID == id {
				cp := qs[i]
				return &cp, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthoringStore) ReplaceQuestion(q *model.Question) error {
	qs := f.questions[q.QuizID]
	for i := range qs {
		if qs[i].ID == q.ID {
			qs[i] = *q
			f.recomputeTotalPoints(q.QuizID)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAuthoringStore) DeleteQuestion(quizID, questionID string) error {
	qs := f.questions[quizID]
	out := qs[:0]
	for i := range qs {
		if qs[i].ID != questionID {
			out = append(out, qs[i])
		}
	}
	for i := range out {
		out[i].Order = i
	}
	f.questions[quizID] = out
	f.recomputeTotalPoints(quizID)
	return nil
}

func (f *fakeAuthoringStore) ListQuestions(quizID string) ([]model.Question, error) {
	return f.questions[quizID], nil
}

func (f *fakeAuthoringStore) recomputeTotalPoints(quizID string) {
	sum := 0
	for _, q := range f.questions[quizID] {
		sum += q.Points
	}
	if quiz, ok := f.quizzes[quizID]; ok {
		quiz.TotalPoints = sum
	}
}

func newAuthoringService(t *testing.T) (*QuizService, *fakeAuthoringStore, *model.Quiz) {
	t.Helper()
	store := newFakeAuthoringStore()
	svc := NewQuizService(store, nil, nil, nil)

	title := "算法基础期中"
	quiz, err := svc.CreateQuiz(1, 2, QuizReq{Title: &title})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return svc, store, quiz
}

func mcReq(points int) QuestionReq {
	return QuestionReq{
		Type:   model.MultipleChoice,
		Text:   "q",
		Points: points,
		Options: []OptionReq{
			{Text: "a", IsCorrect: true},
			{Text: "b"},
		},
	}
}

func TestAddQuestionMaintainsTotalPoints(t *testing.T) {
	svc, _, quiz := newAuthoringService(t)

	if _, err := svc.AddQuestion(quiz.ID, mcReq(4)); err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := svc.AddQuestion(quiz.ID, mcReq(6))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if quiz.TotalPoints != 10 {
		t.Errorf("totalPoints = %d, want 10", quiz.TotalPoints)
	}
	if second.Order != 1 {
		t.Errorf("order = %d, want 1", second.Order)
	}
}

func TestUpdateQuestionMaintainsTotalPoints(t *testing.T) {
	svc, _, quiz := newAuthoringService(t)

	q, err := svc.AddQuestion(quiz.ID, mcReq(4))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddQuestion(quiz.ID, mcReq(6)); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.UpdateQuestion(quiz.ID, q.ID, mcReq(9)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if quiz.TotalPoints != 15 {
		t.Errorf("totalPoints = %d, want 15", quiz.TotalPoints)
	}
}

func TestDeleteQuestionMaintainsTotalPointsAndOrder(t *testing.T) {
	svc, store, quiz := newAuthoringService(t)

	first, _ := svc.AddQuestion(quiz.ID, mcReq(4))
	svc.AddQuestion(quiz.ID, mcReq(6))
	svc.AddQuestion(quiz.ID, mcReq(5))

	if err := svc.DeleteQuestion(quiz.ID, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if quiz.TotalPoints != 11 {
		t.Errorf("totalPoints = %d, want 11", quiz.TotalPoints)
	}
	// 剩余题目压实为 0 起始的稠密序
	qs, _ := store.ListQuestions(quiz.ID)
	for i, q := range qs {
		if q.Order != i {
			t.Errorf("question %d order = %d, want %d", i, q.Order, i)
		}
	}
}

func TestQuestionMutationsRejectedAfterPublish(t *testing.T) {
	svc, store, quiz := newAuthoringService(t)

	q, err := svc.AddQuestion(quiz.ID, mcReq(4))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	store.quizzes[quiz.ID].Status = model.QuizPublished

	if _, err := svc.AddQuestion(quiz.ID, mcReq(6)); !errors.Is(err, util.ErrQuizNotEditable) {
		t.Errorf("add err = %v, want ErrQuizNotEditable", err)
	}
	if _, err := svc.UpdateQuestion(quiz.ID, q.ID, mcReq(9)); !errors.Is(err, util.ErrQuizNotEditable) {
		t.Errorf("update err = %v, want ErrQuizNotEditable", err)
	}
	if err := svc.DeleteQuestion(quiz.ID, q.ID); !errors.Is(err, util.ErrQuizNotEditable) {
		t.Errorf("delete err = %v, want ErrQuizNotEditable", err)
	}
	if quiz.TotalPoints != 4 {
		t.Errorf("totalPoints = %d, want 4 unchanged", quiz.TotalPoints)
	}
}
