package service

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"
	"errors"
	"fmt"
	"time"
)

// QuizAuthoringStore 出题路径的持久化。题目的增、改、删各自在一个事务内完成，
// 并在同一事务内把 totalPoints 维持为当前题目分值之和；删除后压实 order。
type QuizAuthoringStore interface {
	CreateQuiz(quiz *model.Quiz) error
	FindQuizByID(id string) (*model.Quiz, error)
	UpdateQuiz(quiz *model.Quiz) error
	DeleteQuiz(id string) error
	ListQuizzes(offeringID uint, page, limit int) ([]repository.QuizListRow, int64, error)
	ListPublishedByOffering(offeringID uint) ([]model.Quiz, error)
	CountQuestions(quizID string) (int64, error)
	CreateQuestion(q *model.Question) error
	FindQuestionByID(id string) (*model.Question, error)
	ReplaceQuestion(q *model.Question) error
	DeleteQuestion(quizID, questionID string) error
	ListQuestions(quizID string) ([]model.Question, error)
}

// StudentRoster 发布通知的收件人来源
type StudentRoster interface {
	ListActiveStudentIDs(offeringID uint) ([]uint, error)
}

type QuizService struct {
	Repo        QuizAuthoringStore
	Enrollments StudentRoster
	Notifier    *NotificationService
	AI          *AIService
}

func NewQuizService(repo QuizAuthoringStore, enrollments StudentRoster, notifier *NotificationService, ai *AIService) *QuizService {
	return &QuizService{Repo: repo, Enrollments: enrollments, Notifier: notifier, AI: ai}
}

type QuizReq struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	DurationMinutes  *int       `json:"durationMinutes"`
	PassingScore     *int       `json:"passingScore"`
	ShuffleQuestions *bool      `json:"shuffleQuestions"`
	ShuffleOptions   *bool      `json:"shuffleOptions"`
	ShowResults      *bool      `json:"showResults"`
	AllowReview      *bool      `json:"allowReview"`
	StartTime        *time.Time `json:"startTime"`
	EndTime          *time.Time `json:"endTime"`
}

type OptionReq struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionReq struct {
	Type        model.QuestionType `json:"type" binding:"required"`
	Difficulty  string             `json:"difficulty"`
	Text        string             `json:"text" binding:"required"`
	Explanation string             `json:"explanation"`
	Points      int                `json:"points"`
	Options     []OptionReq        `json:"options"`
}

func (s *QuizService) CreateQuiz(offeringID, creatorID uint, req QuizReq) (*model.Quiz, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}

	quiz := &model.Quiz{
		OfferingID: offeringID,
		CreatorID:  creatorID,
		Title:      *req.Title,
		Status:     model.QuizDraft,
	}
	applyQuizReq(quiz, req)

	if err := s.Repo.CreateQuiz(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// UpdateQuiz 仅 DRAFT 状态可改，发布后的内容不可变
func (s *QuizService) UpdateQuiz(quizID string, req QuizReq) (*model.Quiz, error) {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if quiz.Status != model.QuizDraft {
		return nil, util.ErrQuizNotEditable
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	applyQuizReq(quiz, req)

	if err := s.Repo.UpdateQuiz(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func applyQuizReq(quiz *model.Quiz, req QuizReq) {
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		quiz.DurationMinutes = *req.DurationMinutes
	}
	if req.PassingScore != nil {
		quiz.PassingScore = *req.PassingScore
	}
	if req.ShuffleQuestions != nil {
		quiz.ShuffleQuestions = *req.ShuffleQuestions
	}
	if req.ShuffleOptions != nil {
		quiz.ShuffleOptions = *req.ShuffleOptions
	}
	if req.ShowResults != nil {
		quiz.ShowResults = *req.ShowResults
	}
	if req.AllowReview != nil {
		quiz.AllowReview = *req.AllowReview
	}
	if req.StartTime != nil {
		quiz.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		quiz.EndTime = req.EndTime
	}
}

func (s *QuizService) DeleteQuiz(quizID string) error {
	if _, err := s.Repo.FindQuizByID(quizID); err != nil {
		return util.ErrQuizNotFound
	}
	return s.Repo.DeleteQuiz(quizID)
}

func (s *QuizService) GetQuiz(quizID string) (*model.Quiz, []model.Question, error) {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return nil, nil, util.ErrQuizNotFound
	}
	qs, err := s.Repo.ListQuestions(quizID)
	return quiz, qs, err
}

func (s *QuizService) ListQuizzes(offeringID uint, page, limit int) ([]repository.QuizListRow, int64, error) {
	return s.Repo.ListQuizzes(offeringID, page, limit)
}

func (s *QuizService) ListPublishedForStudent(offeringID uint) ([]model.Quiz, error) {
	return s.Repo.ListPublishedByOffering(offeringID)
}

// ValidateQuestion 按题型校验：单选题至少 2 个选项且至少 1 个正确；
// 判断题恰好 2 个选项且恰好 1 个正确；简答题没有选项。分值必须为正。
func ValidateQuestion(req QuestionReq) error {
	if req.Points <= 0 {
		return errors.New("question points must be positive")
	}

	correct := 0
	for _, o := range req.Options {
		if o.IsCorrect {
			correct++
		}
	}

	switch req.Type {
	case model.MultipleChoice:
		if len(req.Options) < 2 {
			return errors.New("multiple choice question requires at least 2 options")
		}
		if correct < 1 {
			return errors.New("multiple choice question requires a correct option")
		}
	case model.TrueFalse:
		if len(req.Options) != 2 {
			return errors.New("true/false question requires exactly 2 options")
		}
		if correct != 1 {
			return errors.New("true/false question requires exactly 1 correct option")
		}
	case model.ShortAnswer:
		if len(req.Options) != 0 {
			return errors.New("short answer question cannot have options")
		}
	default:
		return fmt.Errorf("unknown question type: %s", req.Type)
	}
	return nil
}

func (s *QuizService) AddQuestion(quizID string, req QuestionReq) (*model.Question, error) {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if quiz.Status != model.QuizDraft {
		return nil, util.ErrQuizNotEditable
	}
	if err := ValidateQuestion(req); err != nil {
		return nil, err
	}

	count, err := s.Repo.CountQuestions(quizID)
	if err != nil {
		return nil, err
	}

	q := buildQuestion(quizID, req)
	q.Order = int(count)

	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuizService) UpdateQuestion(quizID, questionID string, req QuestionReq) (*model.Question, error) {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if quiz.Status != model.QuizDraft {
		return nil, util.ErrQuizNotEditable
	}

	existing, err := s.Repo.FindQuestionByID(questionID)
	if err != nil || existing.QuizID != quizID {
		return nil, util.ErrQuestionNotFound
	}
	if err := ValidateQuestion(req); err != nil {
		return nil, err
	}

	q := buildQuestion(quizID, req)
	q.ID = existing.ID
	q.Order = existing.Order
	q.CreatedAt = existing.CreatedAt

	if err := s.Repo.ReplaceQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuizService) DeleteQuestion(quizID, questionID string) error {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return util.ErrQuizNotFound
	}
	if quiz.Status != model.QuizDraft {
		return util.ErrQuizNotEditable
	}

	existing, err := s.Repo.FindQuestionByID(questionID)
	if err != nil || existing.QuizID != quizID {
		return util.ErrQuestionNotFound
	}
	return s.Repo.DeleteQuestion(quizID, questionID)
}

func buildQuestion(quizID string, req QuestionReq) *model.Question {
	q := &model.Question{
		QuizID:      quizID,
		Type:        req.Type,
		Difficulty:  req.Difficulty,
		Text:        req.Text,
		Explanation: req.Explanation,
		Points:      req.Points,
	}
	for i, o := range req.Options {
		q.Options = append(q.Options, model.Option{
			Text:      o.Text,
			IsCorrect: o.IsCorrect,
			Order:     i,
		})
	}
	return q
}

// Publish DRAFT -> PUBLISHED，至少要有一道题；发布后异步通知选课学生
func (s *QuizService) Publish(quizID string) (*model.Quiz, error) {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if quiz.Status != model.QuizDraft {
		return nil, util.ErrQuizNotEditable
	}

	count, err := s.Repo.CountQuestions(quizID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.New("cannot publish a quiz without questions")
	}

	quiz.Status = model.QuizPublished
	if err := s.Repo.UpdateQuiz(quiz); err != nil {
		return nil, err
	}

	// 发布通知是尽力而为，不影响发布本身
	if s.Notifier != nil {
		studentIDs, err := s.Enrollments.ListActiveStudentIDs(quiz.OfferingID)
		if err == nil {
			s.Notifier.Notify(studentIDs,
				"新测验发布: "+quiz.Title,
				fmt.Sprintf("测验《%s》已开放，限时 %d 分钟。", quiz.Title, quiz.DurationMinutes),
				"/quizzes/"+quiz.ID)
		}
	}

	return quiz, nil
}

// Close PUBLISHED -> CLOSED
func (s *QuizService) Close(quizID string) (*model.Quiz, error) {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if quiz.Status != model.QuizPublished {
		return nil, util.ErrQuizNotPublished
	}
	quiz.Status = model.QuizClosed
	if err := s.Repo.UpdateQuiz(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Reopen CLOSED -> PUBLISHED
func (s *QuizService) Reopen(quizID string) (*model.Quiz, error) {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if quiz.Status != model.QuizClosed {
		return nil, errors.New("only a closed quiz can be reopened")
	}
	quiz.Status = model.QuizPublished
	if err := s.Repo.UpdateQuiz(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// GenerateQuestions AI 生成题目草稿并入库，只在 DRAFT 状态允许。
// 生成结果走和人工录入完全相同的题型校验。
func (s *QuizService) GenerateQuestions(quizID, topic string, count int, qType model.QuestionType, difficulty string) ([]model.Question, error) {
	quiz, err := s.Repo.FindQuizByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if quiz.Status != model.QuizDraft {
		return nil, util.ErrQuizNotEditable
	}
	if s.AI == nil {
		return nil, errors.New("AI question generation is not configured")
	}

	drafts, err := s.AI.GenerateQuizQuestions(topic, count, qType, difficulty)
	if err != nil {
		return nil, err
	}

	created := make([]model.Question, 0, len(drafts))
	for _, draft := range drafts {
		if err := ValidateQuestion(draft); err != nil {
			// 丢弃不合格的生成结果，保留其余
			continue
		}
		q, err := s.AddQuestion(quizID, draft)
		if err != nil {
			return created, err
		}
		created = append(created, *q)
	}
	return created, nil
}
