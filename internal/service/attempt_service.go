package service

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/util"
	"campus_lms_backend/pkg/monitoring"
	"errors"
	"time"

	"gorm.io/gorm"
)

// AttemptQuizStore 答题路径需要的测验读取能力
type AttemptQuizStore interface {
	FindQuizByID(id string) (*model.Quiz, error)
	ListQuestions(quizID string) ([]model.Question, error)
}

// AttemptStore 尝试与答案的持久化。UpsertAnswer 以 (attempt, question) 为键原子覆盖；
// FinalizeAttempt 只在观察到 IN_PROGRESS 时迁移到 SUBMITTED，并发提交的失败方拿到 false。
type AttemptStore interface {
	CreateAttempt(attempt *model.QuizAttempt) error
	FindAttemptByID(id string) (*model.QuizAttempt, error)
	FindByQuizAndStudent(quizID string, studentID uint) (*model.QuizAttempt, error)
	UpsertAnswer(attemptID, questionID string, patch model.AnswerPatch) error
	ListAnswers(attemptID string) ([]model.Answer, error)
	FinalizeAttempt(attemptID string, score int, percentage float64, submittedAt time.Time, graded []model.Answer) (bool, error)
}

type EnrollmentChecker interface {
	IsActivelyEnrolled(studentID, offeringID uint) (bool, error)
}

// AttemptService 答题生命周期：开始、自动保存、到点强制提交、显式提交、查询结果。
// 计时是轮询式的——超时只在下一次读写请求进来时被发现并处理，没有服务端定时器。
type AttemptService struct {
	Quizzes     AttemptQuizStore
	Attempts    AttemptStore
	Enrollments EnrollmentChecker

	now func() time.Time
}

func NewAttemptService(quizzes AttemptQuizStore, attempts AttemptStore, enrollments EnrollmentChecker) *AttemptService {
	return &AttemptService{
		Quizzes:     quizzes,
		Attempts:    attempts,
		Enrollments: enrollments,
		now:         time.Now,
	}
}

// StartAttempt 幂等开始：已有未完成的尝试直接返回，已完成的拒绝重考。
func (s *AttemptService) StartAttempt(quizID string, studentID uint) (*model.QuizAttempt, error) {
	quiz, err := s.Quizzes.FindQuizByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if quiz.Status != model.QuizPublished {
		return nil, util.ErrQuizNotPublished
	}

	now := s.now()
	if quiz.StartTime != nil && now.Before(*quiz.StartTime) {
		return nil, util.ErrQuizNotYetOpen
	}
	if quiz.EndTime != nil && now.After(*quiz.EndTime) {
		return nil, util.ErrQuizWindowClosed
	}

	enrolled, err := s.Enrollments.IsActivelyEnrolled(studentID, quiz.OfferingID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	existing, _ := s.Attempts.FindByQuizAndStudent(quizID, studentID)
	if existing != nil {
		if existing.Status != model.AttemptInProgress {
			return nil, util.ErrAttemptCompleted
		}
		return existing, nil
	}

	attempt := &model.QuizAttempt{
		QuizID:    quizID,
		StudentID: studentID,
		Status:    model.AttemptInProgress,
		StartedAt: now,
	}
	if err := s.Attempts.CreateAttempt(attempt); err != nil {
		// 并发开始时输掉 (quiz, student) 唯一键竞争的一方复用赢家的行
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, ferr := s.Attempts.FindByQuizAndStudent(quizID, studentID)
			if ferr != nil {
				return nil, err
			}
			if winner.Status != model.AttemptInProgress {
				return nil, util.ErrAttemptCompleted
			}
			return winner, nil
		}
		return nil, err
	}
	return attempt, nil
}

// GetAttemptView 返回脱敏答题视图。每次读取都做超时检查：
// 过了限时就地强制提交，然后报超时而不是返回题目。
func (s *AttemptService) GetAttemptView(attemptID string, studentID uint) (*TakingView, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, util.ErrAttemptCompleted
	}

	quiz, err := s.Quizzes.FindQuizByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if util.IsTimeExpired(attempt.StartedAt, quiz.DurationMinutes, now) {
		if err := s.forceSubmit(attempt, quiz); err != nil {
			return nil, err
		}
		return nil, util.ErrAttemptExpired
	}

	questions, err := s.Quizzes.ListQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}
	answers, err := s.Attempts.ListAnswers(attempt.ID)
	if err != nil {
		return nil, err
	}

	remaining := util.RemainingSeconds(attempt.StartedAt, quiz.DurationMinutes, now)
	return BuildTakingView(quiz, questions, answers, attempt, remaining), nil
}

// SaveAnswer 自动保存。两个字段都为空也是合法保存（代表"未作答"），不评分。
func (s *AttemptService) SaveAnswer(attemptID string, studentID uint, questionID string, selectedOptionID, textAnswer *string) error {
	attempt, err := s.loadOwnedAttempt(attemptID, studentID)
	if err != nil {
		return err
	}
	if attempt.Status != model.AttemptInProgress {
		return util.ErrAttemptCompleted
	}

	quiz, err := s.Quizzes.FindQuizByID(attempt.QuizID)
	if err != nil {
		return err
	}

	now := s.now()
	if util.IsTimeExpired(attempt.StartedAt, quiz.DurationMinutes, now) {
		if err := s.forceSubmit(attempt, quiz); err != nil {
			return err
		}
		return util.ErrAttemptExpired
	}

	questions, err := s.Quizzes.ListQuestions(quiz.ID)
	if err != nil {
		return err
	}
	known := false
	for _, q := range questions {
		if q.ID == questionID {
			known = true
			break
		}
	}
	if !known {
		return util.ErrQuestionNotFound
	}

	return s.Attempts.UpsertAnswer(attempt.ID, questionID, model.AnswerPatch{
		SelectedOptionID: selectedOptionID,
		TextAnswer:       textAnswer,
		AnsweredAt:       now,
	})
}

// AnswerSubmission 显式提交时携带的整卷答案
type AnswerSubmission struct {
	QuestionID       string  `json:"questionId" binding:"required"`
	SelectedOptionID *string `json:"selectedOptionId"`
	TextAnswer       *string `json:"textAnswer"`
}

type SubmitResult struct {
	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`
}

// SubmitQuiz 落库整卷答案（覆盖此前的自动保存），对全部已存答案重新评分汇总，
// 原子迁移到 SUBMITTED。竞争提交的失败方报 ErrAttemptCompleted，绝不重复计分。
func (s *AttemptService) SubmitQuiz(attemptID string, studentID uint, submissions []AnswerSubmission) (*SubmitResult, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, util.ErrAttemptCompleted
	}

	quiz, err := s.Quizzes.FindQuizByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	// 限时已过的迟到提交不接收新答案，只对已自动保存的内容强制提交
	now := s.now()
	if util.IsTimeExpired(attempt.StartedAt, quiz.DurationMinutes, now) {
		if err := s.forceSubmit(attempt, quiz); err != nil {
			return nil, err
		}
		return nil, util.ErrAttemptExpired
	}

	questions, err := s.Quizzes.ListQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	for _, sub := range submissions {
		// 不属于本测验的题目 id 直接跳过
		if !known[sub.QuestionID] {
			continue
		}
		if err := s.Attempts.UpsertAnswer(attempt.ID, sub.QuestionID, model.AnswerPatch{
			SelectedOptionID: sub.SelectedOptionID,
			TextAnswer:       sub.TextAnswer,
			AnsweredAt:       now,
		}); err != nil {
			return nil, err
		}
	}

	score, percentage, err := s.finalize(attempt.ID, questions, now, "manual")
	if err != nil {
		return nil, err
	}
	return &SubmitResult{Score: score, Percentage: percentage}, nil
}

// forceSubmit 超时触发的强制提交：只用已自动保存的答案。
// 状态守卫输掉时静默返回，防御重复触发。
func (s *AttemptService) forceSubmit(attempt *model.QuizAttempt, quiz *model.Quiz) error {
	questions, err := s.Quizzes.ListQuestions(quiz.ID)
	if err != nil {
		return err
	}
	_, _, err = s.finalize(attempt.ID, questions, s.now(), "forced")
	if err != nil && errors.Is(err, util.ErrAttemptCompleted) {
		return nil
	}
	return err
}

func (s *AttemptService) finalize(attemptID string, questions []model.Question, submittedAt time.Time, trigger string) (int, float64, error) {
	answers, err := s.Attempts.ListAnswers(attemptID)
	if err != nil {
		return 0, 0, err
	}

	score, percentage, graded := GradeAttempt(questions, answers)

	transitioned, err := s.Attempts.FinalizeAttempt(attemptID, score, percentage, submittedAt, graded)
	if err != nil {
		return 0, 0, err
	}
	if !transitioned {
		return 0, 0, util.ErrAttemptCompleted
	}

	monitoring.AttemptSubmissions.WithLabelValues(trigger).Inc()
	return score, percentage, nil
}

type RemainingTime struct {
	RemainingSeconds int  `json:"remainingSeconds"`
	IsExpired        bool `json:"isExpired"`
	Unlimited        bool `json:"unlimited"`
}

// GetRemainingTime 纯读取，不触发任何迁移；要基于超时做动作得走视图或提交接口。
func (s *AttemptService) GetRemainingTime(attemptID string, studentID uint) (*RemainingTime, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptInProgress {
		return &RemainingTime{RemainingSeconds: 0, IsExpired: true}, nil
	}

	quiz, err := s.Quizzes.FindQuizByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	// 不限时的测验没有倒计时，避免被前端当成剩余 0 秒
	if quiz.DurationMinutes <= 0 {
		return &RemainingTime{Unlimited: true}, nil
	}

	remaining := util.RemainingSeconds(attempt.StartedAt, quiz.DurationMinutes, s.now())
	return &RemainingTime{
		RemainingSeconds: remaining,
		IsExpired:        util.IsTimeExpired(attempt.StartedAt, quiz.DurationMinutes, s.now()),
	}, nil
}

// GetQuizResult 结果视图，受 showResults / allowReview 两个开关约束。
func (s *AttemptService) GetQuizResult(attemptID string, studentID uint) (*ResultView, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Status == model.AttemptInProgress {
		return nil, util.ErrAttemptInProgress
	}

	quiz, err := s.Quizzes.FindQuizByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}
	if !quiz.ShowResults {
		return nil, util.ErrResultsNotAvailable
	}

	questions, err := s.Quizzes.ListQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}
	answers, err := s.Attempts.ListAnswers(attempt.ID)
	if err != nil {
		return nil, err
	}

	return BuildResultView(quiz, questions, answers, attempt), nil
}

func (s *AttemptService) loadOwnedAttempt(attemptID string, studentID uint) (*model.QuizAttempt, error) {
	attempt, err := s.Attempts.FindAttemptByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrAttemptNotOwned
	}
	return attempt, nil
}
