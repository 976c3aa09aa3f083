package service

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/util"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

// 内存假仓库，行为对齐真实实现：找不到返回 gorm.ErrRecordNotFound，
// FinalizeAttempt 带状态守卫。

type fakeQuizStore struct {
	quizzes   map[string]*model.Quiz
	questions map[string][]model.Question
}

func (f *fakeQuizStore) FindQuizByID(id string) (*model.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (f *fakeQuizStore) ListQuestions(quizID string) ([]model.Question, error) {
	return f.questions[quizID], nil
}

type fakeAttemptStore struct {
	attempts map[string]*model.QuizAttempt
	answers  map[string]map[string]model.Answer // attemptID -> questionID -> answer

	beforeCreate func() // 在插入前执行，用来模拟并发竞争
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{
		attempts: map[string]*model.QuizAttempt{},
		answers:  map[string]map[string]model.Answer{},
	}
}

func (f *fakeAttemptStore) CreateAttempt(a *model.QuizAttempt) error {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	// 对齐真实表的 (quiz_id, student_id) 复合唯一键
	for _, ex := range f.attempts {
		if ex.QuizID == a.QuizID && ex.StudentID == a.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	if a.ID == "" {
		a.ID = model.GenerateUUID()
	}
	f.attempts[a.ID] = a
	return nil
}

func (f *fakeAttemptStore) FindAttemptByID(id string) (*model.QuizAttempt, error) {
	a, ok := f.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttemptStore) FindByQuizAndStudent(quizID string, studentID uint) (*model.QuizAttempt, error) {
	for _, a := range f.attempts {
		if a.QuizID == quizID && a.StudentID == studentID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttemptStore) UpsertAnswer(attemptID, questionID string, patch model.AnswerPatch) error {
	if f.answers[attemptID] == nil {
		f.answers[attemptID] = map[string]model.Answer{}
	}
	existing, ok := f.answers[attemptID][questionID]
	if !ok {
		existing = model.Answer{
			UUIDBase:   model.UUIDBase{ID: model.GenerateUUID()},
			AttemptID:  attemptID,
			QuestionID: questionID,
		}
	}
	existing.SelectedOptionID = patch.SelectedOptionID
	existing.TextAnswer = patch.TextAnswer
	existing.AnsweredAt = patch.AnsweredAt
	f.answers[attemptID][questionID] = existing
	return nil
}

func (f *fakeAttemptStore) ListAnswers(attemptID string) ([]model.Answer, error) {
	var out []model.Answer
	for _, a := range f.answers[attemptID] {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAttemptStore) FinalizeAttempt(attemptID string, score int, percentage float64, submittedAt time.Time, graded []model.Answer) (bool, error) {
	a, ok := f.attempts[attemptID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if a.Status != model.AttemptInProgress {
		return false, nil
	}
	a.Status = model.AttemptSubmitted
	a.Score = &score
	a.Percentage = &percentage
	a.SubmittedAt = &submittedAt
	for _, g := range graded {
		stored := f.answers[attemptID][g.QuestionID]
		stored.IsCorrect = g.IsCorrect
		stored.PointsEarned = g.PointsEarned
		f.answers[attemptID][g.QuestionID] = stored
	}
	return true, nil
}

type fakeEnrollments struct {
	enrolled map[uint]bool
}

func (f *fakeEnrollments) IsActivelyEnrolled(studentID, offeringID uint) (bool, error) {
	return f.enrolled[studentID], nil
}

const testQuizID = "quiz-1"

func newTestService(t *testing.T) (*AttemptService, *fakeQuizStore, *fakeAttemptStore, *time.Time) {
	t.Helper()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	quiz := &model.Quiz{
		UUIDBase:        model.UUIDBase{ID: testQuizID},
		OfferingID:      1,
		Title:           "数据结构第3章",
		Status:          model.QuizPublished,
		DurationMinutes: 30,
		TotalPoints:     10,
		PassingScore:    60,
		ShowResults:     true,
	}
	questions := []model.Question{
		mcQuestion("q1", 4, "q1a", "q1b"),
		mcQuestion("q2", 6, "q2a", "q2b"),
	}
	questions[0].QuizID = testQuizID
	questions[1].QuizID = testQuizID

	quizzes := &fakeQuizStore{
		quizzes:   map[string]*model.Quiz{testQuizID: quiz},
		questions: map[string][]model.Question{testQuizID: questions},
	}
	attempts := newFakeAttemptStore()
	enrollments := &fakeEnrollments{enrolled: map[uint]bool{7: true}}

	svc := NewAttemptService(quizzes, attempts, enrollments)
	clock := now
	svc.now = func() time.Time { return clock }
	return svc, quizzes, attempts, &clock
}

func TestStartAttemptIdempotent(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	first, err := svc.StartAttempt(testQuizID, 7)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	second, err := svc.StartAttempt(testQuizID, 7)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("second start created a new attempt: %s vs %s", first.ID, second.ID)
	}
}

func TestStartAttemptRejectsUnenrolled(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.StartAttempt(testQuizID, 99)
	if !errors.Is(err, util.ErrNotEnrolled) {
		t.Errorf("err = %v, want ErrNotEnrolled", err)
	}
}

func TestStartAttemptRejectsUnpublished(t *testing.T) {
	svc, quizzes, _, _ := newTestService(t)
	quizzes.quizzes[testQuizID].Status = model.QuizDraft

	_, err := svc.StartAttempt(testQuizID, 7)
	if !errors.Is(err, util.ErrQuizNotPublished) {
		t.Errorf("err = %v, want ErrQuizNotPublished", err)
	}
}

func TestStartAttemptRespectsWindow(t *testing.T) {
	svc, quizzes, _, clock := newTestService(t)
	quiz := quizzes.quizzes[testQuizID]

	future := clock.Add(time.Hour)
	quiz.StartTime = &future
	if _, err := svc.StartAttempt(testQuizID, 7); !errors.Is(err, util.ErrQuizNotYetOpen) {
		t.Errorf("before window: err = %v, want ErrQuizNotYetOpen", err)
	}

	past := clock.Add(-2 * time.Hour)
	almostPast := clock.Add(-time.Hour)
	quiz.StartTime = &past
	quiz.EndTime = &almostPast
	if _, err := svc.StartAttempt(testQuizID, 7); !errors.Is(err, util.ErrQuizWindowClosed) {
		t.Errorf("after window: err = %v, want ErrQuizWindowClosed", err)
	}
}

func TestStartAttemptRejectsCompleted(t *testing.T) {
	svc, _, attempts, _ := newTestService(t)

	attempt, err := svc.StartAttempt(testQuizID, 7)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	attempts.attempts[attempt.ID].Status = model.AttemptSubmitted

	if _, err := svc.StartAttempt(testQuizID, 7); !errors.Is(err, util.ErrAttemptCompleted) {
		t.Errorf("err = %v, want ErrAttemptCompleted", err)
	}
}

func TestStartAttemptConcurrentCreateReturnsWinner(t *testing.T) {
	svc, _, attempts, clock := newTestService(t)

	// 两个请求同时过了"没有已存在尝试"的检查，赢家先插入成功
	var winner *model.QuizAttempt
	attempts.beforeCreate = func() {
		winner = &model.QuizAttempt{
			UUIDBase:  model.UUIDBase{ID: model.GenerateUUID()},
			QuizID:    testQuizID,
			StudentID: 7,
			Status:    model.AttemptInProgress,
			StartedAt: *clock,
		}
		attempts.attempts[winner.ID] = winner
		attempts.beforeCreate = nil
	}

	got, err := svc.StartAttempt(testQuizID, 7)
	if err != nil {
		t.Fatalf("losing racer should get the winner's attempt, got %v", err)
	}
	if got.ID != winner.ID {
		t.Errorf("attempt = %s, want winner %s", got.ID, winner.ID)
	}
}

func TestStartAttemptConcurrentCreateAgainstTerminal(t *testing.T) {
	svc, _, attempts, clock := newTestService(t)

	attempts.beforeCreate = func() {
		done := &model.QuizAttempt{
			UUIDBase:  model.UUIDBase{ID: model.GenerateUUID()},
			QuizID:    testQuizID,
			StudentID: 7,
			Status:    model.AttemptSubmitted,
			StartedAt: *clock,
		}
		attempts.attempts[done.ID] = done
		attempts.beforeCreate = nil
	}

	if _, err := svc.StartAttempt(testQuizID, 7); !errors.Is(err, util.ErrAttemptCompleted) {
		t.Errorf("err = %v, want ErrAttemptCompleted", err)
	}
}

func TestTakingViewNeverLeaksCorrectness(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	attempt, err := svc.StartAttempt(testQuizID, 7)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	view, err := svc.GetAttemptView(attempt.ID, 7)
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if len(view.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(view.Questions))
	}
	// TakingOption 结构上就没有 isCorrect 字段；这里校验选项本体齐全
	for _, q := range view.Questions {
		if len(q.Options) != 2 {
			t.Errorf("question %s: options = %d, want 2", q.ID, len(q.Options))
		}
	}
	if view.RemainingSeconds != 30*60 {
		t.Errorf("remaining = %d, want %d", view.RemainingSeconds, 30*60)
	}
}

func TestViewOtherStudentsAttemptForbidden(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	if _, err := svc.GetAttemptView(attempt.ID, 8); !errors.Is(err, util.ErrAttemptNotOwned) {
		t.Errorf("err = %v, want ErrAttemptNotOwned", err)
	}
}

func TestSaveAnswerUpsertsByQuestion(t *testing.T) {
	svc, _, attempts, _ := newTestService(t)

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	if err := svc.SaveAnswer(attempt.ID, 7, "q1", strPtr("q1b"), nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	// 改答案：同题覆盖，不产生第二条
	if err := svc.SaveAnswer(attempt.ID, 7, "q1", strPtr("q1a"), nil); err != nil {
		t.Fatalf("re-save: %v", err)
	}

	stored := attempts.answers[attempt.ID]
	if len(stored) != 1 {
		t.Fatalf("answers = %d, want 1", len(stored))
	}
	if got := *stored["q1"].SelectedOptionID; got != "q1a" {
		t.Errorf("selected = %s, want q1a", got)
	}
}

func TestSaveAnswerUnknownQuestion(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	if err := svc.SaveAnswer(attempt.ID, 7, "phantom", strPtr("x"), nil); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Errorf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestSaveAnswerBothNilIsValid(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	if err := svc.SaveAnswer(attempt.ID, 7, "q1", nil, nil); err != nil {
		t.Errorf("clearing an answer should be valid, got %v", err)
	}
}

func TestSubmitQuizGradesAndTransitions(t *testing.T) {
	svc, _, attempts, _ := newTestService(t)

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	result, err := svc.SubmitQuiz(attempt.ID, 7, []AnswerSubmission{
		{QuestionID: "q1", SelectedOptionID: strPtr("q1a")}, // +4
		{QuestionID: "q2", SelectedOptionID: strPtr("q2b")}, // +0
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 4 {
		t.Errorf("score = %d, want 4", result.Score)
	}
	if result.Percentage != 40.0 {
		t.Errorf("percentage = %v, want 40", result.Percentage)
	}
	if attempts.attempts[attempt.ID].Status != model.AttemptSubmitted {
		t.Errorf("status = %s, want SUBMITTED", attempts.attempts[attempt.ID].Status)
	}
}

func TestDoubleSubmitRejected(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	if _, err := svc.SubmitQuiz(attempt.ID, 7, nil); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.SubmitQuiz(attempt.ID, 7, nil); !errors.Is(err, util.ErrAttemptCompleted) {
		t.Errorf("second submit err = %v, want ErrAttemptCompleted", err)
	}
}

func TestExpiredViewForcesSubmit(t *testing.T) {
	svc, _, attempts, clock := newTestService(t)

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	if err := svc.SaveAnswer(attempt.ID, 7, "q1", strPtr("q1a"), nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	*clock = clock.Add(31 * time.Minute)

	if _, err := svc.GetAttemptView(attempt.ID, 7); !errors.Is(err, util.ErrAttemptExpired) {
		t.Fatalf("err = %v, want ErrAttemptExpired", err)
	}

	final := attempts.attempts[attempt.ID]
	if final.Status != model.AttemptSubmitted {
		t.Errorf("status = %s, want SUBMITTED after forced submit", final.Status)
	}
	// 只有已保存的 q1 计入成绩
	if final.Score == nil || *final.Score != 4 {
		t.Errorf("score = %v, want 4", final.Score)
	}
}

func TestExpiredSaveForcesSubmit(t *testing.T) {
	svc, _, attempts, clock := newTestService(t)

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	*clock = clock.Add(31 * time.Minute)

	if err := svc.SaveAnswer(attempt.ID, 7, "q1", strPtr("q1a"), nil); !errors.Is(err, util.ErrAttemptExpired) {
		t.Fatalf("err = %v, want ErrAttemptExpired", err)
	}
	if attempts.attempts[attempt.ID].Status != model.AttemptSubmitted {
		t.Error("expired save did not force-submit")
	}
}

func TestLateSubmitForcesSavedStateOnly(t *testing.T) {
	svc, _, attempts, clock := newTestService(t)

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	// 限时内只自动保存了错误选项
	if err := svc.SaveAnswer(attempt.ID, 7, "q1", strPtr("q1b"), nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	*clock = clock.Add(2 * time.Hour)

	// 迟到的显式提交携带了"改正"后的整卷，不能被接收
	_, err := svc.SubmitQuiz(attempt.ID, 7, []AnswerSubmission{
		{QuestionID: "q1", SelectedOptionID: strPtr("q1a")},
		{QuestionID: "q2", SelectedOptionID: strPtr("q2a")},
	})
	if !errors.Is(err, util.ErrAttemptExpired) {
		t.Fatalf("err = %v, want ErrAttemptExpired", err)
	}

	final := attempts.attempts[attempt.ID]
	if final.Status != model.AttemptSubmitted {
		t.Errorf("status = %s, want SUBMITTED after forced submit", final.Status)
	}
	if final.Score == nil || *final.Score != 0 {
		t.Errorf("score = %v, want 0 from the autosaved wrong answer", final.Score)
	}

	stored := attempts.answers[attempt.ID]
	if len(stored) != 1 {
		t.Fatalf("answers = %d, want only the autosaved one", len(stored))
	}
	if got := *stored["q1"].SelectedOptionID; got != "q1b" {
		t.Errorf("selected = %s, late batch must not overwrite the autosave", got)
	}
}

func TestZeroDurationNeverExpires(t *testing.T) {
	svc, quizzes, _, clock := newTestService(t)
	quizzes.quizzes[testQuizID].DurationMinutes = 0

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	*clock = clock.Add(100 * time.Hour)

	if _, err := svc.GetAttemptView(attempt.ID, 7); err != nil {
		t.Errorf("unlimited quiz expired: %v", err)
	}
}

func TestGetRemainingTime(t *testing.T) {
	svc, _, _, clock := newTestService(t)

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	*clock = clock.Add(10 * time.Minute)

	rt, err := svc.GetRemainingTime(attempt.ID, 7)
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if rt.RemainingSeconds != 20*60 {
		t.Errorf("remaining = %d, want %d", rt.RemainingSeconds, 20*60)
	}
	if rt.IsExpired {
		t.Error("not yet expired")
	}
}

func TestGetRemainingTimeUnlimitedQuiz(t *testing.T) {
	svc, quizzes, _, clock := newTestService(t)
	quizzes.quizzes[testQuizID].DurationMinutes = 0

	attempt, _ := svc.StartAttempt(testQuizID, 7)
	*clock = clock.Add(5 * time.Hour)

	rt, err := svc.GetRemainingTime(attempt.ID, 7)
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if !rt.Unlimited {
		t.Error("unlimited quiz not flagged")
	}
	if rt.IsExpired {
		t.Error("unlimited quiz must never expire")
	}
}

func TestGetQuizResultGating(t *testing.T) {
	svc, quizzes, _, _ := newTestService(t)

	attempt, _ := svc.StartAttempt(testQuizID, 7)

	// 进行中不可看结果
	if _, err := svc.GetQuizResult(attempt.ID, 7); !errors.Is(err, util.ErrAttemptInProgress) {
		t.Errorf("in-progress err = %v, want ErrAttemptInProgress", err)
	}

	if _, err := svc.SubmitQuiz(attempt.ID, 7, []AnswerSubmission{
		{QuestionID: "q1", SelectedOptionID: strPtr("q1a")},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	view, err := svc.GetQuizResult(attempt.ID, 7)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if view.Score != 4 {
		t.Errorf("score = %d, want 4", view.Score)
	}

	// showResults 关闭后拒绝
	quizzes.quizzes[testQuizID].ShowResults = false
	if _, err := svc.GetQuizResult(attempt.ID, 7); !errors.Is(err, util.ErrResultsNotAvailable) {
		t.Errorf("err = %v, want ErrResultsNotAvailable", err)
	}
}
