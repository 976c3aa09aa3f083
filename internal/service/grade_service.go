package service

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// GradeService 教师成绩册与学生成绩单
type GradeService struct {
	Attempts *repository.AttemptRepository
	Quizzes  *repository.QuizRepository
}

func NewGradeService(attempts *repository.AttemptRepository, quizzes *repository.QuizRepository) *GradeService {
	return &GradeService{Attempts: attempts, Quizzes: quizzes}
}

// Gradebook 某测验的所有学生提交，按学生姓名可过滤
func (s *GradeService) Gradebook(quizID string, page, limit int, studentName string) ([]repository.AttemptRow, int64, error) {
	if _, err := s.Quizzes.FindQuizByID(quizID); err != nil {
		return nil, 0, util.ErrQuizNotFound
	}
	return s.Attempts.ListAttemptsByQuiz(quizID, page, limit, studentName)
}

// TranscriptEntry 在转录行之上补算通过与否
type TranscriptEntry struct {
	repository.TranscriptRow
	Passed *bool `json:"passed"`
}

func (s *GradeService) Transcript(studentID uint) ([]TranscriptEntry, error) {
	rows, err := s.Attempts.ListTranscript(studentID)
	if err != nil {
		return nil, err
	}

	entries := make([]TranscriptEntry, 0, len(rows))
	for _, row := range rows {
		entry := TranscriptEntry{TranscriptRow: row}
		if row.Score != nil {
			passed := *row.Score >= row.Passing
			entry.Passed = &passed
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type ManualGradeReq struct {
	IsCorrect *bool `json:"isCorrect"`
	Points    int   `json:"points"`
}

// GradeAnswer 人工批改简答题。只允许对已提交的尝试评分，分值不可超过题目配分。
func (s *GradeService) GradeAnswer(attemptID, answerID string, req *ManualGradeReq) error {
	attempt, err := s.Attempts.FindAttemptByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAttemptNotFound
		}
		return err
	}
	if attempt.Status == model.AttemptInProgress {
		return util.ErrAttemptInProgress
	}

	answers, err := s.Attempts.ListAnswers(attemptID)
	if err != nil {
		return err
	}
	var target *model.Answer
	for i := range answers {
		if answers[i].ID == answerID {
			target = &answers[i]
			break
		}
	}
	if target == nil {
		return errors.New("answer not found in attempt")
	}

	question, err := s.Quizzes.FindQuestionByID(target.QuestionID)
	if err != nil {
		return util.ErrQuestionNotFound
	}
	if req.Points < 0 || req.Points > question.Points {
		return errors.New("points out of range")
	}

	quiz, err := s.Quizzes.FindQuizByID(attempt.QuizID)
	if err != nil {
		return util.ErrQuizNotFound
	}
	return s.Attempts.GradeAnswerManually(attemptID, answerID, req.IsCorrect, req.Points, quiz.TotalPoints)
}
