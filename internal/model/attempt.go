package model

import "time"

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "IN_PROGRESS"
	AttemptSubmitted  AttemptStatus = "SUBMITTED"
	AttemptGraded     AttemptStatus = "GRADED"
)

// QuizAttempt 每个 (quiz, student) 只有一条，靠复合唯一键保证。
// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	QuizID      string        `gorm:"uniqueIndex:idx_quiz_student;type:varchar(36)" json:"quizId"`
	StudentID   uint          `gorm:"uniqueIndex:idx_quiz_student;type:bigint unsigned" json:"studentId"`
	Status      AttemptStatus `gorm:"size:20;default:'IN_PROGRESS'" json:"status"`
	StartedAt   time.Time     `json:"startedAt"`
	SubmittedAt *time.Time    `json:"submittedAt,omitempty"`
	Score       *int          `json:"score,omitempty"`
	Percentage  *float64      `json:"percentage,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// Answer 答案记录，(attempt, question) 唯一，每次保存走 upsert。
// IsCorrect 为 nil 表示未评分；SHORT_ANSWER 由人工评分，引擎永远不置值。
// swagger:model Answer
type Answer struct {
	UUIDBase
	AttemptID        string    `gorm:"uniqueIndex:idx_attempt_question;type:varchar(36)" json:"attemptId"`
	QuestionID       string    `gorm:"uniqueIndex:idx_attempt_question;type:varchar(36)" json:"questionId"`
	SelectedOptionID *string   `gorm:"type:varchar(36)" json:"selectedOptionId,omitempty"`
	TextAnswer       *string   `gorm:"type:text" json:"textAnswer,omitempty"`
	IsCorrect        *bool     `json:"isCorrect,omitempty"`
	PointsEarned     int       `gorm:"default:0" json:"pointsEarned"`
	AnsweredAt       time.Time `json:"answeredAt"`
}

func (Answer) TableName() string {
	return "answers"
}

// AnswerPatch 自动保存/提交时的可写字段
type AnswerPatch struct {
	SelectedOptionID *string
	TextAnswer       *string
	AnsweredAt       time.Time
}
