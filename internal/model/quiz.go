package model

import "time"

type QuizStatus string

const (
	QuizDraft     QuizStatus = "DRAFT"
	QuizPublished QuizStatus = "PUBLISHED"
	QuizClosed    QuizStatus = "CLOSED"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	TrueFalse      QuestionType = "TRUE_FALSE"
	ShortAnswer    QuestionType = "SHORT_ANSWER"
)

// Quiz 测验。TotalPoints 始终等于当前题目分值之和，题目变更时在同一事务内重算。
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	OfferingID       uint        `gorm:"index;type:bigint unsigned" json:"offeringId"`
	CreatorID        uint        `gorm:"index;type:bigint unsigned" json:"creatorId"`
	Title            string      `gorm:"size:255;not null" json:"title"`
	Description      string      `gorm:"type:text" json:"description"`
	DurationMinutes  int         `gorm:"default:0" json:"durationMinutes"`
	TotalPoints      int         `gorm:"default:0" json:"totalPoints"`
	PassingScore     int         `gorm:"default:60" json:"passingScore"` // 百分比
	ShuffleQuestions bool        `gorm:"default:false" json:"shuffleQuestions"`
	ShuffleOptions   bool        `gorm:"default:false" json:"shuffleOptions"`
	ShowResults      bool        `gorm:"default:true" json:"showResults"`
	AllowReview      bool        `gorm:"default:false" json:"allowReview"`
	StartTime        *time.Time  `json:"startTime,omitempty"`
	EndTime          *time.Time  `json:"endTime,omitempty"`
	Status           QuizStatus  `gorm:"size:20;default:'DRAFT'" json:"status"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	UUIDBase
	QuizID      string       `gorm:"index;type:varchar(36)" json:"quizId"`
	Type        QuestionType `gorm:"size:30;not null" json:"type"`
	Difficulty  string       `gorm:"size:20" json:"difficulty"`
	Text        string       `gorm:"type:text;not null" json:"text"`
	Explanation string       `gorm:"type:text" json:"explanation"` // 仅 allowReview 时在提交后展示
	Points      int          `gorm:"default:1" json:"points"`
	Order       int          `gorm:"default:0" json:"order"`
	Options     []Option     `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// Option 选项。IsCorrect 只进教师端载荷，学生答题视图一律走 DTO 投影。
// swagger:model Option
type Option struct {
	UUIDBase
	QuestionID string `gorm:"index;type:varchar(36)" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (Option) TableName() string {
	return "options"
}
