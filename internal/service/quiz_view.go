package service

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/util"
	"time"
)

// 学生答题视图：选项永远不带 isCorrect，这是安全不变式而不是界面取舍。

type TakingOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

type SavedAnswer struct {
	SelectedOptionID *string   `json:"selectedOptionId,omitempty"`
	TextAnswer       *string   `json:"textAnswer,omitempty"`
	AnsweredAt       time.Time `json:"answeredAt"`
}

type TakingQuestion struct {
	ID          string             `json:"id"`
	Type        model.QuestionType `json:"type"`
	Text        string             `json:"text"`
	Points      int                `json:"points"`
	Order       int                `json:"order"`
	Options     []TakingOption     `json:"options"`
	SavedAnswer *SavedAnswer       `json:"savedAnswer,omitempty"`
}

type TakingView struct {
	AttemptID        string           `json:"attemptId"`
	QuizID           string           `json:"quizId"`
	Title            string           `json:"title"`
	DurationMinutes  int              `json:"durationMinutes"`
	RemainingSeconds int              `json:"remainingSeconds"`
	TotalPoints      int              `json:"totalPoints"`
	Questions        []TakingQuestion `json:"questions"`
}

// BuildTakingView 脱敏投影 + 按配置洗牌 + 合并已自动保存的答案。
// 洗牌每次请求独立随机，不持久化每次尝试的固定顺序。
func BuildTakingView(quiz *model.Quiz, questions []model.Question, answers []model.Answer, attempt *model.QuizAttempt, remainingSeconds int) *TakingView {
	saved := make(map[string]*SavedAnswer, len(answers))
	for i := range answers {
		saved[answers[i].QuestionID] = &SavedAnswer{
			SelectedOptionID: answers[i].SelectedOptionID,
			TextAnswer:       answers[i].TextAnswer,
			AnsweredAt:       answers[i].AnsweredAt,
		}
	}

	view := &TakingView{
		AttemptID:        attempt.ID,
		QuizID:           quiz.ID,
		Title:            quiz.Title,
		DurationMinutes:  quiz.DurationMinutes,
		RemainingSeconds: remainingSeconds,
		TotalPoints:      quiz.TotalPoints,
		Questions:        make([]TakingQuestion, 0, len(questions)),
	}

	for _, q := range questions {
		opts := make([]TakingOption, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, TakingOption{ID: o.ID, Text: o.Text, Order: o.Order})
		}
		if quiz.ShuffleOptions {
			util.ShuffleInPlace(opts)
		}
		view.Questions = append(view.Questions, TakingQuestion{
			ID:          q.ID,
			Type:        q.Type,
			Text:        q.Text,
			Points:      q.Points,
			Order:       q.Order,
			Options:     opts,
			SavedAnswer: saved[q.ID],
		})
	}

	if quiz.ShuffleQuestions {
		util.ShuffleInPlace(view.Questions)
	}

	return view
}

// 结果视图：仅对已提交的尝试构建；allowReview=false 时不泄露答案键，
// 所有选项的 isCorrect 一律置 false。

type ResultOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Order     int    `json:"order"`
	IsCorrect bool   `json:"isCorrect"`
}

type ResultQuestion struct {
	ID               string             `json:"id"`
	Type             model.QuestionType `json:"type"`
	Text             string             `json:"text"`
	Points           int                `json:"points"`
	Order            int                `json:"order"`
	PointsEarned     int                `json:"pointsEarned"`
	IsCorrect        *bool              `json:"isCorrect"`
	SelectedOptionID *string            `json:"selectedOptionId,omitempty"`
	TextAnswer       *string            `json:"textAnswer,omitempty"`
	Options          []ResultOption     `json:"options"`
	Explanation      string             `json:"explanation,omitempty"`
	CorrectOptionID  string             `json:"correctOptionId,omitempty"`
}

type ResultView struct {
	AttemptID   string           `json:"attemptId"`
	QuizID      string           `json:"quizId"`
	Title       string           `json:"title"`
	Score       int              `json:"score"`
	Percentage  float64          `json:"percentage"`
	TotalPoints int              `json:"totalPoints"`
	Passed      bool             `json:"passed"`
	SubmittedAt *time.Time       `json:"submittedAt"`
	Questions   []ResultQuestion `json:"questions"`
}

func BuildResultView(quiz *model.Quiz, questions []model.Question, answers []model.Answer, attempt *model.QuizAttempt) *ResultView {
	byQuestion := make(map[string]*model.Answer, len(answers))
	for i := range answers {
		byQuestion[answers[i].QuestionID] = &answers[i]
	}

	score := 0
	if attempt.Score != nil {
		score = *attempt.Score
	}
	percentage := 0.0
	if attempt.Percentage != nil {
		percentage = *attempt.Percentage
	}

	view := &ResultView{
		AttemptID:   attempt.ID,
		QuizID:      quiz.ID,
		Title:       quiz.Title,
		Score:       score,
		Percentage:  percentage,
		TotalPoints: quiz.TotalPoints,
		Passed:      percentage >= float64(quiz.PassingScore),
		SubmittedAt: attempt.SubmittedAt,
		Questions:   make([]ResultQuestion, 0, len(questions)),
	}

	for _, q := range questions {
		rq := ResultQuestion{
			ID:     q.ID,
			Type:   q.Type,
			Text:   q.Text,
			Points: q.Points,
			Order:  q.Order,
		}

		if ans, ok := byQuestion[q.ID]; ok {
			rq.PointsEarned = ans.PointsEarned
			rq.IsCorrect = ans.IsCorrect
			rq.SelectedOptionID = ans.SelectedOptionID
			rq.TextAnswer = ans.TextAnswer
		}

		opts := make([]ResultOption, 0, len(q.Options))
		for _, o := range q.Options {
			ro := ResultOption{ID: o.ID, Text: o.Text, Order: o.Order}
			if quiz.AllowReview {
				ro.IsCorrect = o.IsCorrect
				if o.IsCorrect && rq.CorrectOptionID == "" {
					rq.CorrectOptionID = o.ID
				}
			}
			opts = append(opts, ro)
		}
		rq.Options = opts

		if quiz.AllowReview {
			rq.Explanation = q.Explanation
		}

		view.Questions = append(view.Questions, rq)
	}

	return view
}
