package service

import "campus_lms_backend/internal/model"

// GradeResult 单题评分结论。IsCorrect 为 nil 表示无法机器判定（简答题留待人工）。
type GradeResult struct {
	IsCorrect    *bool
	PointsEarned int
}

// GradeAnswer 纯函数：题目定义 + 已提交答案 -> 评分结论。
// 对任何合法输入都不会失败；选项 id 对不上（过期或伪造的 id）按答错处理。
func GradeAnswer(q *model.Question, ans *model.Answer) GradeResult {
	switch q.Type {
	case model.MultipleChoice, model.TrueFalse:
		correct := false
		if ans != nil && ans.SelectedOptionID != nil {
			for _, opt := range q.Options {
				if opt.ID == *ans.SelectedOptionID {
					correct = opt.IsCorrect
					break
				}
			}
		}
		points := 0
		if correct {
			points = q.Points
		}
		return GradeResult{IsCorrect: &correct, PointsEarned: points}
	case model.ShortAnswer:
		// 简答题永远不自动评分
		return GradeResult{}
	default:
		return GradeResult{}
	}
}

// GradeAttempt 对整套已存答案评分并汇总。显式提交和超时强制提交走同一条路径，
// 保证两种触发方式得到完全一致的分数。totalPoints 为 0 时百分比取 0，避免除零。
func GradeAttempt(questions []model.Question, answers []model.Answer) (score int, percentage float64, graded []model.Answer) {
	byQuestion := make(map[string]*model.Question, len(questions))
	totalPoints := 0
	for i := range questions {
		byQuestion[questions[i].ID] = &questions[i]
		totalPoints += questions[i].Points
	}

	graded = make([]model.Answer, 0, len(answers))
	for _, ans := range answers {
		q, ok := byQuestion[ans.QuestionID]
		if !ok {
			// 不属于本测验的题目 id：跳过，不算错误
			continue
		}
		result := GradeAnswer(q, &ans)
		ans.IsCorrect = result.IsCorrect
		ans.PointsEarned = result.PointsEarned
		score += result.PointsEarned
		graded = append(graded, ans)
	}

	if totalPoints > 0 {
		percentage = float64(score) / float64(totalPoints) * 100
	}
	return score, percentage, graded
}
