package repository

import (
	"campus_lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) CreateAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindAttemptByID(id string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.First(&attempt, "id = ?", id).Error
	return &attempt, err
}

func (r *AttemptRepository) FindByQuizAndStudent(quizID string, studentID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Where("quiz_id = ? AND student_id = ?", quizID, studentID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// UpsertAnswer 以 (attempt_id, question_id) 为键覆盖写入，复合唯一索引保证不重复
func (r *AttemptRepository) UpsertAnswer(attemptID, questionID string, patch model.AnswerPatch) error {
	answer := model.Answer{
		UUIDBase:         model.UUIDBase{ID: model.GenerateUUID()},
		AttemptID:        attemptID,
		QuestionID:       questionID,
		SelectedOptionID: patch.SelectedOptionID,
		TextAnswer:       patch.TextAnswer,
		AnsweredAt:       patch.AnsweredAt,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_option_id", "text_answer", "answered_at", "updated_at"}),
	}).Create(&answer).Error
}

func (r *AttemptRepository) ListAnswers(attemptID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}

// FinalizeAttempt 带状态守卫的终态迁移：只有观察到 IN_PROGRESS 的那次调用会生效，
// 并发提交的失败方拿到 false。评分结果与状态迁移同一事务落库。
func (r *AttemptRepository) FinalizeAttempt(attemptID string, score int, percentage float64, submittedAt time.Time, graded []model.Answer) (bool, error) {
	transitioned := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.QuizAttempt{}).
			Where("id = ? AND status = ?", attemptID, model.AttemptInProgress).
			Updates(map[string]interface{}{
				"status":       model.AttemptSubmitted,
				"score":        score,
				"percentage":   percentage,
				"submitted_at": submittedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		transitioned = true

		for i := range graded {
			if err := tx.Model(&model.Answer{}).
				Where("id = ?", graded[i].ID).
				Updates(map[string]interface{}{
					"is_correct":    graded[i].IsCorrect,
					"points_earned": graded[i].PointsEarned,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return transitioned, err
}

// GradeAnswerManually 教师人工评分，与尝试总分重算同一事务。
// 重算后尝试进入 GRADED。
func (r *AttemptRepository) GradeAnswerManually(attemptID, answerID string, isCorrect *bool, points int, totalPoints int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Answer{}).
			Where("id = ? AND attempt_id = ?", answerID, attemptID).
			Updates(map[string]interface{}{
				"is_correct":    isCorrect,
				"points_earned": points,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var score int64
		if err := tx.Model(&model.Answer{}).
			Where("attempt_id = ?", attemptID).
			Select("COALESCE(SUM(points_earned), 0)").Scan(&score).Error; err != nil {
			return err
		}

		percentage := 0.0
		if totalPoints > 0 {
			percentage = float64(score) / float64(totalPoints) * 100
		}
		return tx.Model(&model.QuizAttempt{}).
			Where("id = ?", attemptID).
			Updates(map[string]interface{}{
				"status":     model.AttemptGraded,
				"score":      score,
				"percentage": percentage,
			}).Error
	})
}

type AttemptRow struct {
	model.QuizAttempt
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
	StudentNo    string `json:"studentNo"`
}

// ListAttemptsByQuiz 教师成绩册
func (r *AttemptRepository) ListAttemptsByQuiz(quizID string, page, limit int, studentName string) ([]AttemptRow, int64, error) {
	var total int64
	query := r.DB.Table("quiz_attempts a").
		Joins("JOIN users u ON a.student_id = u.id").
		Where("a.quiz_id = ? AND a.deleted_at IS NULL", quizID)

	if studentName != "" {
		query = query.Where("u.name LIKE ?", "%"+studentName+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []AttemptRow
	offset := (page - 1) * limit
	err := query.Select("a.*, u.name as student_name, u.email as student_email, u.student_no as student_no").
		Order("a.created_at desc").Offset(offset).Limit(limit).Scan(&rows).Error
	return rows, total, err
}

type TranscriptRow struct {
	AttemptID   string     `json:"attemptId"`
	QuizID      string     `json:"quizId"`
	QuizTitle   string     `json:"quizTitle"`
	CourseCode  string     `json:"courseCode"`
	CourseTitle string     `json:"courseTitle"`
	Term        string     `json:"term"`
	Score       *int       `json:"score"`
	Percentage  *float64   `json:"percentage"`
	TotalPoints int        `json:"totalPoints"`
	Passing     int        `json:"passingScore"`
	SubmittedAt *time.Time `json:"submittedAt"`
}

// ListTranscript 学生成绩单：全部已提交/已评分的尝试，带课程上下文
func (r *AttemptRepository) ListTranscript(studentID uint) ([]TranscriptRow, error) {
	var rows []TranscriptRow
	err := r.DB.Table("quiz_attempts a").
		Select("a.id as attempt_id, q.id as quiz_id, q.title as quiz_title, "+
			"c.code as course_code, c.title as course_title, o.term as term, "+
			"a.score, a.percentage, q.total_points, q.passing_score as passing, a.submitted_at").
		Joins("JOIN quizzes q ON a.quiz_id = q.id").
		Joins("JOIN course_offerings o ON q.offering_id = o.id").
		Joins("JOIN courses c ON o.course_id = c.id").
		Where("a.student_id = ? AND a.status <> ? AND a.deleted_at IS NULL", studentID, model.AttemptInProgress).
		Order("a.submitted_at desc").
		Scan(&rows).Error
	return rows, err
}
