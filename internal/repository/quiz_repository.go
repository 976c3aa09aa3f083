package repository

import (
	"campus_lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) CreateQuiz(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindQuizByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, "id = ?", id).Error
	return &quiz, err
}

func (r *QuizRepository) UpdateQuiz(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) DeleteQuiz(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}

type QuizListRow struct {
	model.Quiz
	QuestionCount  int `json:"questionCount"`
	SubmittedCount int `json:"submittedCount"`
}

func (r *QuizRepository) ListQuizzes(offeringID uint, page, limit int) ([]QuizListRow, int64, error) {
	var total int64
	query := r.DB.Model(&model.Quiz{}).Where("deleted_at IS NULL")
	if offeringID > 0 {
		query = query.Where("offering_id = ?", offeringID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []QuizListRow
	dbQuery := r.DB.Table("quizzes q").
		Select("q.*, " +
			"(SELECT COUNT(*) FROM questions x WHERE x.quiz_id = q.id AND x.deleted_at IS NULL) as question_count, " +
			"(SELECT COUNT(*) FROM quiz_attempts a WHERE a.quiz_id = q.id AND a.deleted_at IS NULL AND a.status <> 'IN_PROGRESS') as submitted_count").
		Where("q.deleted_at IS NULL")
	if offeringID > 0 {
		dbQuery = dbQuery.Where("q.offering_id = ?", offeringID)
	}

	offset := (page - 1) * limit
	err := dbQuery.Order("q.created_at desc").Offset(offset).Limit(limit).Scan(&rows).Error
	return rows, total, err
}

// ListPublishedByOffering 学生端可见的测验
func (r *QuizRepository) ListPublishedByOffering(offeringID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("offering_id = ? AND status = ?", offeringID, model.QuizPublished).
		Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

// CreateQuestion 插入题目及选项并在同一事务内重算总分
func (r *QuizRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		return recomputeTotalPoints(tx, q.QuizID)
	})
}

// ReplaceQuestion 整体覆盖题目内容（含选项），同一事务内重算总分
func (r *QuizRepository) ReplaceQuestion(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", q.ID).Unscoped().Delete(&model.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Save(q).Error; err != nil {
			return err
		}
		return recomputeTotalPoints(tx, q.QuizID)
	})
}

func (r *QuizRepository) DeleteQuestion(quizID, questionID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Question{}, "id = ?", questionID).Error; err != nil {
			return err
		}
		if err := resequenceQuestions(tx, quizID); err != nil {
			return err
		}
		return recomputeTotalPoints(tx, quizID)
	})
}

func (r *QuizRepository) FindQuestionByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("options.order asc")
	}).First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QuizRepository) ListQuestions(quizID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("options.order asc")
	}).Where("quiz_id = ?", quizID).Order("`order` asc").Find(&qs).Error
	return qs, err
}

func (r *QuizRepository) CountQuestions(quizID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

// CloseExpiredQuizzes 到点关闭已过答题窗口的测验，后台定时任务调用
func (r *QuizRepository) CloseExpiredQuizzes(now time.Time) (int64, error) {
	result := r.DB.Model(&model.Quiz{}).
		Where("status = ? AND end_time IS NOT NULL AND end_time < ?", model.QuizPublished, now).
		Update("status", model.QuizClosed)
	return result.RowsAffected, result.Error
}

// recomputeTotalPoints 维持 totalPoints == sum(question.points) 不变式
func recomputeTotalPoints(tx *gorm.DB, quizID string) error {
	var sum int64
	if err := tx.Model(&model.Question{}).
		Where("quiz_id = ? AND deleted_at IS NULL", quizID).
		Select("COALESCE(SUM(points), 0)").Scan(&sum).Error; err != nil {
		return err
	}
	return tx.Model(&model.Quiz{}).Where("id = ?", quizID).Update("total_points", sum).Error
}

// resequenceQuestions 删除题目后压实 order，保持 0 起始的稠密序
func resequenceQuestions(tx *gorm.DB, quizID string) error {
	var qs []model.Question
	if err := tx.Where("quiz_id = ?", quizID).Order("`order` asc").Find(&qs).Error; err != nil {
		return err
	}
	for i := range qs {
		if qs[i].Order != i {
			if err := tx.Model(&model.Question{}).Where("id = ?", qs[i].ID).Update("order", i).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
