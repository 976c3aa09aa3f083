package repository

import (
	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(e *model.Enrollment) error {
	return r.DB.Create(e).Error
}

func (r *EnrollmentRepository) FindByOfferingAndStudent(offeringID, studentID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("offering_id = ? AND student_id = ?", offeringID, studentID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) Update(e *model.Enrollment) error {
	return r.DB.Save(e).Error
}

// IsActivelyEnrolled 学生答题路径的准入检查
func (r *EnrollmentRepository) IsActivelyEnrolled(studentID, offeringID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("offering_id = ? AND student_id = ? AND status = ?", offeringID, studentID, model.EnrollmentActive).
		Count(&count).Error
	return count > 0, err
}

// ListActiveStudentIDs 测验发布通知的收件人
func (r *EnrollmentRepository) ListActiveStudentIDs(offeringID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Enrollment{}).
		Where("offering_id = ? AND status = ?", offeringID, model.EnrollmentActive).
		Pluck("student_id", &ids).Error
	return ids, err
}

type EnrollmentRow struct {
	model.Enrollment
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
	StudentNo    string `json:"studentNo"`
}

func (r *EnrollmentRepository) ListByOffering(offeringID uint, page, limit int) ([]EnrollmentRow, int64, error) {
	var total int64
	query := r.DB.Table("enrollments e").
		Joins("JOIN users u ON e.student_id = u.id").
		Where("e.offering_id = ? AND e.deleted_at IS NULL", offeringID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []EnrollmentRow
	offset := (page - 1) * limit
	err := query.Select("e.*, u.name as student_name, u.email as student_email, u.student_no as student_no").
		Order("e.created_at desc").Offset(offset).Limit(limit).Scan(&rows).Error
	return rows, total, err
}

func (r *EnrollmentRepository) ListByStudent(studentID uint) ([]model.Enrollment, error) {
	var es []model.Enrollment
	err := r.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&es).Error
	return es, err
}
