package repository

import (
	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) Create(res *model.Resource) error {
	return r.DB.Create(res).Error
}

func (r *ResourceRepository) FindByID(id string) (*model.Resource, error) {
	var res model.Resource
	err := r.DB.First(&res, "id = ?", id).Error
	return &res, err
}

func (r *ResourceRepository) Delete(id string) error {
	return r.DB.Delete(&model.Resource{}, "id = ?", id).Error
}

func (r *ResourceRepository) ListByCourse(courseID uint, page, limit int) ([]model.Resource, int64, error) {
	var total int64
	query := r.DB.Model(&model.Resource{}).Where("course_id = ?", courseID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rs []model.Resource
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&rs).Error
	return rs, total, err
}
