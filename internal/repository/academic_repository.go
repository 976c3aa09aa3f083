package repository

import (
	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

// AcademicRepository 院系专业与课程树的持久化
type AcademicRepository struct {
	DB *gorm.DB
}

func NewAcademicRepository(db *gorm.DB) *AcademicRepository {
	return &AcademicRepository{DB: db}
}

func (r *AcademicRepository) CreateCollege(c *model.College) error {
	return r.DB.Create(c).Error
}

func (r *AcademicRepository) FindCollegeByID(id uint) (*model.College, error) {
	var c model.College
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *AcademicRepository) UpdateCollege(c *model.College) error {
	return r.DB.Save(c).Error
}

// DeleteCollege 级联软删除其下的系和专业
func (r *AcademicRepository) DeleteCollege(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var deptIDs []uint
		if err := tx.Model(&model.Department{}).Where("college_id = ?", id).Pluck("id", &deptIDs).Error; err != nil {
			return err
		}
		if len(deptIDs) > 0 {
			if err := tx.Where("department_id IN ?", deptIDs).Delete(&model.Major{}).Error; err != nil {
				return err
			}
			if err := tx.Where("college_id = ?", id).Delete(&model.Department{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.College{}, id).Error
	})
}

func (r *AcademicRepository) ListColleges() ([]model.College, error) {
	var cs []model.College
	err := r.DB.Order("code asc").Find(&cs).Error
	return cs, err
}

func (r *AcademicRepository) CreateDepartment(d *model.Department) error {
	return r.DB.Create(d).Error
}

func (r *AcademicRepository) FindDepartmentByID(id uint) (*model.Department, error) {
	var d model.Department
	err := r.DB.First(&d, id).Error
	return &d, err
}

func (r *AcademicRepository) UpdateDepartment(d *model.Department) error {
	return r.DB.Save(d).Error
}

func (r *AcademicRepository) DeleteDepartment(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("department_id = ?", id).Delete(&model.Major{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Department{}, id).Error
	})
}

func (r *AcademicRepository) ListDepartments(collegeID uint) ([]model.Department, error) {
	var ds []model.Department
	query := r.DB.Order("code asc")
	if collegeID > 0 {
		query = query.Where("college_id = ?", collegeID)
	}
	err := query.Find(&ds).Error
	return ds, err
}

func (r *AcademicRepository) CreateMajor(m *model.Major) error {
	return r.DB.Create(m).Error
}

func (r *AcademicRepository) FindMajorByID(id uint) (*model.Major, error) {
	var m model.Major
	err := r.DB.First(&m, id).Error
	return &m, err
}

func (r *AcademicRepository) UpdateMajor(m *model.Major) error {
	return r.DB.Save(m).Error
}

func (r *AcademicRepository) DeleteMajor(id uint) error {
	return r.DB.Delete(&model.Major{}, id).Error
}

func (r *AcademicRepository) ListMajors(departmentID uint) ([]model.Major, error) {
	var ms []model.Major
	query := r.DB.Order("code asc")
	if departmentID > 0 {
		query = query.Where("department_id = ?", departmentID)
	}
	err := query.Find(&ms).Error
	return ms, err
}

func (r *AcademicRepository) CreateCourse(c *model.Course) error {
	return r.DB.Create(c).Error
}

func (r *AcademicRepository) FindCourseByID(id uint) (*model.Course, error) {
	var c model.Course
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *AcademicRepository) UpdateCourse(c *model.Course) error {
	return r.DB.Save(c).Error
}

func (r *AcademicRepository) DeleteCourse(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *AcademicRepository) ListCourses(departmentID uint, page, limit int) ([]model.Course, int64, error) {
	var total int64
	query := r.DB.Model(&model.Course{})
	if departmentID > 0 {
		query = query.Where("department_id = ?", departmentID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cs []model.Course
	offset := (page - 1) * limit
	err := query.Order("code asc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *AcademicRepository) CreateOffering(o *model.CourseOffering) error {
	return r.DB.Create(o).Error
}

func (r *AcademicRepository) FindOfferingByID(id uint) (*model.CourseOffering, error) {
	var o model.CourseOffering
	err := r.DB.Preload("Course").First(&o, id).Error
	return &o, err
}

func (r *AcademicRepository) UpdateOffering(o *model.CourseOffering) error {
	return r.DB.Save(o).Error
}

func (r *AcademicRepository) DeleteOffering(id uint) error {
	return r.DB.Delete(&model.CourseOffering{}, id).Error
}

func (r *AcademicRepository) ListOfferings(courseID uint, term string) ([]model.CourseOffering, error) {
	var os []model.CourseOffering
	query := r.DB.Preload("Course")
	if courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if term != "" {
		query = query.Where("term = ?", term)
	}
	err := query.Order("created_at desc").Find(&os).Error
	return os, err
}
