package service

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"errors"
)

// AcademicService 学院/系/专业/课程/开课的管理
type AcademicService struct {
	Repo *repository.AcademicRepository
}

func NewAcademicService(repo *repository.AcademicRepository) *AcademicService {
	return &AcademicService{Repo: repo}
}

type CollegeReq struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

func (s *AcademicService) CreateCollege(req *CollegeReq) (*model.College, error) {
	c := &model.College{Name: req.Name, Code: req.Code}
	if err := s.Repo.CreateCollege(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *AcademicService) UpdateCollege(id uint, req *CollegeReq) (*model.College, error) {
	c, err := s.Repo.FindCollegeByID(id)
	if err != nil {
		return nil, errors.New("college not found")
	}
	c.Name = req.Name
	c.Code = req.Code
	if err := s.Repo.UpdateCollege(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *AcademicService) DeleteCollege(id uint) error {
	return s.Repo.DeleteCollege(id)
}

func (s *AcademicService) ListColleges() ([]model.College, error) {
	return s.Repo.ListColleges()
}

type DepartmentReq struct {
	CollegeID uint   `json:"collegeId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
}

func (s *AcademicService) CreateDepartment(req *DepartmentReq) (*model.Department, error) {
	if _, err := s.Repo.FindCollegeByID(req.CollegeID); err != nil {
		return nil, errors.New("college not found")
	}
	d := &model.Department{CollegeID: req.CollegeID, Name: req.Name, Code: req.Code}
	if err := s.Repo.CreateDepartment(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *AcademicService) UpdateDepartment(id uint, req *DepartmentReq) (*model.Department, error) {
	d, err := s.Repo.FindDepartmentByID(id)
	if err != nil {
		return nil, errors.New("department not found")
	}
	d.CollegeID = req.CollegeID
	d.Name = req.Name
	d.Code = req.Code
	if err := s.Repo.UpdateDepartment(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *AcademicService) DeleteDepartment(id uint) error {
	return s.Repo.DeleteDepartment(id)
}

func (s *AcademicService) ListDepartments(collegeID uint) ([]model.Department, error) {
	return s.Repo.ListDepartments(collegeID)
}

type MajorReq struct {
	DepartmentID uint   `json:"departmentId" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required"`
}

func (s *AcademicService) CreateMajor(req *MajorReq) (*model.Major, error) {
	if _, err := s.Repo.FindDepartmentByID(req.DepartmentID); err != nil {
		return nil, errors.New("department not found")
	}
	m := &model.Major{DepartmentID: req.DepartmentID, Name: req.Name, Code: req.Code}
	if err := s.Repo.CreateMajor(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AcademicService) UpdateMajor(id uint, req *MajorReq) (*model.Major, error) {
	m, err := s.Repo.FindMajorByID(id)
	if err != nil {
		return nil, errors.New("major not found")
	}
	m.DepartmentID = req.DepartmentID
	m.Name = req.Name
	m.Code = req.Code
	if err := s.Repo.UpdateMajor(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AcademicService) DeleteMajor(id uint) error {
	return s.Repo.DeleteMajor(id)
}

func (s *AcademicService) ListMajors(departmentID uint) ([]model.Major, error) {
	return s.Repo.ListMajors(departmentID)
}

type CourseReq struct {
	DepartmentID uint   `json:"departmentId" binding:"required"`
	Code         string `json:"code" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Credits      int    `json:"credits"`
}

func (s *AcademicService) CreateCourse(req *CourseReq) (*model.Course, error) {
	if _, err := s.Repo.FindDepartmentByID(req.DepartmentID); err != nil {
		return nil, errors.New("department not found")
	}
	c := &model.Course{
		DepartmentID: req.DepartmentID,
		Code:         req.Code,
		Title:        req.Title,
		Description:  req.Description,
		Credits:      req.Credits,
	}
	if err := s.Repo.CreateCourse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *AcademicService) UpdateCourse(id uint, req *CourseReq) (*model.Course, error) {
	c, err := s.Repo.FindCourseByID(id)
	if err != nil {
		return nil, errors.New("course not found")
	}
	c.DepartmentID = req.DepartmentID
	c.Code = req.Code
	c.Title = req.Title
	c.Description = req.Description
	c.Credits = req.Credits
	if err := s.Repo.UpdateCourse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *AcademicService) DeleteCourse(id uint) error {
	return s.Repo.DeleteCourse(id)
}

func (s *AcademicService) GetCourse(id uint) (*model.Course, error) {
	return s.Repo.FindCourseByID(id)
}

func (s *AcademicService) ListCourses(departmentID uint, page, limit int) ([]model.Course, int64, error) {
	return s.Repo.ListCourses(departmentID, page, limit)
}

type OfferingReq struct {
	CourseID     uint   `json:"courseId" binding:"required"`
	Term         string `json:"term" binding:"required"`
	Section      string `json:"section"`
	InstructorID uint   `json:"instructorId" binding:"required"`
	Capacity     int    `json:"capacity"`
}

func (s *AcademicService) CreateOffering(req *OfferingReq) (*model.CourseOffering, error) {
	if _, err := s.Repo.FindCourseByID(req.CourseID); err != nil {
		return nil, errors.New("course not found")
	}
	o := &model.CourseOffering{
		CourseID:     req.CourseID,
		Term:         req.Term,
		Section:      req.Section,
		InstructorID: req.InstructorID,
		Capacity:     req.Capacity,
	}
	if err := s.Repo.CreateOffering(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *AcademicService) UpdateOffering(id uint, req *OfferingReq) (*model.CourseOffering, error) {
	o, err := s.Repo.FindOfferingByID(id)
	if err != nil {
		return nil, errors.New("offering not found")
	}
	o.CourseID = req.CourseID
	o.Term = req.Term
	o.Section = req.Section
	o.InstructorID = req.InstructorID
	o.Capacity = req.Capacity
	if err := s.Repo.UpdateOffering(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *AcademicService) DeleteOffering(id uint) error {
	return s.Repo.DeleteOffering(id)
}

func (s *AcademicService) GetOffering(id uint) (*model.CourseOffering, error) {
	return s.Repo.FindOfferingByID(id)
}

func (s *AcademicService) ListOfferings(courseID uint, term string) ([]model.CourseOffering, error) {
	return s.Repo.ListOfferings(courseID, term)
}
