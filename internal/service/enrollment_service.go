package service

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"
	"errors"
)

type EnrollmentService struct {
	Repo     *repository.EnrollmentRepository
	Academic *repository.AcademicRepository
}

func NewEnrollmentService(repo *repository.EnrollmentRepository, academic *repository.AcademicRepository) *EnrollmentService {
	return &EnrollmentService{Repo: repo, Academic: academic}
}

// Enroll 选课。退课后的记录重新激活，不新建行。
func (s *EnrollmentService) Enroll(offeringID, studentID uint) (*model.Enrollment, error) {
	offering, err := s.Academic.FindOfferingByID(offeringID)
	if err != nil {
		return nil, errors.New("offering not found")
	}

	// 容量为 0 表示不限人数
	if offering.Capacity > 0 {
		ids, err := s.Repo.ListActiveStudentIDs(offeringID)
		if err != nil {
			return nil, err
		}
		if len(ids) >= offering.Capacity {
			return nil, errors.New("offering is full")
		}
	}

	existing, _ := s.Repo.FindByOfferingAndStudent(offeringID, studentID)
	if existing != nil {
		if existing.Status == model.EnrollmentActive {
			return nil, util.ErrAlreadyEnrolled
		}
		existing.Status = model.EnrollmentActive
		if err := s.Repo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	e := &model.Enrollment{
		OfferingID: offeringID,
		StudentID:  studentID,
		Status:     model.EnrollmentActive,
	}
	if err := s.Repo.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EnrollmentService) Drop(offeringID, studentID uint) error {
	existing, _ := s.Repo.FindByOfferingAndStudent(offeringID, studentID)
	if existing == nil || existing.Status != model.EnrollmentActive {
		return util.ErrNotEnrolled
	}
	existing.Status = model.EnrollmentDropped
	return s.Repo.Update(existing)
}

func (s *EnrollmentService) IsActivelyEnrolled(studentID, offeringID uint) (bool, error) {
	return s.Repo.IsActivelyEnrolled(studentID, offeringID)
}

func (s *EnrollmentService) ListByOffering(offeringID uint, page, limit int) ([]repository.EnrollmentRow, int64, error) {
	return s.Repo.ListByOffering(offeringID, page, limit)
}

func (s *EnrollmentService) ListByStudent(studentID uint) ([]model.Enrollment, error) {
	return s.Repo.ListByStudent(studentID)
}
