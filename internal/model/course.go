package model

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentDropped   EnrollmentStatus = "dropped"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// swagger:model Course
type Course struct {
	BaseModel
	DepartmentID uint   `gorm:"index;type:bigint unsigned" json:"departmentId"`
	Code         string `gorm:"size:32;unique;not null" json:"code"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Credits      int    `gorm:"default:0" json:"credits"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseOffering 某学期开设的课程实例，测验和选课都挂在 offering 上
// swagger:model CourseOffering
type CourseOffering struct {
	BaseModel
	CourseID     uint   `gorm:"index;type:bigint unsigned" json:"courseId"`
	Course       *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Term         string `gorm:"size:32;not null" json:"term"` // e.g. 2026-spring
	Section      string `gorm:"size:16" json:"section"`
	InstructorID uint   `gorm:"index;type:bigint unsigned" json:"instructorId"`
	Capacity     int    `gorm:"default:0" json:"capacity"`
}

func (CourseOffering) TableName() string {
	return "course_offerings"
}

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	OfferingID uint             `gorm:"uniqueIndex:idx_offering_student;type:bigint unsigned" json:"offeringId"`
	StudentID  uint             `gorm:"uniqueIndex:idx_offering_student;type:bigint unsigned" json:"studentId"`
	Status     EnrollmentStatus `gorm:"size:20;default:'active'" json:"status"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
