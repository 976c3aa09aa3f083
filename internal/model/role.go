package model

// Permission 权限点，按 code 被中间件校验
// swagger:model Permission
type Permission struct {
	BaseModel
	Code        string `gorm:"size:100;unique;not null" json:"code"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

func (Permission) TableName() string {
	return "permissions"
}

// swagger:model Role
type Role struct {
	BaseModel
	Name        string       `gorm:"size:50;unique;not null" json:"name"`
	Description string       `gorm:"size:255" json:"description"`
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// 授权操作使用的权限码
const (
	PermAcademicManage   = "academic:manage"
	PermCourseManage     = "course:manage"
	PermEnrollmentManage = "enrollment:manage"
	PermQuizManage       = "quiz:manage"
	PermQuizGrade        = "quiz:grade"
	PermResourceManage   = "resource:manage"
	PermRoleManage       = "role:manage"
)
