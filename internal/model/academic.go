package model

// swagger:model College
type College struct {
	BaseModel
	Name string `gorm:"size:150;not null" json:"name"`
	Code string `gorm:"size:32;unique;not null" json:"code"`
}

func (College) TableName() string {
	return "colleges"
}

// swagger:model Department
type Department struct {
	BaseModel
	CollegeID uint   `gorm:"index;type:bigint unsigned" json:"collegeId"`
	Name      string `gorm:"size:150;not null" json:"name"`
	Code      string `gorm:"size:32;unique;not null" json:"code"`
}

func (Department) TableName() string {
	return "departments"
}

// swagger:model Major
type Major struct {
	BaseModel
	DepartmentID uint   `gorm:"index;type:bigint unsigned" json:"departmentId"`
	Name         string `gorm:"size:150;not null" json:"name"`
	Code         string `gorm:"size:32;unique;not null" json:"code"`
}

func (Major) TableName() string {
	return "majors"
}
