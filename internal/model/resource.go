package model

// Resource 课程附件（讲义、课件、视频等）
// swagger:model Resource
type Resource struct {
	UUIDBase
	CourseID        uint   `gorm:"index;type:bigint unsigned" json:"courseId"`
	UploaderID      uint   `gorm:"index;type:bigint unsigned" json:"uploaderId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	FileName        string `gorm:"size:255" json:"fileName"`
	URL             string `gorm:"size:512" json:"url"`
	ObjectKey       string `gorm:"size:512" json:"-"`
	MimeType        string `gorm:"size:100" json:"mimeType"`
	SizeBytes       int64  `gorm:"default:0" json:"sizeBytes"`
	DurationSeconds int    `gorm:"default:0" json:"durationSeconds"` // 视频时长，上传时探测
}

func (Resource) TableName() string {
	return "resources"
}
