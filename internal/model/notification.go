package model

// swagger:model Notification
type Notification struct {
	BaseModel
	UserID uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	Title  string `gorm:"size:255;not null" json:"title"`
	Body   string `gorm:"type:text" json:"body"`
	Link   string `gorm:"size:512" json:"link"`
	IsRead bool   `gorm:"default:false" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}
