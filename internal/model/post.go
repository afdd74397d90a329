package model

import "time"

// Post 同步自外部平台的文章，归属于某条 UserPlatform 绑定
// 绑定删除时文章级联删除，不允许悬挂
type Post struct {
	URL         string    `gorm:"primaryKey" json:"url"`
	UserID      string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	PlatformID  uint64    `gorm:"primaryKey" json:"platform_id"`
	PublishedAt time.Time `gorm:"column:date;not null" json:"published_at"`
	Category    string    `gorm:"not null" json:"category"`
	Title       string    `gorm:"not null" json:"title"`
}

func (Post) TableName() string {
	return "POSTS"
}
