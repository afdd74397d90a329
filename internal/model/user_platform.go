package model

import "time"

// UserPlatform 用户与外部博客账号的绑定
// 复合主键 (user_id, platform_id)：每个用户在一个平台上至多绑定一个账号
// 行的存在本身就代表所有权在写入时刻已验证通过
type UserPlatform struct {
	UserID     string     `gorm:"type:uuid;primaryKey" json:"user_id"`
	PlatformID uint64     `gorm:"primaryKey" json:"platform_id"`
	AccountID  string     `gorm:"column:account_id;type:varchar(255);not null" json:"account_id"`
	LastUpload *time.Time `json:"last_upload"`
}

func (UserPlatform) TableName() string {
	return "USER_PLATFORM"
}
