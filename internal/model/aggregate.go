package model

import "time"

// USER_STAT 与 POST_AGG 是 Postgres 物化视图，只读。
// 它们是 POSTS 的派生缓存，只能整体 REFRESH，永远不是权威数据。

type UserStat struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	Category  string    `gorm:"primaryKey" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	Count     int       `json:"count"`
}

func (UserStat) TableName() string {
	return "USER_STAT"
}

type PostAgg struct {
	Category string    `gorm:"primaryKey" json:"category"`
	Date     time.Time `gorm:"primaryKey" json:"date"`
	UserID   string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	Count    int       `json:"count"`
}

func (PostAgg) TableName() string {
	return "POST_AGG"
}
