package model

// Platform 平台字典表，由启动播种写入，此后只读
type Platform struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"platform_id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}

func (Platform) TableName() string {
	return "PLATFORM"
}
