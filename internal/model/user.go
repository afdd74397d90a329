package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "USER"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}

// AuthUser 登录凭据，与 User 一对一
type AuthUser struct {
	AuthID         string `gorm:"type:uuid;primaryKey" json:"auth_id"`
	UserID         string `gorm:"type:uuid;not null;index" json:"user_id"`
	Email          string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	HashedPassword string `gorm:"not null" json:"-"`
}

func (AuthUser) TableName() string {
	return "AUTH_USER"
}

func (u *AuthUser) BeforeCreate(tx *gorm.DB) error {
	if u.AuthID == "" {
		u.AuthID = uuid.NewString()
	}
	return nil
}
