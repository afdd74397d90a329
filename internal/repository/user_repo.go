package repository

import (
	"Jandi/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUserWithAuth(ctx context.Context, user *model.User, auth *model.AuthUser) error
	GetAuthByEmail(ctx context.Context, email string) (*model.AuthUser, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
	ListInactiveEmails(ctx context.Context, days int) ([]string, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

// CreateUserWithAuth 同一事务内创建用户与登录凭据
func (s *UserRepoImpl) CreateUserWithAuth(ctx context.Context, user *model.User, auth *model.AuthUser) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		auth.UserID = user.UserID
		return tx.Create(auth).Error
	})
}

func (s *UserRepoImpl) GetAuthByEmail(ctx context.Context, email string) (*model.AuthUser, error) {
	var auth model.AuthUser
	result := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&auth)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &auth, nil
}

func (s *UserRepoImpl) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// ListInactiveEmails 查询最近 N 天没有任何文章的用户邮箱
func (s *UserRepoImpl) ListInactiveEmails(ctx context.Context, days int) ([]string, error) {
	var emails []string
	interval := fmt.Sprintf("%d days", days)
	result := s.db.WithContext(ctx).Raw(`
		SELECT u.email
		FROM "USER" u
		LEFT JOIN "POSTS" p
		  ON u.user_id = p.user_id
		 AND p.date >= NOW() - ?::interval
		WHERE p.user_id IS NULL
		  AND u.email <> ''`, interval).
		Scan(&emails)
	if result.Error != nil {
		return nil, result.Error
	}
	return emails, nil
}
