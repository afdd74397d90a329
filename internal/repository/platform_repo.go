package repository

import (
	"Jandi/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PlatformRepo interface {
	GetByName(ctx context.Context, name string) (*model.Platform, error)
	GetByID(ctx context.Context, id uint64) (*model.Platform, error)
}

type PlatformRepoImpl struct {
	db *gorm.DB
}

func NewPlatformRepo(db *gorm.DB) PlatformRepo {
	return &PlatformRepoImpl{db: db}
}

// GetByName 按平台名查询，大小写敏感，不存在时返回 nil
func (s *PlatformRepoImpl) GetByName(ctx context.Context, name string) (*model.Platform, error) {
	var platform model.Platform
	result := s.db.WithContext(ctx).
		Where("name = ?", name).
		First(&platform)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &platform, nil
}

func (s *PlatformRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Platform, error) {
	var platform model.Platform
	result := s.db.WithContext(ctx).First(&platform, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &platform, nil
}
