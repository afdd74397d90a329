package repository

import (
	"Jandi/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// UserPlatformDetail 绑定信息与平台名的联查结果
type UserPlatformDetail struct {
	PlatformName string     `json:"platform_name"`
	AccountID    string     `json:"account_id"`
	LastUpload   *time.Time `json:"last_upload"`
}

// UserPlatformRepo 用户-平台绑定的存储层
// 所有写操作只在调用方给定的事务边界内暂存变更，此处从不提交
type UserPlatformRepo interface {
	WithTx(tx *gorm.DB) UserPlatformRepo
	Get(ctx context.Context, userID string, platformID uint64) (*model.UserPlatform, error)
	Upsert(ctx context.Context, userID string, platformID uint64, accountID string, lastUpload *time.Time) (created bool, err error)
	Delete(ctx context.Context, mapping *model.UserPlatform) error
	ListByUser(ctx context.Context, userID string) ([]*UserPlatformDetail, error)
	ListPosts(ctx context.Context, userID string, platformID uint64) ([]*model.Post, error)
	DeletePost(ctx context.Context, post *model.Post) error
}

type UserPlatformRepoImpl struct {
	db *gorm.DB
}

func NewUserPlatformRepo(db *gorm.DB) UserPlatformRepo {
	return &UserPlatformRepoImpl{db: db}
}

// WithTx 返回绑定到指定事务的仓储实例
func (s *UserPlatformRepoImpl) WithTx(tx *gorm.DB) UserPlatformRepo {
	return &UserPlatformRepoImpl{db: tx}
}

// Get 查询某用户在某平台的绑定，不存在时返回 nil
func (s *UserPlatformRepoImpl) Get(ctx context.Context, userID string, platformID uint64) (*model.UserPlatform, error) {
	var mapping model.UserPlatform
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND platform_id = ?", userID, platformID).
		First(&mapping)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &mapping, nil
}

// Upsert 幂等写入绑定：已存在只更新 account_id / last_upload，否则新建
// 并发重复创建命中主键冲突时退化为更新，保证确定性收敛
func (s *UserPlatformRepoImpl) Upsert(ctx context.Context, userID string, platformID uint64, accountID string, lastUpload *time.Time) (bool, error) {
	existing, err := s.Get(ctx, userID, platformID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		return false, s.updateAccount(ctx, existing, accountID, lastUpload)
	}

	mapping := &model.UserPlatform{
		UserID:     userID,
		PlatformID: platformID,
		AccountID:  accountID,
		LastUpload: lastUpload,
	}
	err = s.db.WithContext(ctx).Create(mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			mapping.LastUpload = nil
			return false, s.updateAccount(ctx, mapping, accountID, lastUpload)
		}
		return false, err
	}
	return true, nil
}

func (s *UserPlatformRepoImpl) updateAccount(ctx context.Context, mapping *model.UserPlatform, accountID string, lastUpload *time.Time) error {
	updates := map[string]interface{}{"account_id": accountID}
	if lastUpload != nil {
		updates["last_upload"] = lastUpload
	}
	return s.db.WithContext(ctx).
		Model(&model.UserPlatform{}).
		Where("user_id = ? AND platform_id = ?", mapping.UserID, mapping.PlatformID).
		Updates(updates).Error
}

// Delete 删除一条绑定
func (s *UserPlatformRepoImpl) Delete(ctx context.Context, mapping *model.UserPlatform) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND platform_id = ?", mapping.UserID, mapping.PlatformID).
		Delete(&model.UserPlatform{}).Error
}

// ListByUser 列出用户的全部绑定，附带平台名
func (s *UserPlatformRepoImpl) ListByUser(ctx context.Context, userID string) ([]*UserPlatformDetail, error) {
	var details []*UserPlatformDetail
	result := s.db.WithContext(ctx).
		Table(`"USER_PLATFORM" up`).
		Select(`p.name AS platform_name, up.account_id, up.last_upload`).
		Joins(`JOIN "PLATFORM" p ON p.id = up.platform_id`).
		Where("up.user_id = ?", userID).
		Scan(&details)
	if result.Error != nil {
		return nil, result.Error
	}
	return details, nil
}

// ListPosts 列出某条绑定名下的全部文章
func (s *UserPlatformRepoImpl) ListPosts(ctx context.Context, userID string, platformID uint64) ([]*model.Post, error) {
	var posts []*model.Post
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND platform_id = ?", userID, platformID).
		Order("date desc").
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// DeletePost 删除一篇文章
func (s *UserPlatformRepoImpl) DeletePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).
		Where("url = ? AND user_id = ? AND platform_id = ?", post.URL, post.UserID, post.PlatformID).
		Delete(&model.Post{}).Error
}
