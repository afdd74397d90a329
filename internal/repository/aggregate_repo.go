package repository

import (
	"context"

	"gorm.io/gorm"
)

// AggregateRepo 物化视图的刷新入口
// 刷新运行在自己的事务里，与触发它的写操作互不影响：
// 删除/写入一旦提交即为权威，视图落后只是可恢复的告警
type AggregateRepo interface {
	RefreshAggregates(ctx context.Context) error
}

type AggregateRepoImpl struct {
	db *gorm.DB
}

func NewAggregateRepo(db *gorm.DB) AggregateRepo {
	return &AggregateRepoImpl{db: db}
}

// RefreshAggregates 重算 USER_STAT 与 POST_AGG
func (s *AggregateRepoImpl) RefreshAggregates(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`REFRESH MATERIALIZED VIEW "USER_STAT"`).Error; err != nil {
			return err
		}
		if err := tx.Exec(`REFRESH MATERIALIZED VIEW "POST_AGG"`).Error; err != nil {
			return err
		}
		return nil
	})
}
