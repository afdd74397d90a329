package database

import (
	"Jandi/internal/model"
	"Jandi/internal/pkg/consts"
	log "log/slog"

	"gorm.io/gorm"
)

// SeedPlatforms 系统支持的博客平台，只增不改
var SeedPlatforms = []string{consts.PlatformVelog, consts.PlatformNaver, consts.PlatformTistory}

// AutoMigrate 建表并播种平台字典表
// USER_STAT / POST_AGG 是物化视图，由数据库迁移脚本维护，不参与 AutoMigrate
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.AuthUser{},
		&model.Platform{},
		&model.UserPlatform{},
		&model.Post{},
	)
	if err != nil {
		return err
	}

	for _, name := range SeedPlatforms {
		res := db.Where(model.Platform{Name: name}).FirstOrCreate(&model.Platform{Name: name})
		if res.Error != nil {
			return res.Error
		}
	}

	log.Info("Database migration completed.")
	return nil
}
