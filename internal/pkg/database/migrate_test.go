package database

import (
	"fmt"
	"strings"
	"testing"

	"Jandi/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMigrateDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestAutoMigrateSeedsPlatforms(t *testing.T) {
	db := newMigrateDBForTest(t)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var names []string
	if err := db.Model(&model.Platform{}).Order("id").Pluck("name", &names).Error; err != nil {
		t.Fatalf("pluck platforms: %v", err)
	}
	if len(names) != len(SeedPlatforms) {
		t.Fatalf("expected %d platforms, got %d", len(SeedPlatforms), len(names))
	}
	for i, want := range SeedPlatforms {
		if names[i] != want {
			t.Fatalf("platform %d: want %s got %s", i, want, names[i])
		}
	}
}

func TestAutoMigrateIsIdempotent(t *testing.T) {
	db := newMigrateDBForTest(t)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var count int64
	if err := db.Model(&model.Platform{}).Count(&count).Error; err != nil {
		t.Fatalf("count platforms: %v", err)
	}
	if count != int64(len(SeedPlatforms)) {
		t.Fatalf("seeding not idempotent, got %d platforms", count)
	}
}
