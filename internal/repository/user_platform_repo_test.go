package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"Jandi/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newRepoDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.AuthUser{},
		&model.Platform{},
		&model.UserPlatform{},
		&model.Post{},
	); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

func seedPlatform(t *testing.T, db *gorm.DB, name string) uint64 {
	t.Helper()
	platform := model.Platform{Name: name}
	if err := db.Create(&platform).Error; err != nil {
		t.Fatalf("seed platform %s: %v", name, err)
	}
	return platform.ID
}

func TestUpsertCreateThenUpdate(t *testing.T) {
	db := newRepoDBForTest(t)
	repo := NewUserPlatformRepo(db)
	ctx := context.Background()
	platformID := seedPlatform(t, db, "velog")

	firstUpload := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	created, err := repo.Upsert(ctx, "user-a", platformID, "old-account", &firstUpload)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !created {
		t.Fatalf("first upsert should create")
	}

	// 换绑同一平台只更新，不产生第二行
	created, err = repo.Upsert(ctx, "user-a", platformID, "new-account", nil)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if created {
		t.Fatalf("second upsert should update")
	}

	mapping, err := repo.Get(ctx, "user-a", platformID)
	if err != nil {
		t.Fatalf("get mapping: %v", err)
	}
	if mapping == nil {
		t.Fatalf("mapping should exist")
	}
	if mapping.AccountID != "new-account" {
		t.Fatalf("account not updated: %s", mapping.AccountID)
	}
	// lastUpload 为空时保留原值
	if mapping.LastUpload == nil || !mapping.LastUpload.Equal(firstUpload) {
		t.Fatalf("last_upload should be preserved, got %v", mapping.LastUpload)
	}

	var count int64
	if err := db.Model(&model.UserPlatform{}).Count(&count).Error; err != nil {
		t.Fatalf("count mappings: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one mapping, got %d", count)
	}
}

func TestGetMissingMappingReturnsNil(t *testing.T) {
	db := newRepoDBForTest(t)
	repo := NewUserPlatformRepo(db)

	mapping, err := repo.Get(context.Background(), "user-a", 99)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if mapping != nil {
		t.Fatalf("expected nil for missing mapping")
	}
}

func TestListByUser(t *testing.T) {
	db := newRepoDBForTest(t)
	repo := NewUserPlatformRepo(db)
	ctx := context.Background()

	velogID := seedPlatform(t, db, "velog")
	naverID := seedPlatform(t, db, "naver")

	if _, err := repo.Upsert(ctx, "user-a", velogID, "acct-velog", nil); err != nil {
		t.Fatalf("seed mapping: %v", err)
	}
	if _, err := repo.Upsert(ctx, "user-a", naverID, "acct-naver", nil); err != nil {
		t.Fatalf("seed mapping: %v", err)
	}
	if _, err := repo.Upsert(ctx, "user-b", velogID, "someone-else", nil); err != nil {
		t.Fatalf("seed mapping: %v", err)
	}

	details, err := repo.ListByUser(ctx, "user-a")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(details))
	}

	names := map[string]string{}
	for _, d := range details {
		names[d.PlatformName] = d.AccountID
	}
	if names["velog"] != "acct-velog" || names["naver"] != "acct-naver" {
		t.Fatalf("unexpected detail rows: %+v", names)
	}
}

func TestListPostsOrderAndDelete(t *testing.T) {
	db := newRepoDBForTest(t)
	repo := NewUserPlatformRepo(db)
	ctx := context.Background()
	platformID := seedPlatform(t, db, "velog")

	if _, err := repo.Upsert(ctx, "user-a", platformID, "acct", nil); err != nil {
		t.Fatalf("seed mapping: %v", err)
	}

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		post := model.Post{
			URL:         fmt.Sprintf("https://example.com/%d", i),
			UserID:      "user-a",
			PlatformID:  platformID,
			PublishedAt: base.AddDate(0, 0, i),
			Category:    "dev",
			Title:       fmt.Sprintf("post %d", i),
		}
		if err := db.Create(&post).Error; err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}

	posts, err := repo.ListPosts(ctx, "user-a", platformID)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	// 按发布时间倒序
	if !posts[0].PublishedAt.After(posts[2].PublishedAt) {
		t.Fatalf("posts not ordered newest first")
	}

	for _, post := range posts {
		if err := repo.DeletePost(ctx, post); err != nil {
			t.Fatalf("delete post: %v", err)
		}
	}

	mapping, err := repo.Get(ctx, "user-a", platformID)
	if err != nil {
		t.Fatalf("get mapping: %v", err)
	}
	if err := repo.Delete(ctx, mapping); err != nil {
		t.Fatalf("delete mapping: %v", err)
	}

	var postCount, mappingCount int64
	_ = db.Model(&model.Post{}).Count(&postCount).Error
	_ = db.Model(&model.UserPlatform{}).Count(&mappingCount).Error
	if postCount != 0 || mappingCount != 0 {
		t.Fatalf("expected empty tables, posts=%d mappings=%d", postCount, mappingCount)
	}
}
