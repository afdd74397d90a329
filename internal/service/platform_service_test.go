package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"Jandi/internal/model"
	"Jandi/internal/pkg/consts"
	"Jandi/internal/pkg/database"
	jandiredis "Jandi/internal/pkg/redis"
	"Jandi/internal/pkg/rss"
	"Jandi/internal/pkg/security"
	"Jandi/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// stubVerifier 固定验证结论，记录调用次数
type stubVerifier struct {
	verified bool
	articles []rss.Article
	calls    int
}

func (s *stubVerifier) Verify(ctx context.Context, platformName, accountID, userID string, platformID uint64) (bool, []rss.Article) {
	s.calls++
	return s.verified, s.articles
}

// stubPublisher 记录投递的批次，published 在每次投递后收到通知
type stubPublisher struct {
	mu        sync.Mutex
	topics    []string
	batches   []interface{}
	published chan struct{}
}

func newStubPublisher() *stubPublisher {
	return &stubPublisher{published: make(chan struct{}, 8)}
}

func (s *stubPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	s.mu.Lock()
	s.topics = append(s.topics, topic)
	s.batches = append(s.batches, payload)
	s.mu.Unlock()
	s.published <- struct{}{}
	return nil
}

func (s *stubPublisher) waitPublished(t *testing.T) {
	t.Helper()
	select {
	case <-s.published:
	case <-time.After(2 * time.Second):
		t.Fatalf("article batch was never published")
	}
}

// stubRefresher 模拟物化视图刷新
type stubRefresher struct {
	err   error
	calls int
}

func (s *stubRefresher) RefreshAggregates(ctx context.Context) error {
	s.calls++
	return s.err
}

type serviceFixture struct {
	svc       PlatformService
	db        *gorm.DB
	verifier  *stubVerifier
	publisher *stubPublisher
	refresher *stubRefresher
	issuer    *security.ChallengeIssuer
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	jandiredis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { jandiredis.Rdb = nil })

	verifier := &stubVerifier{}
	publisher := newStubPublisher()
	refresher := &stubRefresher{}
	issuer := security.NewChallengeIssuer("service-test-secret", time.Hour)

	svc := NewPlatformService(
		db,
		repository.NewPlatformRepo(db),
		repository.NewUserPlatformRepo(db),
		refresher,
		issuer,
		verifier,
		publisher,
		"jandi.articles",
	)

	return &serviceFixture{
		svc:       svc,
		db:        db,
		verifier:  verifier,
		publisher: publisher,
		refresher: refresher,
		issuer:    issuer,
	}
}

func (f *serviceFixture) platformID(t *testing.T, name string) uint64 {
	t.Helper()
	var platform model.Platform
	require.NoError(t, f.db.Where("name = ?", name).First(&platform).Error)
	return platform.ID
}

func TestRequestChallenge(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	challenge, err := f.svc.RequestChallenge(ctx, "user-a", "velog")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(challenge, consts.ChallengePrefix))

	claims, err := f.issuer.Parse(strings.TrimPrefix(challenge, consts.ChallengePrefix))
	require.NoError(t, err)
	assert.True(t, claims.Matches("user-a", f.platformID(t, "velog")))
}

func TestRequestChallengeUnknownPlatform(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.RequestChallenge(context.Background(), "user-a", "medium")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestRegisterCreatedThenUpdated(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	newest := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	f.verifier.verified = true
	f.verifier.articles = []rss.Article{
		{Title: "최신 글", Link: "https://example.com/new", PublishedAt: newest},
		{Title: "지난 글", Link: "https://example.com/old", PublishedAt: newest.Add(-24 * time.Hour)},
	}

	outcome, err := f.svc.Register(ctx, "user-a", "velog", "blog-account")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	f.publisher.waitPublished(t)

	platformID := f.platformID(t, "velog")
	var mapping model.UserPlatform
	require.NoError(t, f.db.Where("user_id = ? AND platform_id = ?", "user-a", platformID).First(&mapping).Error)
	assert.Equal(t, "blog-account", mapping.AccountID)
	require.NotNil(t, mapping.LastUpload)
	assert.True(t, mapping.LastUpload.Equal(newest))

	// 重复注册换绑到新账号，结论变为 updated
	outcome, err = f.svc.Register(ctx, "user-a", "velog", "another-account")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	f.publisher.waitPublished(t)

	var count int64
	require.NoError(t, f.db.Model(&model.UserPlatform{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterUnknownPlatformTouchesNothing(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Register(context.Background(), "user-a", "medium", "acct")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
	assert.Zero(t, f.verifier.calls)

	var count int64
	require.NoError(t, f.db.Model(&model.UserPlatform{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterOwnershipNotProvenTouchesNothing(t *testing.T) {
	f := newServiceFixture(t)
	f.verifier.verified = false

	_, err := f.svc.Register(context.Background(), "user-a", "velog", "acct")
	assert.ErrorIs(t, err, ErrOwnershipNotProven)
	assert.Equal(t, 1, f.verifier.calls)

	var count int64
	require.NoError(t, f.db.Model(&model.UserPlatform{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUnregisterCascadesPosts(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	platformID := f.platformID(t, "velog")

	require.NoError(t, f.db.Create(&model.UserPlatform{
		UserID: "user-a", PlatformID: platformID, AccountID: "acct",
	}).Error)
	for i := 0; i < 2; i++ {
		require.NoError(t, f.db.Create(&model.Post{
			URL: fmt.Sprintf("https://example.com/%d", i), UserID: "user-a", PlatformID: platformID,
			PublishedAt: time.Now(), Category: "dev", Title: fmt.Sprintf("post %d", i),
		}).Error)
	}
	// 另一条绑定的文章不受影响
	require.NoError(t, f.db.Create(&model.UserPlatform{
		UserID: "user-b", PlatformID: platformID, AccountID: "other",
	}).Error)
	require.NoError(t, f.db.Create(&model.Post{
		URL: "https://example.com/keep", UserID: "user-b", PlatformID: platformID,
		PublishedAt: time.Now(), Category: "dev", Title: "keep",
	}).Error)

	require.NoError(t, f.svc.Unregister(ctx, "user-a", "velog"))
	assert.Equal(t, 1, f.refresher.calls)

	var postCount, mappingCount int64
	require.NoError(t, f.db.Model(&model.Post{}).Where("user_id = ?", "user-a").Count(&postCount).Error)
	require.NoError(t, f.db.Model(&model.UserPlatform{}).Where("user_id = ?", "user-a").Count(&mappingCount).Error)
	assert.Zero(t, postCount)
	assert.Zero(t, mappingCount)

	var keptCount int64
	require.NoError(t, f.db.Model(&model.Post{}).Where("user_id = ?", "user-b").Count(&keptCount).Error)
	assert.EqualValues(t, 1, keptCount)
}

func TestUnregisterSucceedsWhenRefreshFails(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	platformID := f.platformID(t, "velog")

	require.NoError(t, f.db.Create(&model.UserPlatform{
		UserID: "user-a", PlatformID: platformID, AccountID: "acct",
	}).Error)

	// 视图刷新失败只告警，删除结论不变
	f.refresher.err = errors.New("refresh blew up")
	require.NoError(t, f.svc.Unregister(ctx, "user-a", "velog"))

	var count int64
	require.NoError(t, f.db.Model(&model.UserPlatform{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUnregisterNotRegistered(t *testing.T) {
	f := newServiceFixture(t)

	err := f.svc.Unregister(context.Background(), "user-a", "velog")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestResolvePlatformCachesID(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.RequestChallenge(ctx, "user-a", "velog")
	require.NoError(t, err)

	cached, err := jandiredis.GetValue(ctx, consts.PlatformIDKey+"velog")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d", f.platformID(t, "velog")), cached)
}

func TestListUserPlatforms(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	platformID := f.platformID(t, "tistory")

	require.NoError(t, f.db.Create(&model.UserPlatform{
		UserID: "user-a", PlatformID: platformID, AccountID: "acct",
	}).Error)

	details, err := f.svc.ListUserPlatforms(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "tistory", details[0].PlatformName)
	assert.Equal(t, "acct", details[0].AccountID)
}
