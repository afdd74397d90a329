package service

import (
	"Jandi/internal/pkg/consts"
	"Jandi/internal/pkg/kafka"
	"Jandi/internal/pkg/redis"
	"Jandi/internal/pkg/rss"
	"Jandi/internal/pkg/security"
	"Jandi/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// RegisterOutcome 区分首次绑定与换绑
type RegisterOutcome string

const (
	OutcomeCreated RegisterOutcome = "created"
	OutcomeUpdated RegisterOutcome = "updated"
)

const platformCacheTTL = time.Hour

// ArticlePublisher 文章批量发布抽象，注册提交后尽力投递
type ArticlePublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// PlatformService 平台绑定的编排层：挑战签发、所有权验证、绑定增删、列表
type PlatformService interface {
	RequestChallenge(ctx context.Context, userID, platformName string) (string, error)
	Register(ctx context.Context, userID, platformName, accountID string) (RegisterOutcome, error)
	Unregister(ctx context.Context, userID, platformName string) error
	ListUserPlatforms(ctx context.Context, userID string) ([]*repository.UserPlatformDetail, error)
}

type PlatformServiceImpl struct {
	db           *gorm.DB
	platformRepo repository.PlatformRepo
	mappingRepo  repository.UserPlatformRepo
	aggregates   repository.AggregateRepo
	issuer       *security.ChallengeIssuer
	verifier     OwnershipVerifier
	publisher    ArticlePublisher
	articleTopic string
}

func NewPlatformService(
	db *gorm.DB,
	platformRepo repository.PlatformRepo,
	mappingRepo repository.UserPlatformRepo,
	aggregates repository.AggregateRepo,
	issuer *security.ChallengeIssuer,
	verifier OwnershipVerifier,
	publisher ArticlePublisher,
	articleTopic string,
) PlatformService {
	return &PlatformServiceImpl{
		db:           db,
		platformRepo: platformRepo,
		mappingRepo:  mappingRepo,
		aggregates:   aggregates,
		issuer:       issuer,
		verifier:     verifier,
		publisher:    publisher,
		articleTopic: articleTopic,
	}
}

// RequestChallenge 签发挑战口令，用户需将整段口令原样发布到博客标题中
func (s *PlatformServiceImpl) RequestChallenge(ctx context.Context, userID, platformName string) (string, error) {
	platformID, err := s.resolvePlatform(ctx, platformName)
	if err != nil {
		return "", err
	}

	challenge, err := s.issuer.Issue(userID, platformID)
	if err != nil {
		log.ErrorContext(ctx, "Challenge issue failed", "err", err)
		return "", UnExpectedError
	}
	return challenge, nil
}

// Register 验证所有权后绑定账号，验证不通过时不触碰任何存储
func (s *PlatformServiceImpl) Register(ctx context.Context, userID, platformName, accountID string) (RegisterOutcome, error) {
	platformID, err := s.resolvePlatform(ctx, platformName)
	if err != nil {
		return "", err
	}

	verified, articles := s.verifier.Verify(ctx, platformName, accountID, userID, platformID)
	if !verified {
		return "", ErrOwnershipNotProven
	}

	var lastUpload *time.Time
	if len(articles) > 0 {
		newest := articles[0].PublishedAt
		lastUpload = &newest
	}

	var created bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		created, txErr = s.mappingRepo.WithTx(tx).Upsert(ctx, userID, platformID, accountID, lastUpload)
		return txErr
	})
	if err != nil {
		log.ErrorContext(ctx, "Platform mapping upsert failed",
			"user_id", userID, "platform", platformName, "err", err)
		return "", UnExpectedError
	}

	// 绑定提交即注册成功，文章投递失败只记日志，绝不回滚
	s.publishArticles(ctx, userID, platformName, articles)

	if created {
		return OutcomeCreated, nil
	}
	return OutcomeUpdated, nil
}

// Unregister 解绑：文章与绑定同事务删除，视图刷新失败不影响删除结论
func (s *PlatformServiceImpl) Unregister(ctx context.Context, userID, platformName string) error {
	platformID, err := s.resolvePlatform(ctx, platformName)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.mappingRepo.WithTx(tx)

		mapping, txErr := repo.Get(ctx, userID, platformID)
		if txErr != nil {
			return txErr
		}
		if mapping == nil {
			return ErrNotRegistered
		}

		posts, txErr := repo.ListPosts(ctx, userID, platformID)
		if txErr != nil {
			return txErr
		}
		for _, post := range posts {
			if txErr = repo.DeletePost(ctx, post); txErr != nil {
				return txErr
			}
		}

		return repo.Delete(ctx, mapping)
	})
	if err != nil {
		if errors.Is(err, ErrNotRegistered) {
			return err
		}
		log.ErrorContext(ctx, "Platform unregister failed",
			"user_id", userID, "platform", platformName, "err", err)
		return UnExpectedError
	}

	if err = s.aggregates.RefreshAggregates(ctx); err != nil {
		log.WarnContext(ctx, "Materialized view refresh failed after platform delete",
			"user_id", userID, "platform", platformName, "err", err)
	}

	return nil
}

// ListUserPlatforms 查询用户已绑定的平台
func (s *PlatformServiceImpl) ListUserPlatforms(ctx context.Context, userID string) ([]*repository.UserPlatformDetail, error) {
	return s.mappingRepo.ListByUser(ctx, userID)
}

// resolvePlatform 平台名 -> 平台 ID，带 redis 缓存；平台字典只增不改，缓存可以放心用
func (s *PlatformServiceImpl) resolvePlatform(ctx context.Context, platformName string) (uint64, error) {
	cacheKey := consts.PlatformIDKey + platformName

	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		if id, parseErr := strconv.ParseUint(cached, 10, 64); parseErr == nil {
			return id, nil
		}
	}

	platform, err := s.platformRepo.GetByName(ctx, platformName)
	if err != nil {
		log.ErrorContext(ctx, "Platform lookup failed", "platform", platformName, "err", err)
		return 0, UnExpectedError
	}
	if platform == nil {
		return 0, ErrUnknownPlatform
	}

	if err = redis.SetWithExpiration(ctx, cacheKey, strconv.FormatUint(platform.ID, 10), platformCacheTTL); err != nil {
		log.WarnContext(ctx, "Platform cache write failed", "platform", platformName, "err", err)
	}

	return platform.ID, nil
}

// publishArticles 向队列投递注册账号的文章批次，与请求生命周期解耦
func (s *PlatformServiceImpl) publishArticles(ctx context.Context, userID, platformName string, articles []rss.Article) {
	if len(articles) == 0 {
		return
	}

	batch := make([]kafka.ArticleMessage, 0, len(articles))
	for _, article := range articles {
		batch = append(batch, kafka.ArticleMessage{
			Link:        article.Link,
			PublishedAt: article.PublishedAt,
			Title:       article.Title,
			UserID:      userID,
			Platform:    platformName,
		})
	}

	detached := context.WithoutCancel(ctx)
	go func() {
		pubCtx, cancel := context.WithTimeout(detached, 10*time.Second)
		defer cancel()

		if err := s.publisher.Publish(pubCtx, s.articleTopic, batch); err != nil {
			log.ErrorContext(pubCtx, "Article batch publish failed",
				"user_id", userID, "platform", platformName, "count", len(batch), "err", err)
		}
	}()
}
