package service

import (
	"Jandi/internal/pkg/consts"
	"Jandi/internal/pkg/rss"
	"Jandi/internal/pkg/security"
	"context"
	log "log/slog"
	"strings"
	"unicode"
)

// OwnershipVerifier 在账号的最新文章里寻找有效的挑战口令
// 调用方只拿到一个布尔结论；抓取失败与"确实没发口令"在日志里区分
type OwnershipVerifier interface {
	// Verify 返回验证结论与本次抓取到的文章列表
	// 文章列表返回给调用方复用，避免同一次注册重复拉取外部 feed
	Verify(ctx context.Context, platformName, accountID, userID string, platformID uint64) (bool, []rss.Article)
}

type OwnershipVerifierImpl struct {
	registry   *rss.Registry
	issuer     *security.ChallengeIssuer
	scanWindow int
}

func NewOwnershipVerifier(registry *rss.Registry, issuer *security.ChallengeIssuer, scanWindow int) OwnershipVerifier {
	if scanWindow <= 0 {
		scanWindow = 3
	}
	return &OwnershipVerifierImpl{
		registry:   registry,
		issuer:     issuer,
		scanWindow: scanWindow,
	}
}

func (s *OwnershipVerifierImpl) Verify(ctx context.Context, platformName, accountID, userID string, platformID uint64) (bool, []rss.Article) {
	adapter, ok := s.registry.Resolve(platformName)
	if !ok {
		log.WarnContext(ctx, "Ownership verify on unknown platform", "platform", platformName)
		return false, nil
	}

	articles, err := adapter.Fetch(ctx, accountID)
	if err != nil {
		// 网络/解析失败折叠为验证失败，但日志必须与"没有文章"可区分
		log.ErrorContext(ctx, "RSS fetch failed during ownership verify",
			"platform", platformName, "account_id", accountID, "err", err)
		return false, nil
	}

	if len(articles) == 0 {
		log.InfoContext(ctx, "No articles found during ownership verify",
			"platform", platformName, "account_id", accountID)
		return false, nil
	}

	window := s.scanWindow
	if len(articles) < window {
		window = len(articles)
	}

	for _, article := range articles[:window] {
		token, found := extractChallenge(article.Title)
		if !found {
			continue
		}

		claims, err := s.issuer.Parse(token)
		if err != nil {
			// 过期、被篡改、格式损坏一视同仁：这条不能证明所有权
			log.InfoContext(ctx, "Challenge token rejected",
				"platform", platformName, "account_id", accountID, "err", err)
			continue
		}

		if !claims.Matches(userID, platformID) {
			log.InfoContext(ctx, "Challenge token identity mismatch",
				"platform", platformName, "account_id", accountID)
			continue
		}

		return true, articles
	}

	return false, articles
}

// extractChallenge 从标题中截取挑战口令：前缀之后到下一个空白符为止
func extractChallenge(title string) (string, bool) {
	idx := strings.Index(title, consts.ChallengePrefix)
	if idx < 0 {
		return "", false
	}

	rest := title[idx+len(consts.ChallengePrefix):]
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end >= 0 {
		rest = rest[:end]
	}

	if rest == "" {
		return "", false
	}
	return rest, true
}
