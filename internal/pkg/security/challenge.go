package security

import (
	"Jandi/internal/pkg/consts"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ChallengeClaims 所有权挑战 Token 的载荷
// 两个 ID 一律以字符串形式存放：Token 会经过外部平台的富文本往返，
// 只有规范化字符串比较是可靠的
type ChallengeClaims struct {
	UserID     string `json:"user_id"`
	PlatformID string `json:"platform_id"`
	jwt.RegisteredClaims
}

// ChallengeIssuer 签发、校验博客所有权挑战 Token
// 无任何持久化，校验完全由 Token 本身 + 密钥推导
type ChallengeIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewChallengeIssuer(secret string, ttl time.Duration) *ChallengeIssuer {
	return &ChallengeIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewChallengeIssuerWithClock 测试用，注入时钟
func NewChallengeIssuerWithClock(secret string, ttl time.Duration, now func() time.Time) *ChallengeIssuer {
	return &ChallengeIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

// Issue 为 (user, platform) 签发一条带前缀的挑战字符串
func (s *ChallengeIssuer) Issue(userID string, platformID uint64) (string, error) {
	issuedAt := s.now()

	claims := &ChallengeClaims{
		UserID:     userID,
		PlatformID: strconv.FormatUint(platformID, 10),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Issuer:    "Jandi",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		// 签名失败只可能是配置问题
		return "", fmt.Errorf("签名挑战 Token 失败: %w", err)
	}

	return consts.ChallengePrefix + tokenString, nil
}

// Parse 校验签名与有效期并解析载荷，入参不含前缀
func (s *ChallengeIssuer) Parse(tokenString string) (*ChallengeClaims, error) {
	claims := &ChallengeClaims{}

	parser := jwt.NewParser(jwt.WithTimeFunc(s.now))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名方法: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("挑战 token 解析失败: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("挑战 token 无效或已过期")
	}

	return claims, nil
}

// Matches 规范化字符串比较载荷与期望身份是否一致
func (c *ChallengeClaims) Matches(userID string, platformID uint64) bool {
	return c.UserID == userID && c.PlatformID == strconv.FormatUint(platformID, 10)
}
