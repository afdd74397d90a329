package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims 登录态 Token 中包含的业务信息
type UserClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
