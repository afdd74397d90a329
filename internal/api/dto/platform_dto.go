package dto

import "time"

// UserPlatformRequest 绑定/解绑请求体
type UserPlatformRequest struct {
	PlatformName string `json:"platform_name" binding:"required,max=255"`
	AccountID    string `json:"account_id" binding:"required,max=255"`
}

// UnregisterRequest 解绑只需要平台名
type UnregisterRequest struct {
	PlatformName string `json:"platform_name" binding:"required,max=255"`
}

// RegisterPlatformResponse 绑定结果
type RegisterPlatformResponse struct {
	Outcome      string `json:"outcome"`
	Platform     string `json:"platform"`
	RegisteredID string `json:"registered_id"`
}

// ChallengeResponse 挑战口令下发
type ChallengeResponse struct {
	Challenge string `json:"challenge"`
	ExpireAt  string `json:"expire_at,omitempty"`
}

// UserPlatformDTO 已绑定平台列表项
type UserPlatformDTO struct {
	PlatformName string     `json:"platform_name"`
	AccountID    string     `json:"account_id"`
	LastUpload   *time.Time `json:"last_upload"`
}
