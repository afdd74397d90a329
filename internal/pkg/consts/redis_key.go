package consts

const (
	// TokenRevokedKey 已注销 Token 的签名黑名单
	TokenRevokedKey = "auth:token:revoked:"
	// PlatformIDKey 平台名 -> 平台 ID 缓存
	PlatformIDKey = "platform:id:"
)
