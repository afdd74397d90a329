package consts

const (
	// ChallengePrefix 所有权挑战 Token 在博客标题中的固定前缀
	ChallengePrefix = "JANDI-AUTH-"
)

const (
	PlatformVelog   = "velog"
	PlatformNaver   = "naver"
	PlatformTistory = "tistory"
)

const (
	// InactiveDays 超过该天数未发文的用户会收到提醒邮件
	InactiveDays = 7
)
