package service

import (
	"Jandi/internal/model"
	"Jandi/internal/pkg/consts"
	"Jandi/internal/pkg/redis"
	"Jandi/internal/pkg/security"
	"Jandi/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// UserService 登录态的最小闭环：注册、登录、注销
type UserService interface {
	Register(ctx context.Context, email, name, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, tokenString string) error
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) Register(ctx context.Context, email, name, password string) (*model.User, error) {
	existing, err := s.userRepo.GetAuthByEmail(ctx, email)
	if err != nil {
		log.ErrorContext(ctx, "Auth lookup failed", "err", err)
		return nil, UnExpectedError
	}
	if existing != nil {
		return nil, ErrEmailExist
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return nil, ErrParamInvalid
	}

	user := &model.User{Email: email, Name: name}
	auth := &model.AuthUser{Email: email, HashedPassword: hashed}

	if err = s.userRepo.CreateUserWithAuth(ctx, user, auth); err != nil {
		log.ErrorContext(ctx, "User create failed", "err", err)
		return nil, UnExpectedError
	}

	return user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	auth, err := s.userRepo.GetAuthByEmail(ctx, email)
	if err != nil {
		log.ErrorContext(ctx, "Auth lookup failed", "err", err)
		return "", UnExpectedError
	}
	if auth == nil {
		return "", ErrPasswordIncorrect
	}

	if err = security.CheckPasswordHash(password, auth.HashedPassword); err != nil {
		return "", ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(auth.UserID)
	if err != nil {
		log.ErrorContext(ctx, "Token generate failed", "err", err)
		return "", UnExpectedError
	}

	return token, nil
}

// Logout 将 Token 签名拉黑到其自然过期为止
func (s *UserServiceImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := security.ValidateToken(tokenString)
	if err != nil {
		return nil
	}

	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err = redis.SetWithExpiration(ctx, consts.TokenRevokedKey+signature, "1", ttl); err != nil {
		log.ErrorContext(ctx, "Token revoke failed", "err", err)
		return UnExpectedError
	}
	return nil
}
