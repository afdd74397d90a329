package handler

import (
	"time"

	"Jandi/internal/api/config"
	"Jandi/internal/api/dto"
	"Jandi/internal/api/middleware"
	"Jandi/internal/pkg/response"
	"Jandi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type PlatformHandler struct {
	platformSvc service.PlatformService
}

func NewPlatformHandler(platformSvc service.PlatformService) *PlatformHandler {
	return &PlatformHandler{platformSvc: platformSvc}
}

// GetChallenge 签发所有权挑战口令
func (s *PlatformHandler) GetChallenge(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	platformName := c.Query("platform_name")
	if platformName == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	challenge, err := s.platformSvc.RequestChallenge(c.Request.Context(), userID, platformName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ChallengeResponse{
		Challenge: challenge,
		ExpireAt:  time.Now().Add(config.Cfg.ChallengeTTL()).UTC().Format(time.RFC3339),
	})
}

// RegisterPlatform 验证所有权并绑定博客账号
func (s *PlatformHandler) RegisterPlatform(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	var req dto.UserPlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	outcome, err := s.platformSvc.Register(c.Request.Context(), userID, req.PlatformName, req.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.RegisterPlatformResponse{
		Outcome:      string(outcome),
		Platform:     req.PlatformName,
		RegisteredID: req.AccountID,
	})
}

// DeletePlatform 解绑博客账号
func (s *PlatformHandler) DeletePlatform(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	var req dto.UnregisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.platformSvc.Unregister(c.Request.Context(), userID, req.PlatformName); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetPlatforms 查询当前用户已绑定的平台
func (s *PlatformHandler) GetPlatforms(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	details, err := s.platformSvc.ListUserPlatforms(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	platformDTOs := make([]dto.UserPlatformDTO, 0, len(details))
	if err = copier.Copy(&platformDTOs, details); err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}

	response.Success(c, platformDTOs)
}
