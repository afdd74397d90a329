package handler

import (
	"strings"

	"Jandi/internal/api/dto"
	"Jandi/internal/pkg/response"
	"Jandi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register 用户注册
func (s *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := s.userSvc.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	var userDTO dto.UserDTO
	if err = copier.Copy(&userDTO, user); err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}

	response.Success(c, userDTO)
}

// Login 用户登录
func (s *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	token, err := s.userSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.LoginResponse{AccessToken: token})
}

// Logout 注销当前 Token
func (s *UserHandler) Logout(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.userSvc.Logout(c.Request.Context(), tokenString); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
