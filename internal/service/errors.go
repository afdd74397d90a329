package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrUnknownPlatform    = errors.New("不支持的平台")
	ErrOwnershipNotProven = errors.New("博客所有权验证失败，请确认挑战口令已发布在最新文章标题中")
	ErrNotRegistered      = errors.New("该平台尚未绑定")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailExist         = errors.New("邮箱已注册")
	ErrPasswordIncorrect  = errors.New("邮箱或密码错误")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrUnknownPlatform:    NotFound,
	ErrOwnershipNotProven: Unauthorized,
	ErrNotRegistered:      NotFound,
	ErrUserNotFound:       NotFound,
	ErrEmailExist:         BadRequest,
	ErrPasswordIncorrect:  Unauthorized,
	UnExpectedError:       InternalServerError,
}
