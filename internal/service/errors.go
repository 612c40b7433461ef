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
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrCategoryNotFound  = errors.New("分类不存在或未启用")
	ErrCategoryRequired  = errors.New("至少选择一个分类")
	ErrTitleTooLong      = errors.New("标题超出长度限制")
	ErrContentTooLong    = errors.New("内容超出长度限制")
	ErrCityNotSet        = errors.New("尚未设置城市")
	ErrInvalidTransition = errors.New("当前状态不允许该操作")
	ErrFileNotSupported  = errors.New("不支持的文件类型")
	ErrStorageFailure    = errors.New("存储服务不可用")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrPostNotFound:      NotFound,
	ErrCategoryNotFound:  BadRequest,
	ErrCategoryRequired:  BadRequest,
	ErrTitleTooLong:      BadRequest,
	ErrContentTooLong:    BadRequest,
	ErrCityNotSet:        BadRequest,
	ErrInvalidTransition: BadRequest,
	ErrFileNotSupported:  BadRequest,
	ErrStorageFailure:    InternalServerError,
	UnExpectedError:      InternalServerError,
}
