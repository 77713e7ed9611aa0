package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid          = errors.New("参数错误")
	ErrUserNotFound          = errors.New("用户不存在")
	ErrPasswordIncorrect     = errors.New("密码错误")
	ErrQuestionNotFound      = errors.New("题目不存在")
	ErrStudentQuizNotFound   = errors.New("活动不存在")
	ErrCommentNotFound       = errors.New("评论不存在")
	ErrCommentEmpty          = errors.New("评论内容不能为空")
	ErrReportConditionsEmpty = errors.New("请至少选择一项举报原因")
	ErrActionDuplicate       = errors.New("重复操作")
	ErrUnauthorized          = errors.New("权限不足")
	ErrInternal              = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:          BadRequest,
	ErrUserNotFound:          NotFound,
	ErrPasswordIncorrect:     Unauthorized,
	ErrQuestionNotFound:      NotFound,
	ErrStudentQuizNotFound:   NotFound,
	ErrCommentNotFound:       NotFound,
	ErrCommentEmpty:          BadRequest,
	ErrReportConditionsEmpty: BadRequest,
	ErrActionDuplicate:       Conflict,
	ErrUnauthorized:          Forbidden,
	ErrInternal:              InternalServerError,
}
