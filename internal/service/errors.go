package service

import (
	"errors"

	"github.com/go-sql-driver/mysql"
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
	ErrPostNotFound          = errors.New("帖子不存在")
	ErrReplyNotFound         = errors.New("回复不存在")
	ErrFeedbackNotFound      = errors.New("评分记录不存在")
	ErrAppealNotFound        = errors.New("申诉不存在")
	ErrModerationLogNotFound = errors.New("审核记录不存在")
	ErrAlreadyVoted          = errors.New("已经投过票")
	ErrAlreadyRated          = errors.New("已经评过分")
	ErrLanguageNotSupported  = errors.New("不支持的语言")
	ErrInvalidAction         = errors.New("无效的审核动作")
	ErrOriginalMissing       = errors.New("原文翻译缺失")
	UnauthorizedError        = errors.New("权限不足")
	ForbiddenError           = errors.New("无权操作")
	UnExpectedError          = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:          BadRequest,
	ErrUserNotFound:          NotFound,
	ErrPostNotFound:          NotFound,
	ErrReplyNotFound:         NotFound,
	ErrFeedbackNotFound:      NotFound,
	ErrAppealNotFound:        NotFound,
	ErrModerationLogNotFound: NotFound,
	ErrAlreadyVoted:          Conflict,
	ErrAlreadyRated:          Conflict,
	ErrLanguageNotSupported:  BadRequest,
	ErrInvalidAction:         BadRequest,
	ErrOriginalMissing:       InternalServerError,
	UnauthorizedError:        Unauthorized,
	ForbiddenError:           Forbidden,
	UnExpectedError:          InternalServerError,
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
