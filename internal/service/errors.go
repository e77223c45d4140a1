package service

import (
	"errors"
	"fmt"

	"SamuraiArchive/internal/repository"
)

var (
	// ErrNotFound 资源不存在
	ErrNotFound = repository.ErrNotFound
	// ErrValidation 请求参数不合法
	ErrValidation = errors.New("validation failed")
	// ErrConflict 资源冲突（邮箱已注册、重复收藏等）
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized 未登录或凭证无效
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden 无权限
	ErrForbidden = errors.New("forbidden")
	// ErrMissingDate 派生时间线时日期为空
	ErrMissingDate = errors.New("date is required to derive a timeline year")
)

// validationError 带字段信息的校验错误，errors.Is(err, ErrValidation) 为真
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }
func (e *validationError) Unwrap() error { return ErrValidation }

func invalid(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// messageError 对外暴露的错误文案，同时保留分类
type messageError struct {
	msg  string
	kind error
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.kind }

func conflict(msg string) error     { return &messageError{msg: msg, kind: ErrConflict} }
func notFound(msg string) error     { return &messageError{msg: msg, kind: ErrNotFound} }
func unauthorized(msg string) error { return &messageError{msg: msg, kind: ErrUnauthorized} }
func forbidden(msg string) error    { return &messageError{msg: msg, kind: ErrForbidden} }
