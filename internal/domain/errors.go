package domain

import (
	"errors"
	"fmt"
)

// 业务错误统一在这里定义，transport 层只做一次映射
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrEmailNotFound    = errors.New("email not found")
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrUpstream         = errors.New("upstream failure")
)

// ValidationError 带字段名的校验失败
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

func Required(field string) error { return &ValidationError{Field: field} }

func Invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
