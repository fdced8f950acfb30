package response

import (
	"errors"

	"go-news-portal/internal/domain"
)

// Resp 全站统一信封（旧版各资源信封不一致，这里收敛成一种）
type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// CodeOf 业务错误 → 业务码。登录两类失败按契约都算 400。
func CodeOf(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, domain.ErrDuplicateEmail):
		return CodeConflict
	case errors.Is(err, domain.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, domain.ErrEmailNotFound),
		errors.Is(err, domain.ErrPasswordMismatch):
		return CodeBadRequest
	case domain.IsValidation(err):
		return CodeBadRequest
	case errors.Is(err, domain.ErrUpstream):
		return CodeBadGateway
	default:
		return CodeServerError
	}
}

// FromErr 失败信封，msg 用错误文本
func FromErr(err error) Resp {
	return Error(CodeOf(err), err.Error())
}
