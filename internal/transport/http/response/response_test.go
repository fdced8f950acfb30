package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-news-portal/internal/domain"
)

func TestFromErr(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrDuplicateEmail, CodeConflict},
		{domain.ErrNotFound, CodeNotFound},
		{domain.ErrEmailNotFound, CodeBadRequest},
		{domain.ErrPasswordMismatch, CodeBadRequest},
		{domain.Required("email"), CodeBadRequest},
		{domain.ErrUpstream, CodeBadGateway},
		{errors.New("boom"), CodeServerError},
	}
	for _, tc := range cases {
		r := FromErr(tc.err)
		assert.Equal(t, tc.code, r.Code, "err: %v", tc.err)
		assert.Equal(t, tc.err.Error(), r.Msg, "msg 必须带上错误文本")
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(CodeOK))
	assert.Equal(t, http.StatusConflict, HTTPStatus(CodeConflict))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(CodeBadGateway))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(12345), "未知码按 500 处理")
}
