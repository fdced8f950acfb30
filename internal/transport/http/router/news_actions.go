package router

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	httpez "go-news-portal/internal/transport/http/ez"
)

// MountNewsActions /news/api 上游透传，响应体原样进信封的 data 字段
func MountNewsActions(g *gin.RouterGroup, d Deps) {
	ezNews := httpez.New(g)

	type newsQ struct {
		Category string `form:"category"`
		Q        string `form:"q"`
	}
	httpez.RegisterAction[newsQ, json.RawMessage](ezNews, d.DB, httpez.Action[newsQ, json.RawMessage]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, _ *gorm.DB, in *newsQ) (json.RawMessage, error) {
			return d.News.Fetch(c.Request.Context(), in.Category, in.Q)
		},
	})
}
