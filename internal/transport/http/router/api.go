package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-news-portal/internal/core/auth"
	"go-news-portal/internal/news"
	"go-news-portal/internal/service"
	"go-news-portal/internal/storage"
	mdw "go-news-portal/internal/transport/http/middleware"
)

type Deps struct {
	Log      *zap.Logger
	DB       *gorm.DB
	JWT      *auth.JWTer
	Accounts *service.AccountService
	Messages *service.MessageService
	News     *news.Client        // 可为 nil：未配置上游时不挂新闻路由
	Uploads  *storage.LocalStore // 可为 nil：禁用头像上传
}

// NewEngine 单进程同时承载 users / admin / message / news 四个面
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 头像静态目录
	if d.Uploads != nil {
		r.Static(d.Uploads.PublicPath, d.Uploads.Dir)
	}

	// 路由前缀沿用旧版：/users/api /admin/api /message/api /news/api
	MountUserActions(r.Group("/users/api"), d)
	MountAdminActions(r.Group("/admin/api"), d)
	MountMessageActions(r.Group("/message/api"), d)
	if d.News != nil {
		MountNewsActions(r.Group("/news/api"), d)
	}

	return r
}
