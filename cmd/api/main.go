package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-news-portal/internal/core/auth"
	"go-news-portal/internal/core/cache"
	"go-news-portal/internal/core/config"
	"go-news-portal/internal/core/database"
	"go-news-portal/internal/core/logger"
	"go-news-portal/internal/core/server"
	"go-news-portal/internal/domain"
	"go-news-portal/internal/news"
	"go-news-portal/internal/repo"
	"go-news-portal/internal/service"
	"go-news-portal/internal/storage"
	"go-news-portal/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// Redis（可选，只给新闻透传做缓存）
	var cc *cache.Cache
	if cfg.Redis.Addr != "" {
		cc = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pctx, pcancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cc.Ping(pctx); err != nil {
			log.Warn("redis unreachable, news cache disabled", zap.Error(err))
			cc = nil
		}
		pcancel()
	}

	// 头像存储
	var store *storage.LocalStore
	if cfg.Upload.Dir != "" {
		var err error
		store, err = storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.PublicPath, cfg.Upload.MaxSizeMB)
		if err != nil {
			log.Fatal("upload dir", zap.Error(err))
		}
	}

	// 新闻上游（未配置则不挂路由）
	var newsClient *news.Client
	if cfg.News.BaseURL != "" {
		newsClient = news.NewClient(cfg.News.BaseURL, cfg.News.APIKey, cfg.News.CacheTTLSec, cc, log)
	}

	// repo → service
	userRepo := repo.NewAccountRepo(db, domain.KindUser)
	adminRepo := repo.NewAccountRepo(db, domain.KindAdmin)
	accountSvc := service.NewAccountService(userRepo, adminRepo)
	messageSvc := service.NewMessageService(repo.NewMessageRepo(db))

	r := router.NewEngine(router.Deps{
		Log:      log,
		DB:       db,
		JWT:      jwter,
		Accounts: accountSvc,
		Messages: messageSvc,
		News:     newsClient,
		Uploads:  store,
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动前打印可点击地址
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("portal api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("users", baseURL+"/users/api"),
		zap.String("admin", baseURL+"/admin/api"),
		zap.String("message", baseURL+"/message/api"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("portal api start FAILED", zap.Error(err))
		}
	}()
	log.Info("portal api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	if cc != nil {
		_ = cc.Close()
	}
	log.Info("portal api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.Rotate.Enable {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON,
			cfg.Log.Rotate.Filename,
			cfg.Log.Rotate.MaxSizeMB,
			cfg.Log.Rotate.MaxBackups,
			cfg.Log.Rotate.MaxAgeDays,
			cfg.Log.Rotate.Compress,
		)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
