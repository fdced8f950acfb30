package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-news-portal/internal/core/database"
	"go-news-portal/internal/domain"
	"go-news-portal/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1, // 内存库：多连接会各开一个库
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))
	return db
}

func newAccountService(t *testing.T) *AccountService {
	t.Helper()
	db := newTestDB(t)
	return NewAccountService(
		repo.NewAccountRepo(db, domain.KindUser),
		repo.NewAccountRepo(db, domain.KindAdmin),
	)
}

func newMessageService(t *testing.T) *MessageService {
	t.Helper()
	return NewMessageService(repo.NewMessageRepo(newTestDB(t)))
}
