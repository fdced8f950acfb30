package repo

import (
	"gorm.io/gorm"

	"go-news-portal/internal/domain"
)

// AutoMigrate 建表：users / admins 同构但分表，messages 单表
func AutoMigrate(db *gorm.DB) error {
	for _, k := range []domain.Kind{domain.KindUser, domain.KindAdmin} {
		if err := db.Table(k.Table()).AutoMigrate(&domain.Account{}); err != nil {
			return err
		}
	}
	return db.AutoMigrate(&domain.Message{})
}
