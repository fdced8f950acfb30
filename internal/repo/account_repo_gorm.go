package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-news-portal/internal/domain"
)

// AccountRepo 按表名区分 user / admin 两个命名空间，email 唯一索引各自独立
type AccountRepo struct {
	db    *gorm.DB
	table string
}

func NewAccountRepo(db *gorm.DB, kind domain.Kind) *AccountRepo {
	return &AccountRepo{db: db, table: kind.Table()}
}

func (r *AccountRepo) scope() *gorm.DB { return r.db.Table(r.table) }

func (r *AccountRepo) Create(a *domain.Account) error {
	if err := r.scope().Create(a).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *AccountRepo) FindByID(id string) (*domain.Account, error) {
	var a domain.Account
	err := r.scope().Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) FindByEmail(email string) (*domain.Account, error) {
	var a domain.Account
	err := r.scope().Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) List() ([]domain.Account, error) {
	var as []domain.Account
	err := r.scope().Order("created_at DESC").Find(&as).Error
	return as, err
}

func (r *AccountRepo) Update(a *domain.Account) error {
	if err := r.scope().Where("id = ?", a.ID).Updates(a).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *AccountRepo) Delete(id string) error {
	res := r.scope().Where("id = ?", id).Delete(&domain.Account{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// isDupKey 不依赖 gorm.ErrDuplicatedKey，跨 mysql/postgres/sqlite 驱动都能识别
func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "constraint failed")
}
