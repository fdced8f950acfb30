package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-news-portal/internal/domain"
)

type MessageRepo struct{ db *gorm.DB }

func NewMessageRepo(db *gorm.DB) *MessageRepo { return &MessageRepo{db: db} }

func (r *MessageRepo) Create(m *domain.Message) error {
	return r.db.Create(m).Error
}

func (r *MessageRepo) FindByID(id string) (*domain.Message, error) {
	var m domain.Message
	err := r.db.Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List 新留言在前
func (r *MessageRepo) List() ([]domain.Message, error) {
	var ms []domain.Message
	err := r.db.Order("created_at DESC").Find(&ms).Error
	return ms, err
}

func (r *MessageRepo) Update(m *domain.Message) error {
	return r.db.Where("id = ?", m.ID).Updates(m).Error
}

func (r *MessageRepo) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&domain.Message{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
