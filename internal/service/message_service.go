package service

import (
	"strings"

	"go-news-portal/internal/domain"
	"go-news-portal/pkg/utils"
)

type MessageService struct {
	repo domain.MessageRepository
}

func NewMessageService(repo domain.MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

type SubmitInput struct {
	Name      string
	Email     string
	Body      string
	Type      string
	AccountID string // 调用方自报的账号 id，弱引用，不做校验
}

func (s *MessageService) Submit(in SubmitInput) (*domain.Message, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" {
		return nil, domain.Required("name")
	}
	if in.Email == "" {
		return nil, domain.Required("email")
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, domain.Required("message")
	}
	if in.Type == "" {
		in.Type = domain.MessageTypeFeedback
	}
	if !domain.ValidMessageType(in.Type) {
		return nil, domain.Invalid("type", "must be one of feedback/contact/complaint/suggestion")
	}
	m := &domain.Message{
		ID:        utils.NewID(),
		Name:      in.Name,
		Email:     in.Email,
		Body:      in.Body,
		Type:      in.Type,
		Status:    domain.MessageStatusPending,
		AccountID: in.AccountID,
	}
	if err := s.repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MessageService) Update(id string, up domain.MessageUpdate) (*domain.Message, error) {
	m, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if up.Name != nil {
		m.Name = strings.TrimSpace(*up.Name)
	}
	if up.Email != nil {
		m.Email = strings.TrimSpace(*up.Email)
	}
	if up.Body != nil {
		m.Body = *up.Body
	}
	if up.Type != nil {
		if !domain.ValidMessageType(*up.Type) {
			return nil, domain.Invalid("type", "must be one of feedback/contact/complaint/suggestion")
		}
		m.Type = *up.Type
	}
	if up.Status != nil {
		if !domain.ValidMessageStatus(*up.Status) {
			return nil, domain.Invalid("status", "must be one of pending/read/resolved")
		}
		m.Status = *up.Status
	}
	if err := s.repo.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MessageService) Delete(id string) error { return s.repo.Delete(id) }

func (s *MessageService) GetByID(id string) (*domain.Message, error) {
	return s.repo.FindByID(id)
}

func (s *MessageService) List() ([]domain.Message, error) { return s.repo.List() }
