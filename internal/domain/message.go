package domain

import "time"

const (
	MessageTypeFeedback   = "feedback"
	MessageTypeContact    = "contact"
	MessageTypeComplaint  = "complaint"
	MessageTypeSuggestion = "suggestion"

	MessageStatusPending  = "pending"
	MessageStatusRead     = "read"
	MessageStatusResolved = "resolved"
)

// Message 留言/反馈。AccountID 是弱引用：不校验、不级联，删账号不删留言。
type Message struct {
	ID        string `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Name      string `gorm:"size:64;not null" json:"name"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Body      string `gorm:"type:text;not null" json:"message"`
	Type      string `gorm:"size:16;not null;default:feedback" json:"type"`
	Status    string `gorm:"size:16;not null;default:pending" json:"status"`
	AccountID string `gorm:"size:32;index" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func ValidMessageType(t string) bool {
	switch t {
	case MessageTypeFeedback, MessageTypeContact, MessageTypeComplaint, MessageTypeSuggestion:
		return true
	}
	return false
}

func ValidMessageStatus(s string) bool {
	switch s {
	case MessageStatusPending, MessageStatusRead, MessageStatusResolved:
		return true
	}
	return false
}

// MessageUpdate 局部更新，常见用法是只改 Status
type MessageUpdate struct {
	Name   *string
	Email  *string
	Body   *string
	Type   *string
	Status *string
}

type MessageRepository interface {
	Create(m *Message) error
	FindByID(id string) (*Message, error)
	List() ([]Message, error)
	Update(m *Message) error
	Delete(id string) error
}
