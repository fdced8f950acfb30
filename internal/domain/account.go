package domain

import "time"

// Kind 账号类别：user / admin 结构一致，但各自独立建表、独立的 email 唯一索引
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

func (k Kind) Table() string {
	if k == KindAdmin {
		return "admins"
	}
	return "users"
}

type Account struct {
	ID           string `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Username     string `gorm:"size:64;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	Avatar       string `gorm:"size:255" json:"image,omitempty"`    // 仅 user 使用
	RoleTag      string `gorm:"size:64" json:"user_type,omitempty"` // 仅 admin 使用

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AccountUpdate 局部更新：nil 字段不动
type AccountUpdate struct {
	Username *string
	Email    *string
	Password *string
	Avatar   *string
	RoleTag  *string
}

type AccountRepository interface {
	Create(a *Account) error
	FindByID(id string) (*Account, error)
	FindByEmail(email string) (*Account, error)
	List() ([]Account, error)
	Update(a *Account) error
	Delete(id string) error
}
