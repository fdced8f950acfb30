package service

import (
	"errors"
	"fmt"
	"strings"

	"go-news-portal/internal/domain"
	"go-news-portal/pkg/utils"
)

// AccountService 注册/登录/资料维护，user 与 admin 共用一套逻辑、各走各的表。
// 对外返回的账号一律抹掉 PasswordHash（json:"-" 之外再兜一层）。
type AccountService struct {
	repos map[domain.Kind]domain.AccountRepository
}

func NewAccountService(users, admins domain.AccountRepository) *AccountService {
	return &AccountService{repos: map[domain.Kind]domain.AccountRepository{
		domain.KindUser:  users,
		domain.KindAdmin: admins,
	}}
}

func (s *AccountService) repoFor(kind domain.Kind) (domain.AccountRepository, error) {
	r, ok := s.repos[kind]
	if !ok {
		return nil, fmt.Errorf("unknown account kind %q", kind)
	}
	return r, nil
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Avatar   string // user 端头像路径
	RoleTag  string // admin 端分类
}

func (s *AccountService) Register(kind domain.Kind, in RegisterInput) (*domain.Account, error) {
	r, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" {
		return nil, domain.Required("username")
	}
	if in.Email == "" {
		return nil, domain.Required("email")
	}
	if in.Password == "" {
		return nil, domain.Required("password")
	}
	a := &domain.Account{
		ID:           utils.NewID(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: utils.HashPassword(in.Password),
		Avatar:       in.Avatar,
		RoleTag:      in.RoleTag,
	}
	if err := r.Create(a); err != nil {
		return nil, err
	}
	return stripHash(a), nil
}

// Login 按契约区分两种失败：email 不存在 / 密码不对
func (s *AccountService) Login(kind domain.Kind, email, password string) (*domain.Account, error) {
	r, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	a, err := r.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmailNotFound
		}
		return nil, err
	}
	if !utils.CheckPassword(password, a.PasswordHash) {
		return nil, domain.ErrPasswordMismatch
	}
	return stripHash(a), nil
}

// UpdateProfile 局部合并：nil 字段不动；带 Password 时先重新散列
func (s *AccountService) UpdateProfile(kind domain.Kind, id string, up domain.AccountUpdate) (*domain.Account, error) {
	r, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	a, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if up.Username != nil {
		if strings.TrimSpace(*up.Username) == "" {
			return nil, domain.Required("username")
		}
		a.Username = strings.TrimSpace(*up.Username)
	}
	if up.Email != nil {
		if strings.TrimSpace(*up.Email) == "" {
			return nil, domain.Required("email")
		}
		a.Email = strings.TrimSpace(*up.Email)
	}
	if up.Password != nil {
		if *up.Password == "" {
			return nil, domain.Required("password")
		}
		a.PasswordHash = utils.HashPassword(*up.Password)
	}
	if up.Avatar != nil {
		a.Avatar = *up.Avatar
	}
	if up.RoleTag != nil {
		a.RoleTag = *up.RoleTag
	}
	if err := r.Update(a); err != nil {
		return nil, err
	}
	return stripHash(a), nil
}

func (s *AccountService) List(kind domain.Kind) ([]domain.Account, error) {
	r, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	as, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range as {
		as[i].PasswordHash = ""
	}
	return as, nil
}

func (s *AccountService) GetByID(kind domain.Kind, id string) (*domain.Account, error) {
	r, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	a, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	return stripHash(a), nil
}

func (s *AccountService) Delete(kind domain.Kind, id string) error {
	r, err := s.repoFor(kind)
	if err != nil {
		return err
	}
	return r.Delete(id)
}

func stripHash(a *domain.Account) *domain.Account {
	cp := *a
	cp.PasswordHash = ""
	return &cp
}
