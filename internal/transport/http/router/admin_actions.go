package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-news-portal/internal/core/auth"
	"go-news-portal/internal/domain"
	httpez "go-news-portal/internal/transport/http/ez"
	mdw "go-news-portal/internal/transport/http/middleware"
)

// MountAdminActions /admin/api。注册和登录开放（否则没法引导出第一个管理员），
// 其余操作要求 admin 角色的 token。
func MountAdminActions(g *gin.RouterGroup, d Deps) {
	svc := d.Accounts

	ezPublic := httpez.New(g)

	// --- 注册 ---
	httpez.RegisterAction[struct{}, *domain.Account](ezPublic, d.DB, httpez.Action[struct{}, *domain.Account]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Account, error) {
			in, err := bindRegister(c, nil) // admin 无头像
			if err != nil {
				return nil, err
			}
			return svc.Register(domain.KindAdmin, in)
		},
	})

	// --- 登录 ---
	type loginIn struct {
		Email    string `json:"email"    binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		Token string          `json:"token"`
		User  *domain.Account `json:"user"`
	}
	httpez.RegisterAction[loginIn, loginOut](ezPublic, d.DB, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *loginIn) (loginOut, error) {
			p, err := svc.Login(domain.KindAdmin, in.Email, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			tok, err := d.JWT.Issue(p.ID, auth.RoleAdmin)
			if err != nil {
				return loginOut{}, httpez.Internal("issue token failed", err)
			}
			return loginOut{Token: tok, User: p}, nil
		},
	})

	// 管理操作走鉴权分组
	priv := g.Group("")
	priv.Use(mdw.AuthJWT(d.JWT, auth.RoleAdmin))
	ezPriv := httpez.New(priv)

	// --- 列表 ---
	httpez.RegisterAction[struct{}, []domain.Account](ezPriv, d.DB, httpez.Action[struct{}, []domain.Account]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  []string{auth.RoleAdmin},
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) ([]domain.Account, error) {
			as, err := svc.List(domain.KindAdmin)
			if err != nil {
				return nil, err
			}
			if as == nil {
				as = []domain.Account{}
			}
			return as, nil
		},
	})

	// --- 按 id 查 ---
	httpez.RegisterAction[struct{}, *domain.Account](ezPriv, d.DB, httpez.Action[struct{}, *domain.Account]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  []string{auth.RoleAdmin},
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Account, error) {
			return svc.GetByID(domain.KindAdmin, c.Param("id"))
		},
	})

	// --- 局部更新 ---
	httpez.RegisterAction[struct{}, *domain.Account](ezPriv, d.DB, httpez.Action[struct{}, *domain.Account]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  []string{auth.RoleAdmin},
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Account, error) {
			up, err := bindAccountUpdate(c, nil)
			if err != nil {
				return nil, err
			}
			return svc.UpdateProfile(domain.KindAdmin, c.Param("id"), up)
		},
	})

	// --- 删除 ---
	httpez.RegisterAction[struct{}, gin.H](ezPriv, d.DB, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  []string{auth.RoleAdmin},
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := svc.Delete(domain.KindAdmin, id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})
}
