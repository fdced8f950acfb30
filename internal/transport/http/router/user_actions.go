package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-news-portal/internal/core/auth"
	"go-news-portal/internal/domain"
	"go-news-portal/internal/service"
	"go-news-portal/internal/storage"
	httpez "go-news-portal/internal/transport/http/ez"
)

// MountUserActions /users/api 下的注册/登录/CRUD。
// 注册和更新兼容两种请求体：纯 JSON，或带 image 文件的 multipart 表单。
func MountUserActions(g *gin.RouterGroup, d Deps) {
	ezUsers := httpez.New(g)
	svc := d.Accounts

	// --- 注册 ---
	httpez.RegisterAction[struct{}, *domain.Account](ezUsers, d.DB, httpez.Action[struct{}, *domain.Account]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindNone, // 请求体可能是 multipart，自己解析
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Account, error) {
			in, err := bindRegister(c, d.Uploads)
			if err != nil {
				return nil, err
			}
			return svc.Register(domain.KindUser, in)
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
	httpez.RegisterAction[loginIn, loginOut](ezUsers, d.DB, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *loginIn) (loginOut, error) {
			p, err := svc.Login(domain.KindUser, in.Email, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			tok, err := d.JWT.Issue(p.ID, auth.RoleUser)
			if err != nil {
				return loginOut{}, httpez.Internal("issue token failed", err)
			}
			return loginOut{Token: tok, User: p}, nil
		},
	})

	// --- 列表（空列表返回 200 + 空数组） ---
	httpez.RegisterAction[struct{}, []domain.Account](ezUsers, d.DB, httpez.Action[struct{}, []domain.Account]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) ([]domain.Account, error) {
			as, err := svc.List(domain.KindUser)
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
	httpez.RegisterAction[struct{}, *domain.Account](ezUsers, d.DB, httpez.Action[struct{}, *domain.Account]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Account, error) {
			return svc.GetByID(domain.KindUser, c.Param("id"))
		},
	})

	// --- 局部更新 ---
	httpez.RegisterAction[struct{}, *domain.Account](ezUsers, d.DB, httpez.Action[struct{}, *domain.Account]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Account, error) {
			up, err := bindAccountUpdate(c, d.Uploads)
			if err != nil {
				return nil, err
			}
			return svc.UpdateProfile(domain.KindUser, c.Param("id"), up)
		},
	})

	// --- 删除（硬删，不级联留言） ---
	httpez.RegisterAction[struct{}, gin.H](ezUsers, d.DB, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := svc.Delete(domain.KindUser, id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})
}

type accountBody struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Image    *string `json:"image"`
	UserType *string `json:"user_type"`
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// bindRegister 注册入参：multipart 时 image 文件先落盘、把路径写进账号
func bindRegister(c *gin.Context, store *storage.LocalStore) (service.RegisterInput, error) {
	if isMultipart(c) {
		in := service.RegisterInput{
			Username: c.PostForm("username"),
			Email:    c.PostForm("email"),
			Password: c.PostForm("password"),
			RoleTag:  c.PostForm("user_type"),
		}
		if fh, err := c.FormFile("image"); err == nil && fh != nil {
			if store == nil {
				return in, httpez.BadRequest("image uploads are disabled")
			}
			p, err := store.Save(fh)
			if err != nil {
				return in, err
			}
			in.Avatar = p
		}
		return in, nil
	}
	var b accountBody
	if err := c.ShouldBindJSON(&b); err != nil {
		return service.RegisterInput{}, httpez.BadRequest(err.Error())
	}
	in := service.RegisterInput{}
	if b.Username != nil {
		in.Username = *b.Username
	}
	if b.Email != nil {
		in.Email = *b.Email
	}
	if b.Password != nil {
		in.Password = *b.Password
	}
	if b.Image != nil {
		in.Avatar = *b.Image
	}
	if b.UserType != nil {
		in.RoleTag = *b.UserType
	}
	return in, nil
}

// bindAccountUpdate 更新入参：只认请求里出现的字段
func bindAccountUpdate(c *gin.Context, store *storage.LocalStore) (domain.AccountUpdate, error) {
	var up domain.AccountUpdate
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return up, httpez.BadRequest("invalid multipart form: " + err.Error())
		}
		formStr := func(key string) *string {
			if vs, ok := form.Value[key]; ok && len(vs) > 0 {
				v := vs[0]
				return &v
			}
			return nil
		}
		up.Username = formStr("username")
		up.Email = formStr("email")
		up.Password = formStr("password")
		up.RoleTag = formStr("user_type")
		if fhs := form.File["image"]; len(fhs) > 0 {
			if store == nil {
				return up, httpez.BadRequest("image uploads are disabled")
			}
			p, err := store.Save(fhs[0])
			if err != nil {
				return up, err
			}
			up.Avatar = &p
		}
		return up, nil
	}
	var b accountBody
	if err := c.ShouldBindJSON(&b); err != nil {
		return up, httpez.BadRequest(err.Error())
	}
	up.Username = b.Username
	up.Email = b.Email
	up.Password = b.Password
	up.Avatar = b.Image
	up.RoleTag = b.UserType
	return up, nil
}
