package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-news-portal/internal/domain"
	"go-news-portal/internal/service"
	httpez "go-news-portal/internal/transport/http/ez"
	mdw "go-news-portal/internal/transport/http/middleware"
)

// MountMessageActions /message/api 留言板。提交对匿名开放；
// 带 token 的请求自动挂上账号弱引用，也接受请求体自报的 user 字段。
func MountMessageActions(g *gin.RouterGroup, d Deps) {
	g.Use(mdw.OptionalAuth(d.JWT))
	ezMsg := httpez.New(g)
	svc := d.Messages

	// --- 提交 ---
	type submitIn struct {
		Name    string `json:"name"    binding:"required"`
		Email   string `json:"email"   binding:"required"`
		Message string `json:"message" binding:"required"`
		Type    string `json:"type"    binding:"omitempty"`
		User    string `json:"user"    binding:"omitempty"`
	}
	httpez.RegisterAction[submitIn, *domain.Message](ezMsg, d.DB, httpez.Action[submitIn, *domain.Message]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *submitIn) (*domain.Message, error) {
			accountID := in.User
			if accountID == "" {
				accountID = c.GetString("userId")
			}
			return svc.Submit(service.SubmitInput{
				Name:      in.Name,
				Email:     in.Email,
				Body:      in.Message,
				Type:      in.Type,
				AccountID: accountID,
			})
		},
	})

	// --- 列表（新留言在前） ---
	httpez.RegisterAction[struct{}, []domain.Message](ezMsg, d.DB, httpez.Action[struct{}, []domain.Message]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) ([]domain.Message, error) {
			ms, err := svc.List()
			if err != nil {
				return nil, err
			}
			if ms == nil {
				ms = []domain.Message{}
			}
			return ms, nil
		},
	})

	// --- 按 id 查 ---
	httpez.RegisterAction[struct{}, *domain.Message](ezMsg, d.DB, httpez.Action[struct{}, *domain.Message]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Message, error) {
			return svc.GetByID(c.Param("id"))
		},
	})

	// --- 局部更新（常见用法：改 status） ---
	type updateIn struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Message *string `json:"message"`
		Type    *string `json:"type"`
		Status  *string `json:"status"`
	}
	httpez.RegisterAction[updateIn, *domain.Message](ezMsg, d.DB, httpez.Action[updateIn, *domain.Message]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *updateIn) (*domain.Message, error) {
			return svc.Update(c.Param("id"), domain.MessageUpdate{
				Name:   in.Name,
				Email:  in.Email,
				Body:   in.Message,
				Type:   in.Type,
				Status: in.Status,
			})
		},
	})

	// --- 删除 ---
	httpez.RegisterAction[struct{}, gin.H](ezMsg, d.DB, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := svc.Delete(id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})
}
