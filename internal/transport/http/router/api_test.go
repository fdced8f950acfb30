package router

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-news-portal/internal/core/auth"
	"go-news-portal/internal/core/database"
	"go-news-portal/internal/domain"
	"go-news-portal/internal/repo"
	"go-news-portal/internal/service"
	"go-news-portal/internal/storage"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	r, _ := newTestEngineWithUploads(t)
	return r
}

func newTestEngineWithUploads(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))

	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "/uploads", 5)
	require.NoError(t, err)

	return NewEngine(Deps{
		Log: zap.NewNop(),
		DB:  db,
		JWT: &auth.JWTer{Secret: []byte("test-secret"), Issuer: "portal-test", TTL: time.Hour},
		Accounts: service.NewAccountService(
			repo.NewAccountRepo(db, domain.KindUser),
			repo.NewAccountRepo(db, domain.KindAdmin),
		),
		Messages: service.NewMessageService(repo.NewMessageRepo(db)),
		Uploads:  store,
	}), dir
}

func do(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func TestUsers_RegisterLoginScenario(t *testing.T) {
	r := newTestEngine(t)

	// 空列表是成功，不是 404
	w, env := do(t, r, http.MethodGet, "/users/api", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, env = do(t, r, http.MethodPost, "/users/api", gin.H{
		"username": "amit", "email": "a@x.com", "password": "secret1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, "msg: %s", env.Msg)
	var created domain.Account
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "amit", created.Username)

	// 登录成功：拿到 token 和公开资料
	w, env = do(t, r, http.MethodPost, "/users/api/login", gin.H{
		"email": "a@x.com", "password": "secret1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Token string         `json:"token"`
		User  domain.Account `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, created.ID, out.User.ID)
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.NotContains(t, strings.ToLower(w.Body.String()), "secret1")

	// 密码不对
	w, _ = do(t, r, http.MethodPost, "/users/api/login", gin.H{
		"email": "a@x.com", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// email 不存在（按契约是独立的错误信息）
	w, env = do(t, r, http.MethodPost, "/users/api/login", gin.H{
		"email": "nobody@x.com", "password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Msg, "email not found")
}

func TestUsers_DuplicateEmail(t *testing.T) {
	r := newTestEngine(t)

	w, _ := do(t, r, http.MethodPost, "/users/api", gin.H{"username": "a", "email": "a@x.com", "password": "p"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodPost, "/users/api", gin.H{"username": "b", "email": "a@x.com", "password": "p"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 409, env.Code)
}

func TestUsers_PartialUpdateAndDelete(t *testing.T) {
	r := newTestEngine(t)

	_, env := do(t, r, http.MethodPost, "/users/api", gin.H{"username": "amit", "email": "a@x.com", "password": "p"}, nil)
	var created domain.Account
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env := do(t, r, http.MethodPut, "/users/api/"+created.ID, gin.H{"username": "amit2"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var updated domain.Account
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "amit2", updated.Username)
	assert.Equal(t, "a@x.com", updated.Email, "email must be untouched")

	w, _ = do(t, r, http.MethodDelete, "/users/api/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/users/api/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodGet, "/users/api/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsers_ListNeverExposesHash(t *testing.T) {
	r := newTestEngine(t)

	_, _ = do(t, r, http.MethodPost, "/users/api", gin.H{"username": "a", "email": "a@x.com", "password": "p"}, nil)
	w, _ := do(t, r, http.MethodGet, "/users/api", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	low := strings.ToLower(w.Body.String())
	assert.NotContains(t, low, "passwordhash")
	assert.NotContains(t, low, "$2a$") // bcrypt 前缀
}

// doMultipartRegister 带 image 文件的 multipart 注册请求
func doMultipartRegister(t *testing.T, r *gin.Engine, username, email string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("username", username))
	require.NoError(t, mw.WriteField("email", email))
	require.NoError(t, mw.WriteField("password", "secret1"))
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="image"; filename="me.png"`}
	hdr["Content-Type"] = []string{"image/png"}
	pw, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = pw.Write([]byte("pngbytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/users/api", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func TestUsers_MultipartRegisterWithAvatar(t *testing.T) {
	r := newTestEngine(t)

	w, env := doMultipartRegister(t, r, "amit", "a@x.com")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	var created domain.Account
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, strings.HasPrefix(created.Avatar, "/uploads/"), "avatar: %q", created.Avatar)
}

func TestUsers_MultipartDuplicateEmailLeavesOrphanFile(t *testing.T) {
	r, dir := newTestEngineWithUploads(t)

	w, _ := doMultipartRegister(t, r, "amit", "a@x.com")
	require.Equal(t, http.StatusOK, w.Code)

	// 文件先落盘、账号再入库：重复 email 被拒后第二个文件留在磁盘上成为孤儿
	w, env := doMultipartRegister(t, r, "other", "a@x.com")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 409, env.Code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAdmin_RoleGate(t *testing.T) {
	r := newTestEngine(t)

	// 无 token
	w, _ := do(t, r, http.MethodGet, "/admin/api", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// user token 不够
	_, _ = do(t, r, http.MethodPost, "/users/api", gin.H{"username": "u", "email": "u@x.com", "password": "p"}, nil)
	_, env := do(t, r, http.MethodPost, "/users/api/login", gin.H{"email": "u@x.com", "password": "p"}, nil)
	var userLogin struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &userLogin))
	w, _ = do(t, r, http.MethodGet, "/admin/api", nil, map[string]string{"Authorization": "Bearer " + userLogin.Token})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admin token 放行
	w, _ = do(t, r, http.MethodPost, "/admin/api", gin.H{
		"username": "root", "email": "root@x.com", "password": "p", "user_type": "super",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, env = do(t, r, http.MethodPost, "/admin/api/login", gin.H{"email": "root@x.com", "password": "p"}, nil)
	var adminLogin struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &adminLogin))
	w, env = do(t, r, http.MethodGet, "/admin/api", nil, map[string]string{"Authorization": "Bearer " + adminLogin.Token})
	require.Equal(t, http.StatusOK, w.Code)
	var admins []domain.Account
	require.NoError(t, json.Unmarshal(env.Data, &admins))
	require.Len(t, admins, 1)
	assert.Equal(t, "super", admins[0].RoleTag)
}

func TestMessages_SubmitAndList(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/message/api", gin.H{
		"name": "bob", "email": "b@x.com", "message": "hello", "type": "contact",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, "msg: %s", env.Msg)

	w, env = do(t, r, http.MethodGet, "/message/api", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ms []domain.Message
	require.NoError(t, json.Unmarshal(env.Data, &ms))
	require.Len(t, ms, 1)
	assert.Equal(t, "contact", ms[0].Type)
	assert.Equal(t, "pending", ms[0].Status)
	assert.Empty(t, ms[0].AccountID)

	// 状态流转
	w, env = do(t, r, http.MethodPut, "/message/api/"+ms[0].ID, gin.H{"status": "resolved"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var updated domain.Message
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "resolved", updated.Status)
	assert.Equal(t, "hello", updated.Body)

	// 缺字段
	w, _ = do(t, r, http.MethodPost, "/message/api", gin.H{"name": "bob"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessages_AuthenticatedSubmitAttachesRef(t *testing.T) {
	r := newTestEngine(t)

	_, env := do(t, r, http.MethodPost, "/users/api", gin.H{"username": "u", "email": "u@x.com", "password": "p"}, nil)
	var created domain.Account
	require.NoError(t, json.Unmarshal(env.Data, &created))
	_, env = do(t, r, http.MethodPost, "/users/api/login", gin.H{"email": "u@x.com", "password": "p"}, nil)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))

	w, env := do(t, r, http.MethodPost, "/message/api", gin.H{
		"name": "u", "email": "u@x.com", "message": "hi",
	}, map[string]string{"Authorization": "Bearer " + login.Token})
	require.Equal(t, http.StatusOK, w.Code)
	var m domain.Message
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, created.ID, m.AccountID)

	// 删掉账号，留言还在（弱引用不级联）
	w, _ = do(t, r, http.MethodDelete, "/users/api/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = do(t, r, http.MethodGet, "/message/api/"+m.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var still domain.Message
	require.NoError(t, json.Unmarshal(env.Data, &still))
	assert.Equal(t, created.ID, still.AccountID)
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
