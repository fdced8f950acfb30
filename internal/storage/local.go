package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go-news-portal/internal/domain"
	"go-news-portal/pkg/utils"
)

// LocalStore 头像落盘。和账号记录的写入不在一个事务里：
// DB 写失败会留下孤儿文件，这里不回滚。
type LocalStore struct {
	Dir        string // 磁盘目录
	PublicPath string // 对外 URL 前缀，如 /uploads
	MaxSize    int64  // 字节
}

func NewLocalStore(dir, publicPath string, maxSizeMB int) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{
		Dir:        dir,
		PublicPath: strings.TrimRight(publicPath, "/"),
		MaxSize:    int64(maxSizeMB) << 20,
	}, nil
}

// Save 校验大小和类型后写入，返回对外可访问的路径
func (s *LocalStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.MaxSize {
		return "", domain.Invalid("image", fmt.Sprintf("file exceeds %d MB", s.MaxSize>>20))
	}
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		return "", domain.Invalid("image", "only image/* uploads are accepted")
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := utils.NewID() + ext
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// MaxBytesReader 已经在引擎层限过总量，这里再按单文件限一次
	if _, err := io.Copy(dst, io.LimitReader(src, s.MaxSize+1)); err != nil {
		return "", err
	}
	return path.Join(s.PublicPath, name), nil
}
