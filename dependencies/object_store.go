package dependencies

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Xushengqwer/go-common/core"

	"github.com/Xushengqwer/content_service/config"
)

// ObjectStore 是上传文件所需的对象存储能力。COS 与 MinIO 各有一个实现。
type ObjectStore interface {
	// UploadFile 从 io.Reader 上传文件，并返回其公开可访问的 URL。
	// 调用方需要负责生成合适的 objectKey。
	UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	// DeleteObject 删除一个对象
	DeleteObject(ctx context.Context, objectKey string) error
	// Ping 检查存储桶是否可访问，供启动与定时探测使用
	Ping(ctx context.Context) error
	// Name 返回驱动名，用于日志
	Name() string
}

// InitObjectStore 按 driver 创建对象存储客户端，默认 cos。
func InitObjectStore(cfg *config.ObjectStoreConfig, logger *core.ZapLogger) (ObjectStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "cos":
		return InitCOS(&cfg.COS, logger)
	case "minio":
		return InitMinIO(&cfg.MinIO, logger)
	default:
		return nil, fmt.Errorf("未知的对象存储驱动: %q", cfg.Driver)
	}
}

// joinPublicURL 把对象键拼接到公开访问基础地址上
func joinPublicURL(base *url.URL, objectKey string) string {
	basePath := base.Path
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	finalURL := *base
	finalURL.Path = basePath + strings.TrimPrefix(objectKey, "/")
	return finalURL.String()
}
