package dependencies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/config"
)

type minioClient struct {
	client     *minio.Client
	bucket     string
	publicBase *url.URL
	logger     *core.ZapLogger
}

// InitMinIO 初始化 MinIO 客户端，存储桶不存在时自动创建。
// 桶检查失败不会阻止客户端返回，依赖探测任务会在之后重新确认可用性。
func InitMinIO(cfg *config.MinIOConfig, logger *core.ZapLogger) (ObjectStore, error) {
	if cfg == nil || cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("MinIO 配置不完整，缺少 endpoint 或 bucket")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
	if err != nil {
		return nil, fmt.Errorf("创建 MinIO 客户端失败: %w", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	publicBase, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("解析 MinIO 公共访问地址 '%s' 失败: %w", base, err)
	}

	m := &minioClient{client: client, bucket: cfg.Bucket, publicBase: publicBase, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.ensureBucket(ctx); err != nil {
		logger.Warn("MinIO 存储桶检查失败，稍后由探测任务重试", zap.String("bucket", cfg.Bucket), zap.Error(err))
	}

	logger.Info("MinIO 客户端初始化成功",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
		zap.String("公共访问基础URL", publicBase.String()),
	)
	return m, nil
}

func (m *minioClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("创建存储桶 %s 失败: %w", m.bucket, err)
	}
	m.logger.Info("已创建 MinIO 存储桶", zap.String("bucket", m.bucket))
	return nil
}

func (m *minioClient) Name() string { return "minio" }

func (m *minioClient) UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, objectKey, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		m.logger.Error("MinIO 文件上传失败", zap.String("对象键", objectKey), zap.Error(err))
		return "", fmt.Errorf("上传文件 '%s' 到 MinIO 失败: %w", objectKey, err)
	}
	publicURL := joinPublicURL(m.publicBase, objectKey)
	m.logger.Info("MinIO 文件上传成功", zap.String("对象键", objectKey), zap.String("公开访问URL", publicURL))
	return publicURL, nil
}

func (m *minioClient) DeleteObject(ctx context.Context, objectKey string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("从 MinIO 删除对象 '%s' 失败: %w", objectKey, err)
	}
	return nil
}

// Ping 确认存储桶存在，不存在时尝试创建
func (m *minioClient) Ping(ctx context.Context) error {
	return m.ensureBucket(ctx)
}
