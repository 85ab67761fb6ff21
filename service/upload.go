package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/constant"
	"github.com/Xushengqwer/content_service/dependencies"
	"github.com/Xushengqwer/content_service/models/vo"
	"github.com/Xushengqwer/content_service/myErrors"
)

const (
	// sniffLen 是类型探测读取的字节数，与 mimetype 默认读取上限一致
	sniffLen = 3072

	discardTimeout = 5 * time.Second
)

// UploadService 把单个文件写入对象存储并返回其引用。
type UploadService interface {
	// Upload 校验大小与探测到的真实类型后上传。
	// - 对象存储不可用时返回 myErrors.ErrUploadsDisabled。
	// - 类型或大小不合法时返回 *myErrors.ValidationError。
	Upload(ctx context.Context, fileHeader *multipart.FileHeader) (*vo.UploadVO, error)
}

type uploadService struct {
	store        dependencies.ObjectStore // 初始化失败时为 nil
	caps         *Capabilities
	maxSize      int64
	allowedTypes []string
	logger       *zap.Logger
	now          func() time.Time
}

func NewUploadService(store dependencies.ObjectStore, caps *Capabilities, maxSize int64, allowedTypes []string, logger *zap.Logger) UploadService {
	if maxSize <= 0 {
		maxSize = constant.DefaultUploadMaxSize
	}
	if len(allowedTypes) == 0 {
		allowedTypes = constant.DefaultAllowedUploadTypes
	}
	return &uploadService{
		store:        store,
		caps:         caps,
		maxSize:      maxSize,
		allowedTypes: allowedTypes,
		logger:       logger,
		now:          time.Now,
	}
}

// objectKey 格式: uploads/YYYYMMDD/<uuid><ext>
func (s *uploadService) objectKey(ext string) string {
	return fmt.Sprintf("%s%s/%s%s", constant.UploadObjectKeyPrefix, s.now().Format("20060102"), uuid.NewString(), ext)
}

func (s *uploadService) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (*vo.UploadVO, error) {
	if s.store == nil || !s.caps.UploadsEnabled() {
		return nil, myErrors.ErrUploadsDisabled
	}
	if fileHeader.Size <= 0 {
		return nil, myErrors.NewValidationError("file", "文件为空")
	}
	if fileHeader.Size > s.maxSize {
		return nil, myErrors.NewValidationError("file", "文件大小 %d 超过上限 %d 字节", fileHeader.Size, s.maxSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	if !mimetype.EqualsAny(mtype.String(), s.allowedTypes...) {
		s.logger.Warn("拒绝不支持的上传类型",
			zap.String("filename", fileHeader.Filename),
			zap.String("detected", mtype.String()))
		return nil, myErrors.NewValidationError("file", "不支持的文件类型 %s", mtype.String())
	}

	key := s.objectKey(mtype.Extension())
	reader := io.MultiReader(bytes.NewReader(head), file)
	url, err := s.store.UploadFile(ctx, key, reader, fileHeader.Size, mtype.String())
	if err != nil {
		s.logger.Error("上传文件到对象存储失败",
			zap.String("store", s.store.Name()),
			zap.String("objectKey", key),
			zap.Error(err))
		s.discard(ctx, key)
		return nil, err
	}

	s.logger.Info("文件上传成功", zap.String("objectKey", key), zap.Int64("size", fileHeader.Size))
	return &vo.UploadVO{
		ObjectKey:   key,
		URL:         url,
		ContentType: mtype.String(),
		Size:        fileHeader.Size,
	}, nil
}

// discard 尽力删除上传失败后可能残留的对象，请求已取消时仍会执行
func (s *uploadService) discard(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), discardTimeout)
	defer cancel()
	if err := s.store.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("清理残留对象失败", zap.String("objectKey", key), zap.Error(err))
	}
}
