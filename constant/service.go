package constant

import "time"

const (
	ServiceName    = "content-service"
	ServiceVersion = "1.0.0"
)

// 信息流与摘要任务的默认参数
const (
	DefaultFeedCandidateWindow   = 100
	DefaultSummaryPublishTimeout = 5 * time.Second
	DefaultProbeCronSpec         = "@every 1m"
	DefaultProbeTimeout          = 5 * time.Second
)

// 上传相关
const (
	// UploadObjectKeyPrefix 是上传文件对象键的前缀，完整格式 uploads/YYYYMMDD/<uuid><ext>
	UploadObjectKeyPrefix = "uploads/"
	DefaultUploadMaxSize  = 5 << 20
)

// DefaultAllowedUploadTypes 只允许常见图片格式
var DefaultAllowedUploadTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// 实体默认值
const (
	DefaultPostCategory = "general"
	DefaultPostType     = "text"
	DefaultMediaType    = "image"
)

// 文章作者类型
const (
	AuthorKindAdmin      = "admin"
	AuthorKindDepartment = "department"
)
