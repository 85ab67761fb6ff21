package config

// FeedConfig 控制信息流的候选窗口。
type FeedConfig struct {
	// CandidateWindow 是排序前从数据库按时间倒序取出的最大帖子数，<=0 时使用 100。
	// 窗口之外的帖子不会参与排序。
	CandidateWindow int `mapstructure:"candidateWindow" json:"candidateWindow" yaml:"candidateWindow"`
}

// UploadConfig 控制文件上传的校验规则。
type UploadConfig struct {
	// MaxSizeBytes 单个文件大小上限，<=0 时使用 5 MiB。
	MaxSizeBytes int64 `mapstructure:"maxSizeBytes" json:"maxSizeBytes" yaml:"maxSizeBytes"`
	// AllowedTypes 允许的 MIME 类型，为空时使用常用图片格式。
	AllowedTypes []string `mapstructure:"allowedTypes" json:"allowedTypes" yaml:"allowedTypes"`
}

// SummaryConfig 控制摘要任务的投递。
type SummaryConfig struct {
	// PublishTimeoutSeconds 是后台投递单个任务的超时，<=0 时使用 5 秒。
	PublishTimeoutSeconds int `mapstructure:"publishTimeoutSeconds" json:"publishTimeoutSeconds" yaml:"publishTimeoutSeconds"`
}

// ProbeConfig 控制依赖探测定时任务。
type ProbeConfig struct {
	// CronSpec 为空时使用 "@every 1m"
	CronSpec string `mapstructure:"cronSpec" json:"cronSpec" yaml:"cronSpec"`
	// TimeoutSeconds 是单次探测的超时，<=0 时使用 5 秒
	TimeoutSeconds int `mapstructure:"timeoutSeconds" json:"timeoutSeconds" yaml:"timeoutSeconds"`
}
