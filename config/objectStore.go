package config

// ObjectStoreConfig 选择上传文件的对象存储后端。
// Driver 为 "cos" (默认) 或 "minio"。
type ObjectStoreConfig struct {
	Driver string      `mapstructure:"driver" json:"driver" yaml:"driver"`
	COS    COSConfig   `mapstructure:"cos" json:"cos" yaml:"cos"`
	MinIO  MinIOConfig `mapstructure:"minio" json:"minio" yaml:"minio"`
}

// COSConfig 腾讯云 COS 配置
type COSConfig struct {
	SecretID   string `mapstructure:"secret_id" json:"-" yaml:"secret_id"`
	SecretKey  string `mapstructure:"secret_key" json:"-" yaml:"secret_key"`
	BucketName string `mapstructure:"bucket_name" json:"bucket_name" yaml:"bucket_name"`
	AppID      string `mapstructure:"app_id" json:"app_id" yaml:"app_id"`
	Region     string `mapstructure:"region" json:"region" yaml:"region"`
	// BaseURL 可选，CDN 或自定义域名，用于拼接公开访问地址
	BaseURL string `mapstructure:"base_url" json:"base_url" yaml:"base_url"`
}

// MinIOConfig 自建 MinIO 配置
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint"`
	AccessKey string `mapstructure:"access_key" json:"-" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" json:"-" yaml:"secret_key"`
	Bucket    string `mapstructure:"bucket" json:"bucket" yaml:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl" json:"use_ssl" yaml:"use_ssl"`
	// PublicBaseURL 可选，为空时使用 endpoint/bucket 拼接
	PublicBaseURL string `mapstructure:"public_base_url" json:"public_base_url" yaml:"public_base_url"`
}
