package config

import "github.com/Xushengqwer/go-common/config"

// ContentConfig 是内容服务的顶层配置，由 core.LoadConfig 从 YAML 加载。
type ContentConfig struct {
	ZapConfig         config.ZapConfig     `mapstructure:"zapConfig" json:"zapConfig" yaml:"zapConfig"`
	GormLogConfig     config.GormLogConfig `mapstructure:"gormLogConfig" json:"gormLogConfig" yaml:"gormLogConfig"`
	ServerConfig      config.ServerConfig  `mapstructure:"serverConfig" json:"serverConfig" yaml:"serverConfig"`
	TracerConfig      config.TracerConfig  `mapstructure:"tracerConfig" json:"tracerConfig" yaml:"tracerConfig"`
	PostgresConfig    PostgresConfig       `mapstructure:"postgresConfig" json:"postgresConfig" yaml:"postgresConfig"`
	RedisConfig       RedisConfig          `mapstructure:"redisConfig" json:"redisConfig" yaml:"redisConfig"`
	CacheConfig       CacheConfig          `mapstructure:"cacheConfig" json:"cacheConfig" yaml:"cacheConfig"`
	KafkaConfig       KafkaConfig          `mapstructure:"kafkaConfig" json:"kafkaConfig" yaml:"kafkaConfig"`
	BrokerConfig      BrokerConfig         `mapstructure:"brokerConfig" json:"brokerConfig" yaml:"brokerConfig"`
	ObjectStoreConfig ObjectStoreConfig    `mapstructure:"objectStoreConfig" json:"objectStoreConfig" yaml:"objectStoreConfig"`
	FeedConfig        FeedConfig           `mapstructure:"feedConfig" json:"feedConfig" yaml:"feedConfig"`
	UploadConfig      UploadConfig         `mapstructure:"uploadConfig" json:"uploadConfig" yaml:"uploadConfig"`
	SummaryConfig     SummaryConfig        `mapstructure:"summaryConfig" json:"summaryConfig" yaml:"summaryConfig"`
	GRPCConfig        GRPCConfig           `mapstructure:"grpcConfig" json:"grpcConfig" yaml:"grpcConfig"`
	ProbeConfig       ProbeConfig          `mapstructure:"probeConfig" json:"probeConfig" yaml:"probeConfig"`
}
