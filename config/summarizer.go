package config

import "github.com/Xushengqwer/go-common/config"

// SummarizerConfig 是摘要 worker (cmd/summarizer) 的顶层配置。
type SummarizerConfig struct {
	ZapConfig      config.ZapConfig `mapstructure:"zapConfig" json:"zapConfig" yaml:"zapConfig"`
	KafkaConfig    KafkaConfig      `mapstructure:"kafkaConfig" json:"kafkaConfig" yaml:"kafkaConfig"`
	BrokerConfig   BrokerConfig     `mapstructure:"brokerConfig" json:"brokerConfig" yaml:"brokerConfig"`
	CallbackConfig CallbackConfig   `mapstructure:"callbackConfig" json:"callbackConfig" yaml:"callbackConfig"`
	LLMConfig      LLMConfig        `mapstructure:"llmConfig" json:"llmConfig" yaml:"llmConfig"`
}

// CallbackConfig 指向内容服务的摘要回调 RPC
type CallbackConfig struct {
	Target         string `mapstructure:"target" json:"target" yaml:"target"` // 例如 "localhost:50051"
	TimeoutSeconds int    `mapstructure:"timeoutSeconds" json:"timeoutSeconds" yaml:"timeoutSeconds"`
}

// LLMConfig 摘要模型配置；APIKey 为空时使用抽取式兜底摘要。
type LLMConfig struct {
	APIKey            string `mapstructure:"apiKey" json:"-" yaml:"apiKey"`
	Model             string `mapstructure:"model" json:"model" yaml:"model"`
	RequestsPerMinute int    `mapstructure:"requestsPerMinute" json:"requestsPerMinute" yaml:"requestsPerMinute"`
}
