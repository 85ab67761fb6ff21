package config

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics          Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" json:"consumer_group_id" yaml:"consumer_group_id"`
}

type Topics struct {
	SummarizeJobs string `mapstructure:"summarizeJobs" json:"summarizeJobs" yaml:"summarizeJobs"` // AI 摘要任务主题
}

// BrokerConfig 选择摘要任务的投递通道。
// Driver 为 "kafka" (默认) 或 "rabbitmq"。
type BrokerConfig struct {
	Driver   string         `mapstructure:"driver" json:"driver" yaml:"driver"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq" json:"rabbitmq" yaml:"rabbitmq"`
}

type RabbitMQConfig struct {
	URL   string `mapstructure:"url" json:"-" yaml:"url"`
	Queue string `mapstructure:"queue" json:"queue" yaml:"queue"`
}
