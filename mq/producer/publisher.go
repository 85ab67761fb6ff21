package producer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/models/events"
)

// SummaryJobPublisher 把摘要任务投递到 broker。
// 投递是 at-least-once 的，消费端必须能容忍重复任务。
type SummaryJobPublisher interface {
	PublishSummarizeJob(ctx context.Context, job events.SummarizeJobEvent) error
	// Ping 检查 broker 是否可达，供依赖探测任务使用
	Ping(ctx context.Context) error
	Close() error
}

const (
	DriverKafka    = "kafka"
	DriverRabbitMQ = "rabbitmq"
)

// NewPublisher 按 brokerConfig.driver 选择投递通道，空值视为 kafka。
// broker 此时不可达不会返回错误，真正的连接在投递或探测时建立。
func NewPublisher(brokerCfg config.BrokerConfig, kafkaCfg config.KafkaConfig, logger *zap.Logger) (SummaryJobPublisher, error) {
	switch brokerCfg.Driver {
	case "", DriverKafka:
		p, err := NewKafkaProducer(kafkaCfg, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverRabbitMQ:
		p, err := NewRabbitMQPublisher(brokerCfg.RabbitMQ, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("不支持的 broker driver: %q", brokerCfg.Driver)
	}
}
