package producer

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/models/events"
)

// KafkaProducer Kafka 消息生产者
type KafkaProducer struct {
	writer  *kafka.Writer
	brokers []string
	logger  *zap.Logger
	topics  config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(cfg config.KafkaConfig, logger *zap.Logger) (*KafkaProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers 配置不能为空")
	}
	if cfg.Topics.SummarizeJobs == "" {
		return nil, errors.New("kafka 摘要任务 topic 不能为空")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{
		writer:  writer,
		brokers: cfg.Brokers,
		logger:  logger,
		topics:  cfg.Topics,
	}, nil
}

// SendEvent 发送事件到指定 Kafka 主题，key 决定分区
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, key []byte, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("序列化事件失败", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("发送 Kafka 消息",
		zap.String("topic", topic),
		zap.ByteString("payload", eventBytes))

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: eventBytes,
	})
	if err != nil {
		p.logger.Error("写入 Kafka 消息失败", zap.Error(err), zap.String("topic", topic))
		return err
	}
	p.logger.Info("成功发送 Kafka 消息", zap.String("topic", topic))
	return nil
}

// PublishSummarizeJob 发送摘要任务，同一帖子的任务落在同一分区
func (p *KafkaProducer) PublishSummarizeJob(ctx context.Context, job events.SummarizeJobEvent) error {
	key := []byte(strconv.FormatUint(job.PostID, 10))
	return p.SendEvent(ctx, p.topics.SummarizeJobs, key, job)
}

// Ping 依次尝试连接 broker，任意一个可达即视为可用
func (p *KafkaProducer) Ping(ctx context.Context) error {
	var lastErr error
	for _, broker := range p.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		_ = conn.Close()
		return nil
	}
	return lastErr
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
