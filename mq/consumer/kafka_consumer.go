package consumer

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/content_service/config"
)

// MessageHandler 定义了处理 Kafka 消息的接口
type MessageHandler interface {
	Handle(ctx context.Context, msg kafka.Message) error
}

// messageReader 是 Consumer 依赖的 kafka.Reader 子集，便于测试替换
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer 定义 Kafka 消费者结构。
// 处理完一条消息后才提交 offset；进程在提交前退出时，该消息会在重启后重新投递。
type Consumer struct {
	reader         messageReader
	handler        MessageHandler
	logger         *zap.Logger
	topic          string
	handleTimeout  time.Duration
	fetchErrorWait time.Duration
}

// NewConsumer 创建 Kafka Consumer 实例
func NewConsumer(cfg *appConfig.KafkaConfig, topicName string, handler MessageHandler, logger *zap.Logger) (*Consumer, error) {
	if topicName == "" {
		return nil, errors.New("kafka topic 名称不能为空")
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers 配置不能为空")
	}
	if cfg.ConsumerGroupID == "" {
		return nil, errors.New("kafka consumer group 不能为空")
	}

	logger.Info("初始化 Kafka 消费者",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", topicName),
		zap.String("group_id", cfg.ConsumerGroupID))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topicName,
		GroupID:  cfg.ConsumerGroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  3 * time.Second,
	})

	return newConsumer(reader, topicName, handler, logger), nil
}

func newConsumer(reader messageReader, topic string, handler MessageHandler, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader:         reader,
		handler:        handler,
		logger:         logger,
		topic:          topic,
		handleTimeout:  60 * time.Second,
		fetchErrorWait: time.Second,
	}
}

// Start 启动消费者循环，直到 ctx 取消或 Reader 关闭
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info("Kafka 消费者已启动", zap.String("topic", c.topic))
	defer c.logger.Info("Kafka 消费者已停止", zap.String("topic", c.topic))

	for {
		if ctx.Err() != nil {
			c.logger.Warn("消费者上下文已取消，正在退出...", zap.String("topic", c.topic))
			return
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				c.logger.Warn("消费者读取循环退出", zap.String("topic", c.topic), zap.Error(err))
				return
			}
			c.logger.Error("读取 Kafka 消息失败", zap.String("topic", c.topic), zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.fetchErrorWait):
			}
			continue
		}

		handleCtx, cancel := context.WithTimeout(ctx, c.handleTimeout)
		handleErr := c.handler.Handle(handleCtx, msg)
		cancel()

		if handleErr != nil {
			c.logger.Error("处理 Kafka 消息时发生错误，消息将被丢弃",
				zap.Error(handleErr),
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset))
		}

		// 关停途中被打断的消息不提交，重启后重新投递
		if ctx.Err() != nil {
			c.logger.Warn("消费者关闭，未提交当前消息", zap.Int64("offset", msg.Offset))
			return
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("提交 Kafka offset 失败", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// Close 关闭 Kafka Reader
func (c *Consumer) Close() error {
	c.logger.Info("正在关闭 Kafka 消费者...", zap.String("topic", c.topic))
	if err := c.reader.Close(); err != nil {
		c.logger.Error("关闭 Kafka Reader 失败", zap.Error(err), zap.String("topic", c.topic))
		return err
	}
	c.logger.Info("Kafka 消费者已成功关闭", zap.String("topic", c.topic))
	return nil
}
