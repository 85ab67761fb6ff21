package consumer

import (
	"context"
	"errors"
	"io"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/dependencies"
)

const defaultRabbitQueue = "ai_summarize"

// deliveryDialer 打开一条消费通道；返回的 io.Closer 负责释放连接
type deliveryDialer func(ctx context.Context) (<-chan amqp.Delivery, io.Closer, error)

// RabbitMQConsumer 从持久化队列消费摘要任务。
// 与 Kafka 消费者一致：处理完成后才 Ack，关停途中被打断的消息 Nack 回队列。
// 连接断开后按 reconnectWait 间隔重连。
type RabbitMQConsumer struct {
	queue         string
	handler       MessageHandler
	logger        *zap.Logger
	dial          deliveryDialer
	handleTimeout time.Duration
	reconnectWait time.Duration
}

func NewRabbitMQConsumer(cfg appConfig.RabbitMQConfig, handler MessageHandler, logger *zap.Logger) (*RabbitMQConsumer, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq url 配置不能为空")
	}
	queue := cfg.Queue
	if queue == "" {
		queue = defaultRabbitQueue
	}
	logger.Info("初始化 RabbitMQ 消费者", zap.String("queue", queue))
	return newRabbitMQConsumer(amqpDialer(cfg.URL, queue), queue, handler, logger), nil
}

func newRabbitMQConsumer(dial deliveryDialer, queue string, handler MessageHandler, logger *zap.Logger) *RabbitMQConsumer {
	return &RabbitMQConsumer{
		queue:         queue,
		handler:       handler,
		logger:        logger,
		dial:          dial,
		handleTimeout: 60 * time.Second,
		reconnectWait: 2 * time.Second,
	}
}

func amqpDialer(url, queue string) deliveryDialer {
	return func(ctx context.Context) (<-chan amqp.Delivery, io.Closer, error) {
		conn, err := dependencies.DialRabbitMQ(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		if err := dependencies.DeclareSummarizeQueue(ch, queue); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		// 摘要调用较慢，一次只取一条
		if err := ch.Qos(1, 0, false); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return deliveries, conn, nil
	}
}

// Start 启动消费循环，直到 ctx 取消
func (c *RabbitMQConsumer) Start(ctx context.Context) {
	c.logger.Info("RabbitMQ 消费者已启动", zap.String("queue", c.queue))
	defer c.logger.Info("RabbitMQ 消费者已停止", zap.String("queue", c.queue))

	for ctx.Err() == nil {
		deliveries, closer, err := c.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("连接 RabbitMQ 失败", zap.String("queue", c.queue), zap.Error(err))
		} else {
			c.consume(ctx, deliveries)
			if err := closer.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
				c.logger.Warn("关闭 RabbitMQ 连接失败", zap.Error(err))
			}
			if ctx.Err() != nil {
				return
			}
			c.logger.Warn("RabbitMQ 投递通道已关闭，准备重连", zap.String("queue", c.queue))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.reconnectWait):
		}
	}
}

// consume 处理投递直到通道关闭或 ctx 取消
func (c *RabbitMQConsumer) consume(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		var d amqp.Delivery
		var ok bool
		select {
		case <-ctx.Done():
			return
		case d, ok = <-deliveries:
			if !ok {
				return
			}
		}

		msg := kafka.Message{Topic: c.queue, Key: []byte(d.MessageId), Value: d.Body, Time: d.Timestamp}
		handleCtx, cancel := context.WithTimeout(ctx, c.handleTimeout)
		handleErr := c.handler.Handle(handleCtx, msg)
		cancel()

		if handleErr != nil {
			c.logger.Error("处理 RabbitMQ 消息时发生错误，消息将被丢弃",
				zap.Error(handleErr),
				zap.String("queue", c.queue),
				zap.Uint64("deliveryTag", d.DeliveryTag))
		}

		if ctx.Err() != nil {
			c.logger.Warn("消费者关闭，当前消息退回队列", zap.Uint64("deliveryTag", d.DeliveryTag))
			if err := d.Nack(false, true); err != nil {
				c.logger.Error("Nack RabbitMQ 消息失败", zap.Uint64("deliveryTag", d.DeliveryTag), zap.Error(err))
			}
			return
		}
		if err := d.Ack(false); err != nil {
			c.logger.Error("Ack RabbitMQ 消息失败", zap.Uint64("deliveryTag", d.DeliveryTag), zap.Error(err))
		}
	}
}

// Close 连接在 Start 退出时已释放
func (c *RabbitMQConsumer) Close() error {
	return nil
}
