package producer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/dependencies"
	"github.com/Xushengqwer/content_service/models/events"
)

const (
	defaultRabbitQueue = "ai_summarize"
	initialDialTimeout = 5 * time.Second
)

// RabbitMQPublisher 通过 RabbitMQ 持久化队列投递摘要任务。
// 连接懒建立，断开后在下一次投递或探测时重连。
// 连接状态由容量为 1 的 lock 保护，等待锁与重连都受调用方 ctx 约束。
type RabbitMQPublisher struct {
	url    string
	queue  string
	logger *zap.Logger

	lock chan struct{}
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewRabbitMQPublisher(cfg config.RabbitMQConfig, logger *zap.Logger) (*RabbitMQPublisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq url 配置不能为空")
	}
	queue := cfg.Queue
	if queue == "" {
		queue = defaultRabbitQueue
	}
	p := &RabbitMQPublisher{url: cfg.URL, queue: queue, logger: logger, lock: make(chan struct{}, 1)}

	ctx, cancel := context.WithTimeout(context.Background(), initialDialTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		logger.Warn("RabbitMQ 暂不可用，将在投递时重连", zap.Error(err))
	}
	return p, nil
}

func (p *RabbitMQPublisher) acquire(ctx context.Context) error {
	select {
	case p.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *RabbitMQPublisher) release() { <-p.lock }

// ensureChannelLocked 调用方必须已 acquire
func (p *RabbitMQPublisher) ensureChannelLocked(ctx context.Context) error {
	if p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.closeLocked()

	conn, err := dependencies.DialRabbitMQ(ctx, p.url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	if err := dependencies.DeclareSummarizeQueue(ch, p.queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}
	p.conn, p.ch = conn, ch
	p.logger.Info("RabbitMQ 连接已建立", zap.String("queue", p.queue))
	return nil
}

func (p *RabbitMQPublisher) PublishSummarizeJob(ctx context.Context, job events.SummarizeJobEvent) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := p.acquire(ctx); err != nil {
		return err
	}
	defer p.release()
	if err := p.ensureChannelLocked(ctx); err != nil {
		p.logger.Error("连接 RabbitMQ 失败", zap.Error(err))
		return err
	}
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.EventID,
		Timestamp:    job.EnqueuedAt,
		Body:         body,
	})
	if err != nil {
		p.logger.Error("投递 RabbitMQ 消息失败", zap.String("queue", p.queue), zap.Uint64("postID", job.PostID), zap.Error(err))
		return err
	}
	p.logger.Info("成功投递摘要任务到 RabbitMQ", zap.String("queue", p.queue), zap.Uint64("postID", job.PostID))
	return nil
}

func (p *RabbitMQPublisher) Ping(ctx context.Context) error {
	if err := p.acquire(ctx); err != nil {
		return err
	}
	defer p.release()
	return p.ensureChannelLocked(ctx)
}

func (p *RabbitMQPublisher) Close() error {
	p.lock <- struct{}{}
	defer p.release()
	p.closeLocked()
	return nil
}

func (p *RabbitMQPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
