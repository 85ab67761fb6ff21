package dependencies

import (
	"context"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const rabbitMQHandshakeTimeout = 30 * time.Second

// DialRabbitMQ 建立 AMQP 连接，TCP 建连与 AMQP 握手都受 ctx 约束。
func DialRabbitMQ(ctx context.Context, url string) (*amqp.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      contextDialer(ctx),
	})
}

// contextDialer 握手阶段的 deadline 取 ctx 截止时间与默认超时中较早者，
// 连接建立后 amqp091 会清除该 deadline。
func contextDialer(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		deadline := time.Now().Add(rabbitMQHandshakeTimeout)
		if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
			deadline = ctxDeadline
		}
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	}
}

// DeclareSummarizeQueue 声明持久化的摘要任务队列，生产端与消费端共用同一组参数。
func DeclareSummarizeQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	return err
}
