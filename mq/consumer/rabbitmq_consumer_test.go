package consumer

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/models/events"
)

type ackEvent struct {
	tag     uint64
	ack     bool
	requeue bool
}

type fakeAcknowledger struct {
	events chan ackEvent
}

func (a *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	a.events <- ackEvent{tag: tag, ack: true}
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	a.events <- ackEvent{tag: tag, requeue: requeue}
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	a.events <- ackEvent{tag: tag, requeue: requeue}
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRabbitMQConsumerAcksAfterHandling(t *testing.T) {
	acker := &fakeAcknowledger{events: make(chan ackEvent, 4)}
	deliveries := make(chan amqp.Delivery, 2)
	deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 1, Body: []byte(`{"post_id":1}`)}
	deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 2, Body: []byte(`{"post_id":2}`)}

	var mu sync.Mutex
	var handled []string
	handler := handlerFunc(func(_ context.Context, msg kafka.Message) error {
		mu.Lock()
		handled = append(handled, string(msg.Value))
		mu.Unlock()
		if string(msg.Value) == `{"post_id":2}` {
			return errors.New("summarizer down")
		}
		return nil
	})

	dial := func(context.Context) (<-chan amqp.Delivery, io.Closer, error) {
		return deliveries, closerFunc(func() error { return nil }), nil
	}
	c := newRabbitMQConsumer(dial, "ai_summarize", handler, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Start(ctx)
		close(done)
	}()

	for _, want := range []uint64{1, 2} {
		select {
		case got := <-acker.events:
			assert.Equal(t, ackEvent{tag: want, ack: true}, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("delivery %d was not acked", want)
		}
	}
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{`{"post_id":1}`, `{"post_id":2}`}, handled)
}

func TestRabbitMQConsumerRequeuesOnShutdown(t *testing.T) {
	acker := &fakeAcknowledger{events: make(chan ackEvent, 2)}
	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 7, Body: []byte(`{"post_id":7}`)}

	ctx, cancel := context.WithCancel(context.Background())
	handler := handlerFunc(func(context.Context, kafka.Message) error {
		cancel()
		return nil
	})
	dial := func(context.Context) (<-chan amqp.Delivery, io.Closer, error) {
		return deliveries, closerFunc(func() error { return nil }), nil
	}

	c := newRabbitMQConsumer(dial, "ai_summarize", handler, zap.NewNop())
	c.Start(ctx)

	select {
	case got := <-acker.events:
		assert.Equal(t, ackEvent{tag: 7, requeue: true}, got)
	default:
		t.Fatal("interrupted delivery was neither acked nor requeued")
	}
}

func TestRabbitMQConsumerReconnectsAfterChannelClose(t *testing.T) {
	acker := &fakeAcknowledger{events: make(chan ackEvent, 4)}
	var dials, closes atomic.Int32

	dial := func(context.Context) (<-chan amqp.Delivery, io.Closer, error) {
		n := dials.Add(1)
		if n == 2 {
			return nil, nil, errors.New("connection refused")
		}
		deliveries := make(chan amqp.Delivery, 1)
		deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: uint64(n)}
		if n == 1 {
			close(deliveries)
		}
		return deliveries, closerFunc(func() error {
			closes.Add(1)
			return nil
		}), nil
	}

	c := newRabbitMQConsumer(dial, "ai_summarize", handlerFunc(func(context.Context, kafka.Message) error { return nil }), zap.NewNop())
	c.reconnectWait = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Start(ctx)
		close(done)
	}()

	for _, want := range []uint64{1, 3} {
		select {
		case got := <-acker.events:
			assert.Equal(t, ackEvent{tag: want, ack: true}, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("delivery %d was not acked", want)
		}
	}
	cancel()
	<-done

	assert.Equal(t, int32(3), dials.Load())
	assert.Equal(t, int32(2), closes.Load())
}

func TestRabbitMQConsumerFeedsSummarizeJobHandler(t *testing.T) {
	acker := &fakeAcknowledger{events: make(chan ackEvent, 1)}
	sum := &fakeSummarizer{summary: "short"}
	sub := &fakeSubmitter{}
	body := jobMessage(t, events.SummarizeJobEvent{EventID: "e1", PostID: 42, Body: "long text"}).Value

	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 1, Body: body}
	dial := func(context.Context) (<-chan amqp.Delivery, io.Closer, error) {
		return deliveries, closerFunc(func() error { return nil }), nil
	}

	c := newRabbitMQConsumer(dial, "ai_summarize", NewSummarizeJobHandler(sum, sub, zap.NewNop()), zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Start(ctx)
		close(done)
	}()

	select {
	case got := <-acker.events:
		assert.True(t, got.ack)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not acked")
	}
	cancel()
	<-done

	require.Len(t, sub.results, 1)
	assert.Equal(t, events.SummaryResult{PostID: 42, SummaryText: "short"}, sub.results[0])
}

func TestNewRabbitMQConsumerRequiresURL(t *testing.T) {
	_, err := NewRabbitMQConsumer(config.RabbitMQConfig{}, handlerFunc(nil), zap.NewNop())
	assert.Error(t, err)
}
