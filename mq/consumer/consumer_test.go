package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/models/events"
)

type fakeReader struct {
	mu       sync.Mutex
	msgs     []kafka.Message
	commitCh chan int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.commitCh <- m.Offset
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

type handlerFunc func(ctx context.Context, msg kafka.Message) error

func (f handlerFunc) Handle(ctx context.Context, msg kafka.Message) error { return f(ctx, msg) }

func TestConsumerCommitsAfterHandling(t *testing.T) {
	reader := &fakeReader{
		msgs:     []kafka.Message{{Offset: 1}, {Offset: 2}},
		commitCh: make(chan int64, 4),
	}
	var handled []int64
	handler := handlerFunc(func(_ context.Context, msg kafka.Message) error {
		handled = append(handled, msg.Offset)
		if msg.Offset == 2 {
			return errors.New("summarizer down")
		}
		return nil
	})

	c := newConsumer(reader, "ai_summarize", handler, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Start(ctx)
		close(done)
	}()

	for _, want := range []int64{1, 2} {
		select {
		case got := <-reader.commitCh:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("offset %d was not committed", want)
		}
	}
	cancel()
	<-done

	assert.Equal(t, []int64{1, 2}, handled)
}

type fakeSummarizer struct {
	summary string
	err     error
	inputs  []string
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	f.inputs = append(f.inputs, text)
	return f.summary, f.err
}

type fakeSubmitter struct {
	results []events.SummaryResult
	err     error
}

func (f *fakeSubmitter) SubmitSummary(_ context.Context, result events.SummaryResult) error {
	f.results = append(f.results, result)
	return f.err
}

func jobMessage(t *testing.T, job events.SummarizeJobEvent) kafka.Message {
	t.Helper()
	value, err := json.Marshal(job)
	require.NoError(t, err)
	return kafka.Message{Value: value}
}

func TestSummarizeJobHandlerSubmitsSummary(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "short"}
	submitter := &fakeSubmitter{}
	h := NewSummarizeJobHandler(summarizer, submitter, zap.NewNop())

	err := h.Handle(context.Background(), jobMessage(t, events.SummarizeJobEvent{EventID: "e1", PostID: 42, Body: "long body"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"long body"}, summarizer.inputs)
	require.Len(t, submitter.results, 1)
	assert.Equal(t, events.SummaryResult{PostID: 42, SummaryText: "short"}, submitter.results[0])
}

func TestSummarizeJobHandlerDropsMalformedMessages(t *testing.T) {
	summarizer := &fakeSummarizer{}
	submitter := &fakeSubmitter{}
	h := NewSummarizeJobHandler(summarizer, submitter, zap.NewNop())

	require.NoError(t, h.Handle(context.Background(), kafka.Message{Value: []byte("not json")}))
	require.NoError(t, h.Handle(context.Background(), jobMessage(t, events.SummarizeJobEvent{Body: "no id"})))
	assert.Empty(t, summarizer.inputs)
	assert.Empty(t, submitter.results)
}

func TestSummarizeJobHandlerPropagatesFailures(t *testing.T) {
	msg := jobMessage(t, events.SummarizeJobEvent{PostID: 1, Body: "b"})

	failing := &fakeSummarizer{err: errors.New("quota")}
	submitter := &fakeSubmitter{}
	err := NewSummarizeJobHandler(failing, submitter, zap.NewNop()).Handle(context.Background(), msg)
	assert.Error(t, err)
	assert.Empty(t, submitter.results)

	rejecting := &fakeSubmitter{err: errors.New("unavailable")}
	err = NewSummarizeJobHandler(&fakeSummarizer{summary: "s"}, rejecting, zap.NewNop()).Handle(context.Background(), msg)
	assert.Error(t, err)
}
