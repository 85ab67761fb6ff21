package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/config"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (g *stubGenerator) generate(context.Context, string) (string, error) {
	g.calls++
	return g.reply, g.err
}

func TestExtractiveShortTextUnchanged(t *testing.T) {
	text := "Streetlight broken on Oak Avenue"
	assert.Equal(t, text, Extractive(text))

	twenty := strings.TrimSpace(strings.Repeat("word ", 20))
	assert.Equal(t, twenty, Extractive(twenty))
}

func TestExtractiveTruncatesLongText(t *testing.T) {
	words := make([]string, 25)
	for i := range words {
		words[i] = "w"
	}
	words[19] = "last"
	words[20] = "dropped"

	got := Extractive(strings.Join(words, " "))
	assert.True(t, strings.HasPrefix(got, "[AI Summary] "))
	assert.True(t, strings.HasSuffix(got, "last..."))
	assert.NotContains(t, got, "dropped")
	assert.Len(t, strings.Fields(strings.TrimPrefix(got, "[AI Summary] ")), 20)
}

func TestNewWithoutKeyUsesFallback(t *testing.T) {
	s, err := New(context.Background(), config.LLMConfig{}, zap.NewNop())
	require.NoError(t, err)

	got, err := s.Summarize(context.Background(), "Pothole near the school")
	require.NoError(t, err)
	assert.Equal(t, "Pothole near the school", got)

	_, err = s.Summarize(context.Background(), "   ")
	assert.Error(t, err)
}

func TestSummarizeUsesGenerator(t *testing.T) {
	gen := &stubGenerator{reply: "  A pothole was reported.  "}
	s := &Summarizer{gen: gen, limiter: newLimiter(0), logger: zap.NewNop()}

	got, err := s.Summarize(context.Background(), "long text")
	require.NoError(t, err)
	assert.Equal(t, "A pothole was reported.", got)
	assert.Equal(t, 1, gen.calls)
}

func TestSummarizeFallsBackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	s := &Summarizer{gen: gen, limiter: newLimiter(0), logger: zap.NewNop()}

	got, err := s.Summarize(context.Background(), "Bridge lights are out")
	require.NoError(t, err)
	assert.Equal(t, "Bridge lights are out", got)
}

func TestLimiterThrottlesCalls(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	s := &Summarizer{gen: gen, limiter: newLimiter(1), logger: zap.NewNop()}

	_, err := s.Summarize(context.Background(), "first")
	require.NoError(t, err)

	// 每分钟一次，第二次调用在 ctx 超时前拿不到令牌
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = s.Summarize(ctx, "second")
	require.Error(t, err)
	assert.Equal(t, 1, gen.calls)
}

func TestNewLimiterUnlimited(t *testing.T) {
	l := newLimiter(0)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow())
	}
}
