package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/Xushengqwer/content_service/config"
)

const (
	// FallbackWordLimit 抽取式摘要保留的最大词数
	FallbackWordLimit = 20
	fallbackPrefix    = "[AI Summary] "
	defaultModel      = "gemini-2.0-flash"
)

const systemInstruction = `You summarize citizen reports submitted to a local government portal.
Reply with one or two plain sentences, no more than 60 words, in the same language as the report.
Describe the issue and its location if mentioned. Do not add greetings, markdown, or quotes.`

// Extractive 是不依赖模型的兜底摘要：不超过 FallbackWordLimit 个词时原样返回。
func Extractive(text string) string {
	words := strings.Fields(text)
	if len(words) <= FallbackWordLimit {
		return text
	}
	return fallbackPrefix + strings.Join(words[:FallbackWordLimit], " ") + "..."
}

type generator interface {
	generate(ctx context.Context, text string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) generate(ctx context.Context, text string) (string, error) {
	result, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(text),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		},
	)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// Summarizer 优先调用 Gemini，未配置或调用失败时退回抽取式摘要。
type Summarizer struct {
	gen     generator // nil 表示只用抽取式
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New APIKey 为空时不创建模型客户端。
func New(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (*Summarizer, error) {
	s := &Summarizer{limiter: newLimiter(cfg.RequestsPerMinute), logger: logger}
	if cfg.APIKey == "" {
		logger.Warn("未配置 LLM API Key，使用抽取式摘要")
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 genai 客户端失败: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	s.gen = &geminiGenerator{client: client, model: model}
	logger.Info("LLM 摘要已启用", zap.String("model", model), zap.Int("requestsPerMinute", cfg.RequestsPerMinute))
	return s, nil
}

// newLimiter rpm<=0 时不限速
func newLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("正文为空，无法生成摘要")
	}
	if s.gen == nil {
		return Extractive(text), nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("等待 LLM 限流令牌失败: %w", err)
	}
	summary, err := s.gen.generate(ctx, text)
	if err == nil {
		summary = strings.TrimSpace(summary)
	}
	if err != nil || summary == "" {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		s.logger.Warn("LLM 摘要失败，使用抽取式摘要", zap.Error(err))
		return Extractive(text), nil
	}
	return summary, nil
}
