package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/models/events"
)

// Summarizer 把帖子正文压缩成摘要
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// SummarySubmitter 把摘要结果回写到内容服务
type SummarySubmitter interface {
	SubmitSummary(ctx context.Context, result events.SummaryResult) error
}

// SummarizeJobHandler 消费摘要任务：生成摘要后经回调 RPC 提交。
// 同一任务可能被重复投递，回写是覆盖式的，重复处理只会得到相同结果。
type SummarizeJobHandler struct {
	summarizer Summarizer
	submitter  SummarySubmitter
	logger     *zap.Logger
}

func NewSummarizeJobHandler(summarizer Summarizer, submitter SummarySubmitter, logger *zap.Logger) *SummarizeJobHandler {
	return &SummarizeJobHandler{summarizer: summarizer, submitter: submitter, logger: logger}
}

func (h *SummarizeJobHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var job events.SummarizeJobEvent
	if err := json.Unmarshal(msg.Value, &job); err != nil {
		h.logger.Error("反序列化摘要任务失败", zap.Error(err), zap.ByteString("value", msg.Value))
		return nil // 不重试无法解析的消息
	}
	if job.PostID == 0 {
		h.logger.Warn("摘要任务缺少 post_id，丢弃", zap.String("event_id", job.EventID))
		return nil
	}

	h.logger.Info("开始处理摘要任务",
		zap.String("event_id", job.EventID),
		zap.Uint64("post_id", job.PostID))

	summary, err := h.summarizer.Summarize(ctx, job.Body)
	if err != nil {
		return fmt.Errorf("生成帖子(ID: %d)摘要失败: %w", job.PostID, err)
	}

	result := events.SummaryResult{PostID: job.PostID, SummaryText: summary}
	if err := h.submitter.SubmitSummary(ctx, result); err != nil {
		return fmt.Errorf("提交帖子(ID: %d)摘要失败: %w", job.PostID, err)
	}

	h.logger.Info("摘要任务处理完成", zap.Uint64("post_id", job.PostID))
	return nil
}
