package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/constant"
	"github.com/Xushengqwer/content_service/models/entities"
	"github.com/Xushengqwer/content_service/models/events"
	"github.com/Xushengqwer/content_service/mq/producer"
	"github.com/Xushengqwer/content_service/repo/postgres"
)

// SummaryState 是帖子摘要的一致性状态：Created → Enqueued → Summarized。
// Created 状态的帖子可能永远停留在这里（broker 不可用时任务被丢弃，不重试）。
type SummaryState int

const (
	SummaryCreated SummaryState = iota
	SummaryEnqueued
	SummarySummarized
)

func (s SummaryState) String() string {
	switch s {
	case SummaryCreated:
		return "created"
	case SummaryEnqueued:
		return "enqueued"
	case SummarySummarized:
		return "summarized"
	default:
		return "unknown"
	}
}

// SummaryOutcome 是一次摘要回写的结果
type SummaryOutcome int

const (
	// SummaryApplied 摘要已写入帖子
	SummaryApplied SummaryOutcome = iota
	// SummaryDiscarded 帖子不存在（或已删除），摘要被丢弃且不会创建任何记录
	SummaryDiscarded
)

// SummaryCoordinator 串起帖子提交、任务投递与摘要回写三个阶段。
type SummaryCoordinator interface {
	// AfterCommit 只能在帖子所在事务提交之后调用，投递在后台进行，不阻塞请求。
	AfterCommit(ctx context.Context, post *entities.Post) SummaryState

	// ApplySummary 以单条 UPDATE 写入摘要，可重复调用，后写覆盖先写。
	ApplySummary(ctx context.Context, postID uint64, text string) (SummaryOutcome, error)

	// Wait 等待所有后台投递结束
	Wait()
}

type summaryCoordinator struct {
	postRepo  postgres.PostRepository
	publisher producer.SummaryJobPublisher
	caps      *Capabilities
	timeout   time.Duration
	logger    *zap.Logger
	now       func() time.Time

	wg sync.WaitGroup
}

// NewSummaryCoordinator publisher 可以为 nil，此时所有帖子停留在 Created。
func NewSummaryCoordinator(postRepo postgres.PostRepository, publisher producer.SummaryJobPublisher, caps *Capabilities, publishTimeout time.Duration, logger *zap.Logger) SummaryCoordinator {
	if publishTimeout <= 0 {
		publishTimeout = constant.DefaultSummaryPublishTimeout
	}
	return &summaryCoordinator{
		postRepo:  postRepo,
		publisher: publisher,
		caps:      caps,
		timeout:   publishTimeout,
		logger:    logger,
		now:       time.Now,
	}
}

func (c *summaryCoordinator) AfterCommit(ctx context.Context, post *entities.Post) SummaryState {
	if c.publisher == nil || !c.caps.SummariesEnabled() {
		c.logger.Warn("摘要通道不可用，跳过摘要任务", zap.Uint64("postID", post.ID))
		return SummaryCreated
	}

	job := events.SummarizeJobEvent{
		EventID:    uuid.NewString(),
		PostID:     post.ID,
		Body:       post.Content,
		EnqueuedAt: c.now(),
	}

	// 请求结束不应取消投递，只保留 ctx 中的值（trace 等）
	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		if err := c.publisher.PublishSummarizeJob(bgCtx, job); err != nil {
			c.logger.Error("投递摘要任务失败", zap.Uint64("postID", job.PostID), zap.String("eventID", job.EventID), zap.Error(err))
			return
		}
		c.logger.Info("摘要任务已投递", zap.Uint64("postID", job.PostID), zap.String("eventID", job.EventID))
	}()
	return SummaryEnqueued
}

func (c *summaryCoordinator) ApplySummary(ctx context.Context, postID uint64, text string) (SummaryOutcome, error) {
	affected, err := c.postRepo.UpdateSummary(ctx, postID, text, c.now())
	if err != nil {
		c.logger.Error("写入帖子摘要失败", zap.Uint64("postID", postID), zap.Error(err))
		return SummaryDiscarded, err
	}
	if affected == 0 {
		return SummaryDiscarded, nil
	}
	return SummaryApplied, nil
}

func (c *summaryCoordinator) Wait() {
	c.wg.Wait()
}
