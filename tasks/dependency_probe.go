package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/constant"
	"github.com/Xushengqwer/content_service/service"
)

// Pinger 是可探测的下游依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// DependencyProbeTask 定时探测对象存储与摘要 broker，刷新 Capabilities。
// 启动时初始化失败的依赖传 nil，对应能力保持关闭直到重启。
type DependencyProbeTask struct {
	store     Pinger
	publisher Pinger
	caps      *service.Capabilities
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewDependencyProbeTask(cfg config.ProbeConfig, store, publisher Pinger, caps *service.Capabilities, logger *zap.Logger) *DependencyProbeTask {
	schedule := cfg.CronSpec
	if schedule == "" {
		schedule = constant.DefaultProbeCronSpec
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = constant.DefaultProbeTimeout
	}
	return &DependencyProbeTask{
		store:     store,
		publisher: publisher,
		caps:      caps,
		schedule:  schedule,
		timeout:   timeout,
		cron:      cron.New(),
		logger:    logger,
	}
}

// Start 注册并启动 cron 作业
func (t *DependencyProbeTask) Start() error {
	t.logger.Info("准备启动依赖探测定时任务", zap.String("schedule", t.schedule))

	entryID, err := t.cron.AddFunc(t.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		t.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("添加依赖探测 cron 作业失败 (schedule: %s): %w", t.schedule, err)
	}

	t.cron.Start()
	t.logger.Info("依赖探测定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
	return nil
}

// RunOnce 探测一次所有依赖，只在能力状态变化时记录日志。
func (t *DependencyProbeTask) RunOnce(ctx context.Context) {
	uploads := t.probe(ctx, "object_store", t.store)
	if t.caps.SetUploadsEnabled(uploads) {
		t.logger.Warn("上传能力状态变化", zap.Bool("enabled", uploads))
	}

	summaries := t.probe(ctx, "summary_broker", t.publisher)
	if t.caps.SetSummariesEnabled(summaries) {
		t.logger.Warn("摘要能力状态变化", zap.Bool("enabled", summaries))
	}
}

func (t *DependencyProbeTask) probe(ctx context.Context, name string, p Pinger) bool {
	if p == nil {
		return false
	}
	if err := p.Ping(ctx); err != nil {
		t.logger.Debug("依赖探测失败", zap.String("dependency", name), zap.Error(err))
		return false
	}
	return true
}

// Stop 停止调度，返回的 context 在正在执行的探测结束后关闭。
func (t *DependencyProbeTask) Stop() context.Context {
	t.logger.Info("正在停止依赖探测定时任务...")
	return t.cron.Stop()
}
