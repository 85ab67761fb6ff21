// Package events 定义内容服务与摘要 worker 之间传递的消息结构。
package events

import "time"

// SummarizeJobEvent 是投递到 broker 的摘要任务。
// 它在数据库中没有对应记录，只作为队列消息存在，可能被重复投递。
type SummarizeJobEvent struct {
	EventID    string    `json:"event_id"`
	PostID     uint64    `json:"post_id"`
	Body       string    `json:"body"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// SummaryResult 是 worker 经回调 RPC 提交的摘要结果
type SummaryResult struct {
	PostID      uint64 `json:"post_id"`
	SummaryText string `json:"summary_text"`
}
