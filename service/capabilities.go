package service

import "sync/atomic"

// Capabilities 记录可降级依赖当前是否可用。
// 请求路径每次读取，依赖探测任务负责刷新。
type Capabilities struct {
	uploads   atomic.Bool
	summaries atomic.Bool
}

func NewCapabilities(uploadsEnabled, summariesEnabled bool) *Capabilities {
	c := &Capabilities{}
	c.uploads.Store(uploadsEnabled)
	c.summaries.Store(summariesEnabled)
	return c
}

// UploadsEnabled 对象存储可用时为 true
func (c *Capabilities) UploadsEnabled() bool { return c.uploads.Load() }

// SummariesEnabled broker 可用时为 true
func (c *Capabilities) SummariesEnabled() bool { return c.summaries.Load() }

// SetUploadsEnabled 返回状态是否发生了变化
func (c *Capabilities) SetUploadsEnabled(v bool) bool { return c.uploads.Swap(v) != v }

// SetSummariesEnabled 返回状态是否发生了变化
func (c *Capabilities) SetSummariesEnabled(v bool) bool { return c.summaries.Swap(v) != v }
