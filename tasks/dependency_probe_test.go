package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/service"
)

type stubPinger struct {
	err   error
	calls int
}

func (p *stubPinger) Ping(context.Context) error {
	p.calls++
	return p.err
}

func TestRunOnceTogglesCapabilities(t *testing.T) {
	store := &stubPinger{}
	broker := &stubPinger{err: errors.New("connection refused")}
	caps := service.NewCapabilities(false, true)
	task := NewDependencyProbeTask(config.ProbeConfig{}, store, broker, caps, zap.NewNop())

	task.RunOnce(context.Background())
	assert.True(t, caps.UploadsEnabled())
	assert.False(t, caps.SummariesEnabled())

	store.err = errors.New("timeout")
	broker.err = nil
	task.RunOnce(context.Background())
	assert.False(t, caps.UploadsEnabled())
	assert.True(t, caps.SummariesEnabled())
	assert.Equal(t, 2, store.calls)
}

func TestRunOnceNilDependencyStaysDisabled(t *testing.T) {
	caps := service.NewCapabilities(true, true)
	task := NewDependencyProbeTask(config.ProbeConfig{}, nil, nil, caps, zap.NewNop())

	task.RunOnce(context.Background())
	assert.False(t, caps.UploadsEnabled())
	assert.False(t, caps.SummariesEnabled())
}

func TestProbeDefaults(t *testing.T) {
	task := NewDependencyProbeTask(config.ProbeConfig{}, nil, nil, service.NewCapabilities(false, false), zap.NewNop())
	assert.Equal(t, "@every 1m", task.schedule)
	assert.Equal(t, 5*time.Second, task.timeout)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	task := NewDependencyProbeTask(config.ProbeConfig{CronSpec: "not a schedule"}, nil, nil, service.NewCapabilities(false, false), zap.NewNop())
	require.Error(t, task.Start())
}

func TestStartAndStop(t *testing.T) {
	task := NewDependencyProbeTask(config.ProbeConfig{CronSpec: "@every 1h"}, &stubPinger{}, &stubPinger{}, service.NewCapabilities(false, false), zap.NewNop())
	require.NoError(t, task.Start())

	select {
	case <-task.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("cron did not stop")
	}
}
