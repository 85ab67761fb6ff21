package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Xushengqwer/content_service/dependencies"
	"github.com/Xushengqwer/content_service/models/events"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, dependencies.Migrate(db))
	return db
}

// newForeignKeyTestDB 强制外键并翻译驱动错误，与生产 gorm 配置一致
func newForeignKeyTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, dependencies.Migrate(db))
	return db
}

// fakePublisher 记录投递过的任务
type fakePublisher struct {
	mu   sync.Mutex
	jobs []events.SummarizeJobEvent
	err  error
}

func (p *fakePublisher) PublishSummarizeJob(_ context.Context, job events.SummarizeJobEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, job)
	return nil
}

func (p *fakePublisher) Ping(context.Context) error { return nil }
func (p *fakePublisher) Close() error               { return nil }

func (p *fakePublisher) published() []events.SummarizeJobEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.SummarizeJobEvent(nil), p.jobs...)
}

var errBrokerDown = errors.New("broker down")
