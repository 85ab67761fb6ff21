package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/models/entities"
	"github.com/Xushengqwer/content_service/repo/postgres"
)

func TestAfterCommitEnqueuesJob(t *testing.T) {
	db := newTestDB(t)
	pub := &fakePublisher{}
	c := NewSummaryCoordinator(postgres.NewPostRepository(db, zap.NewNop()), pub, NewCapabilities(true, true), time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	state := c.AfterCommit(ctx, &entities.Post{ID: 5, Content: "pothole on main street"})
	cancel() // 请求结束不影响后台投递
	c.Wait()

	assert.Equal(t, SummaryEnqueued, state)
	jobs := pub.published()
	require.Len(t, jobs, 1)
	assert.Equal(t, uint64(5), jobs[0].PostID)
	assert.Equal(t, "pothole on main street", jobs[0].Body)
	assert.NotEmpty(t, jobs[0].EventID)
}

func TestAfterCommitStaysCreatedWithoutBroker(t *testing.T) {
	db := newTestDB(t)
	repo := postgres.NewPostRepository(db, zap.NewNop())

	pub := &fakePublisher{}
	disabled := NewSummaryCoordinator(repo, pub, NewCapabilities(true, false), time.Second, zap.NewNop())
	assert.Equal(t, SummaryCreated, disabled.AfterCommit(context.Background(), &entities.Post{ID: 1}))
	disabled.Wait()
	assert.Empty(t, pub.published())

	noPublisher := NewSummaryCoordinator(repo, nil, NewCapabilities(true, true), time.Second, zap.NewNop())
	assert.Equal(t, SummaryCreated, noPublisher.AfterCommit(context.Background(), &entities.Post{ID: 1}))
}

func TestAfterCommitPublishFailureIsSwallowed(t *testing.T) {
	db := newTestDB(t)
	pub := &fakePublisher{err: errBrokerDown}
	c := NewSummaryCoordinator(postgres.NewPostRepository(db, zap.NewNop()), pub, NewCapabilities(true, true), time.Second, zap.NewNop())

	assert.Equal(t, SummaryEnqueued, c.AfterCommit(context.Background(), &entities.Post{ID: 1}))
	c.Wait()
	assert.Empty(t, pub.published())
}

func TestApplySummary(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgres.NewPostRepository(db, zap.NewNop())
	c := NewSummaryCoordinator(repo, nil, NewCapabilities(true, true), time.Second, zap.NewNop())

	outcome, err := c.ApplySummary(ctx, 404, "lost")
	require.NoError(t, err)
	assert.Equal(t, SummaryDiscarded, outcome)
	var count int64
	require.NoError(t, db.Model(&entities.Post{}).Count(&count).Error)
	assert.Zero(t, count)

	post := &entities.Post{UserID: 1, Title: "t", Content: "c", Category: "general", PostType: "text"}
	require.NoError(t, repo.CreatePost(ctx, db, post))

	for _, text := range []string{"v1", "v2"} {
		outcome, err = c.ApplySummary(ctx, post.ID, text)
		require.NoError(t, err)
		assert.Equal(t, SummaryApplied, outcome)
	}
	got, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AISummary)
	assert.Equal(t, "v2", *got.AISummary)
}

func TestSummaryStateString(t *testing.T) {
	assert.Equal(t, "created", SummaryCreated.String())
	assert.Equal(t, "enqueued", SummaryEnqueued.String())
	assert.Equal(t, "summarized", SummarySummarized.String())
}

func TestCapabilitiesReportChanges(t *testing.T) {
	caps := NewCapabilities(false, true)
	assert.True(t, caps.SetUploadsEnabled(true))
	assert.False(t, caps.SetUploadsEnabled(true))
	assert.True(t, caps.UploadsEnabled())
	assert.True(t, caps.SetSummariesEnabled(false))
	assert.False(t, caps.SummariesEnabled())
}
