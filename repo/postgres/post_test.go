package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/content_service/models/entities"
)

func TestListRecentWithStatsAggregatesCounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	posts := NewPostRepository(db, zap.NewNop())
	engagement := NewEngagementRepository(db, zap.NewNop())

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	older := seedPost(t, db, 1, "older", base)
	newer := seedPost(t, db, 2, "newer", base.Add(time.Hour))

	require.NoError(t, engagement.Like(ctx, 10, older.ID))
	require.NoError(t, engagement.Like(ctx, 11, older.ID))
	require.NoError(t, engagement.Bookmark(ctx, 10, older.ID))
	require.NoError(t, engagement.CreateComment(ctx, &entities.Comment{UserID: 12, PostID: older.ID, Content: "hi"}))
	require.NoError(t, engagement.Like(ctx, 10, newer.ID))

	rows, err := posts.ListRecentWithStats(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, int64(1), rows[0].LikeCount)
	assert.Equal(t, int64(0), rows[0].BookmarkCount)
	assert.Equal(t, int64(0), rows[0].CommentCount)

	assert.Equal(t, older.ID, rows[1].ID)
	assert.Equal(t, "older", rows[1].Title)
	assert.Equal(t, int64(2), rows[1].LikeCount)
	assert.Equal(t, int64(1), rows[1].BookmarkCount)
	assert.Equal(t, int64(1), rows[1].CommentCount)
}

func TestListRecentWithStatsRespectsWindow(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db, zap.NewNop())

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedPost(t, db, 1, "p", base.Add(time.Duration(i)*time.Minute))
	}

	rows, err := posts.ListRecentWithStats(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].CreatedAt.After(rows[1].CreatedAt))
	assert.True(t, rows[1].CreatedAt.After(rows[2].CreatedAt))
}

func TestGetPostWithStatsNotFound(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db, zap.NewNop())

	_, err := posts.GetPostWithStats(context.Background(), 999)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestUpdateOwnedPostChecksOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	posts := NewPostRepository(db, zap.NewNop())
	post := seedPost(t, db, 7, "title", time.Now())

	err := posts.UpdateOwnedPost(ctx, db, post.ID, 8, map[string]interface{}{"title": "hijack"})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	require.NoError(t, posts.UpdateOwnedPost(ctx, db, post.ID, 7, map[string]interface{}{"title": "edited"}))
	got, err := posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title)
}

func TestDeleteOwnedPostCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	posts := NewPostRepository(db, zap.NewNop())
	engagement := NewEngagementRepository(db, zap.NewNop())

	post := seedPost(t, db, 1, "doomed", time.Now())
	other := seedPost(t, db, 1, "survivor", time.Now())
	require.NoError(t, posts.CreateMedia(ctx, db, []*entities.PostMedia{
		{PostID: post.ID, MediaType: "image", MediaURL: "http://cdn/a.png", ObjectKey: "uploads/a.png"},
	}))
	require.NoError(t, engagement.Like(ctx, 2, post.ID))
	require.NoError(t, engagement.Like(ctx, 2, other.ID))
	require.NoError(t, engagement.Bookmark(ctx, 2, post.ID))
	require.NoError(t, engagement.CreateComment(ctx, &entities.Comment{UserID: 2, PostID: post.ID, Content: "c"}))

	// 非作者删除视为未找到
	err := db.Transaction(func(tx *gorm.DB) error { return posts.DeleteOwnedPost(ctx, tx, post.ID, 99) })
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error { return posts.DeleteOwnedPost(ctx, tx, post.ID, 1) }))

	_, err = posts.GetPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	for _, model := range []interface{}{&entities.Like{}, &entities.Bookmark{}, &entities.Comment{}, &entities.PostMedia{}} {
		var n int64
		require.NoError(t, db.Model(model).Where("post_id = ?", post.ID).Count(&n).Error)
		assert.Zero(t, n, "%T", model)
	}

	liked, err := engagement.HasLiked(ctx, 2, other.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestUpdateSummaryUnknownPost(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db, zap.NewNop())

	n, err := posts.UpdateSummary(context.Background(), 12345, "text", time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	var count int64
	require.NoError(t, db.Model(&entities.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateSummaryOverwrites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	posts := NewPostRepository(db, zap.NewNop())
	post := seedPost(t, db, 1, "t", time.Now())

	for _, text := range []string{"first", "second"} {
		n, err := posts.UpdateSummary(ctx, post.ID, text, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	}
	got, err := posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AISummary)
	assert.Equal(t, "second", *got.AISummary)
}

func TestListMediaOrdered(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	posts := NewPostRepository(db, zap.NewNop())
	post := seedPost(t, db, 1, "t", time.Now())

	require.NoError(t, posts.CreateMedia(ctx, db, []*entities.PostMedia{
		{PostID: post.ID, MediaType: "image", MediaURL: "b", DisplayOrder: 1},
		{PostID: post.ID, MediaType: "image", MediaURL: "a", DisplayOrder: 0},
	}))
	media, err := posts.ListMedia(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, media, 2)
	assert.Equal(t, "a", media[0].MediaURL)
	assert.Equal(t, "b", media[1].MediaURL)
}
