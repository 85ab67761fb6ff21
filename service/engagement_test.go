package service

import (
	"context"
	"testing"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/content_service/models/dto"
	"github.com/Xushengqwer/content_service/models/entities"
	"github.com/Xushengqwer/content_service/repo/postgres"
)

func newEngagementService(t *testing.T) (EngagementService, *entities.Post) {
	t.Helper()
	db := newTestDB(t)
	post := insertPost(t, db, "p", nil, nil, time.Now())
	svc := NewEngagementService(
		postgres.NewPostRepository(db, zap.NewNop()),
		postgres.NewEngagementRepository(db, zap.NewNop()),
		zap.NewNop(),
	)
	return svc, post
}

func TestLikeIsIdempotent(t *testing.T) {
	svc, post := newEngagementService(t)
	ctx := context.Background()
	req := &dto.EngagementRequest{UserID: 4, PostID: post.ID}

	first, err := svc.Like(ctx, req)
	require.NoError(t, err)
	second, err := svc.Like(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, ActionLiked, first.Action)

	ack, err := svc.Unlike(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, ActionUnliked, ack.Action)

	ack, err = svc.Bookmark(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, ActionBookmarked, ack.Action)
	ack, err = svc.Unbookmark(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, ActionUnbookmarked, ack.Action)
}

func TestEngagementOnMissingPost(t *testing.T) {
	svc, _ := newEngagementService(t)
	ctx := context.Background()
	req := &dto.EngagementRequest{UserID: 1, PostID: 999}

	_, err := svc.Like(ctx, req)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	_, err = svc.Bookmark(ctx, req)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	_, err = svc.AddComment(ctx, &dto.CreateCommentRequest{UserID: 1, PostID: 999, Content: "x"})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
	_, err = svc.ListComments(ctx, 999)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestAddAndListComments(t *testing.T) {
	svc, post := newEngagementService(t)
	ctx := context.Background()
	dept := "Sanitation"

	comment, err := svc.AddComment(ctx, &dto.CreateCommentRequest{
		UserID: 2, PostID: post.ID, Content: "We are on it", IsOfficial: true, DepartmentName: &dept,
	})
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.True(t, comment.IsOfficial)

	comments, err := svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "We are on it", comments[0].Content)
}

// deletingPostRepo 在存在性检查通过后立即删除帖子，模拟与删帖并发
type deletingPostRepo struct {
	postgres.PostRepository
	db *gorm.DB
}

func (r *deletingPostRepo) GetPostByID(ctx context.Context, id uint64) (*entities.Post, error) {
	post, err := r.PostRepository.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&entities.Post{}, id).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func TestEngagementOnPostDeletedAfterCheckIsNotFound(t *testing.T) {
	db := newForeignKeyTestDB(t)
	ctx := context.Background()
	svc := NewEngagementService(
		&deletingPostRepo{PostRepository: postgres.NewPostRepository(db, zap.NewNop()), db: db},
		postgres.NewEngagementRepository(db, zap.NewNop()),
		zap.NewNop(),
	)

	post := insertPost(t, db, "like", nil, nil, time.Now())
	_, err := svc.Like(ctx, &dto.EngagementRequest{UserID: 1, PostID: post.ID})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	post = insertPost(t, db, "bookmark", nil, nil, time.Now())
	_, err = svc.Bookmark(ctx, &dto.EngagementRequest{UserID: 1, PostID: post.ID})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	post = insertPost(t, db, "comment", nil, nil, time.Now())
	_, err = svc.AddComment(ctx, &dto.CreateCommentRequest{UserID: 1, PostID: post.ID, Content: "late"})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	var likes, comments int64
	require.NoError(t, db.Model(&entities.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&entities.Comment{}).Count(&comments).Error)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
}
