package postgres

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/content_service/models/entities"
)

// EngagementRepository 负责点赞、收藏、评论三类关系的持久化。
type EngagementRepository interface {
	// Like / Bookmark 依赖 (user_id, post_id) 唯一索引，重复插入是空操作而不是错误。
	// Like / Bookmark / CreateComment 写入时帖子已不存在返回 commonerrors.ErrRepoNotFound，
	// 依赖外键约束与 gorm.Config.TranslateError。
	Like(ctx context.Context, userID, postID uint64) error
	Unlike(ctx context.Context, userID, postID uint64) error
	Bookmark(ctx context.Context, userID, postID uint64) error
	Unbookmark(ctx context.Context, userID, postID uint64) error

	HasLiked(ctx context.Context, userID, postID uint64) (bool, error)
	HasBookmarked(ctx context.Context, userID, postID uint64) (bool, error)

	CreateComment(ctx context.Context, comment *entities.Comment) error
	// ListComments 按创建时间倒序返回帖子评论
	ListComments(ctx context.Context, postID uint64) ([]*entities.Comment, error)
}

type engagementRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewEngagementRepository(db *gorm.DB, logger *zap.Logger) EngagementRepository {
	return &engagementRepository{db: db, logger: logger}
}

var userPostConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
	DoNothing: true,
}

func (r *engagementRepository) Like(ctx context.Context, userID, postID uint64) error {
	like := &entities.Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Clauses(userPostConflict).Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return commonerrors.ErrRepoNotFound
		}
		r.logger.Error("写入点赞失败", zap.Uint64("userID", userID), zap.Uint64("postID", postID), zap.Error(err))
		return err
	}
	return nil
}

func (r *engagementRepository) Unlike(ctx context.Context, userID, postID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&entities.Like{}).Error
}

func (r *engagementRepository) Bookmark(ctx context.Context, userID, postID uint64) error {
	bookmark := &entities.Bookmark{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Clauses(userPostConflict).Create(bookmark).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return commonerrors.ErrRepoNotFound
		}
		r.logger.Error("写入收藏失败", zap.Uint64("userID", userID), zap.Uint64("postID", postID), zap.Error(err))
		return err
	}
	return nil
}

func (r *engagementRepository) Unbookmark(ctx context.Context, userID, postID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&entities.Bookmark{}).Error
}

func (r *engagementRepository) HasLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	return r.exists(ctx, &entities.Like{}, userID, postID)
}

func (r *engagementRepository) HasBookmarked(ctx context.Context, userID, postID uint64) (bool, error) {
	return r.exists(ctx, &entities.Bookmark{}, userID, postID)
}

func (r *engagementRepository) exists(ctx context.Context, model interface{}, userID, postID uint64) (bool, error) {
	var count int64
	err := primary(r.db.WithContext(ctx)).
		Model(model).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) CreateComment(ctx context.Context, comment *entities.Comment) error {
	err := r.db.WithContext(ctx).Create(comment).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return commonerrors.ErrRepoNotFound
	}
	return err
}

func (r *engagementRepository) ListComments(ctx context.Context, postID uint64) ([]*entities.Comment, error) {
	comments := make([]*entities.Comment, 0)
	err := primary(r.db.WithContext(ctx)).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}
