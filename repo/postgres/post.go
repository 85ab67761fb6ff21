package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/Xushengqwer/content_service/models/entities"
)

// primary 把查询固定到主库。
// 写后立即读取的路径 (详情、评论、文章、缓存回填) 都走主库，只有 feed 列表走从库。
func primary(db *gorm.DB) *gorm.DB {
	return db.Clauses(dbresolver.Write)
}

// PostRepository 定义了帖子数据在 PostgreSQL 中的持久化操作接口。
// 需要参与事务的方法显式接收 db 参数，服务层传入事务对象 tx。
type PostRepository interface {
	// CreatePost 持久化一个新的帖子记录，成功后 post.ID 被回填。
	CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error

	// CreateMedia 批量写入帖子的媒体引用，空切片直接返回。
	CreateMedia(ctx context.Context, db *gorm.DB, media []*entities.PostMedia) error

	// UpdateOwnedPost 更新帖子字段，只有 (postID, userID) 同时匹配才生效。
	// - 未找到或非作者统一返回 commonerrors.ErrRepoNotFound。
	// - 总是更新 updated_at。
	UpdateOwnedPost(ctx context.Context, db *gorm.DB, postID, userID uint64, fields map[string]interface{}) error

	// GetPostByID 根据 ID 获取帖子，不存在返回 commonerrors.ErrRepoNotFound。
	GetPostByID(ctx context.Context, id uint64) (*entities.Post, error)

	// GetPostWithStats 获取单个帖子及其聚合互动计数。
	GetPostWithStats(ctx context.Context, id uint64) (*entities.PostWithStats, error)

	// ListRecentWithStats 按 created_at DESC, id DESC 返回最近的 limit 条帖子及互动计数。
	ListRecentWithStats(ctx context.Context, limit int) ([]*entities.PostWithStats, error)

	// ListMedia 按 display_order 返回帖子的媒体引用。
	ListMedia(ctx context.Context, postID uint64) ([]*entities.PostMedia, error)

	// DeleteOwnedPost 删除帖子及其点赞、收藏、评论、媒体。
	// - 必须在事务中调用；归属不匹配时返回 commonerrors.ErrRepoNotFound，不区分“不存在”与“非作者”。
	DeleteOwnedPost(ctx context.Context, tx *gorm.DB, postID, userID uint64) error

	// UpdateSummary 以单条 UPDATE 写入 AI 摘要，返回受影响行数；0 表示帖子不存在。
	UpdateSummary(ctx context.Context, postID uint64, summary string, at time.Time) (int64, error)
}

type postRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPostRepository 是 postRepository 的构造函数。
func NewPostRepository(db *gorm.DB, logger *zap.Logger) PostRepository {
	return &postRepository{db: db, logger: logger}
}

func (r *postRepository) CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error {
	return db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) CreateMedia(ctx context.Context, db *gorm.DB, media []*entities.PostMedia) error {
	if len(media) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&media).Error
}

func (r *postRepository) UpdateOwnedPost(ctx context.Context, db *gorm.DB, postID, userID uint64, fields map[string]interface{}) error {
	updateMap := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updateMap[k] = v
	}
	updateMap["updated_at"] = time.Now()

	result := db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ? AND user_id = ?", postID, userID).
		Updates(updateMap)
	if result.Error != nil {
		r.logger.Error("更新帖子数据库操作失败", zap.Error(result.Error), zap.Uint64("postID", postID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新帖子但未找到记录或非作者本人",
			zap.Uint64("postID", postID),
			zap.Uint64("userID", userID),
		)
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *postRepository) GetPostByID(ctx context.Context, id uint64) (*entities.Post, error) {
	var post entities.Post
	err := primary(r.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取帖子数据库查询失败", zap.Uint64("postID", id), zap.Error(err))
		return nil, err
	}
	return &post, nil
}

// withStats 构造带互动计数的查询：三张关系表各自按 post_id 分组计数后 LEFT JOIN。
func (r *postRepository) withStats(ctx context.Context) *gorm.DB {
	likes := r.db.Model(&entities.Like{}).Select("post_id, COUNT(*) AS cnt").Group("post_id")
	bookmarks := r.db.Model(&entities.Bookmark{}).Select("post_id, COUNT(*) AS cnt").Group("post_id")
	comments := r.db.Model(&entities.Comment{}).Select("post_id, COUNT(*) AS cnt").Group("post_id")

	return r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Select("posts.*, " +
			"COALESCE(lc.cnt, 0) AS like_count, " +
			"COALESCE(bc.cnt, 0) AS bookmark_count, " +
			"COALESCE(cc.cnt, 0) AS comment_count").
		Joins("LEFT JOIN (?) AS lc ON lc.post_id = posts.id", likes).
		Joins("LEFT JOIN (?) AS bc ON bc.post_id = posts.id", bookmarks).
		Joins("LEFT JOIN (?) AS cc ON cc.post_id = posts.id", comments)
}

func (r *postRepository) GetPostWithStats(ctx context.Context, id uint64) (*entities.PostWithStats, error) {
	var rows []*entities.PostWithStats
	if err := primary(r.withStats(ctx)).Where("posts.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		r.logger.Error("获取帖子统计失败", zap.Uint64("postID", id), zap.Error(err))
		return nil, err
	}
	if len(rows) == 0 {
		return nil, commonerrors.ErrRepoNotFound
	}
	return rows[0], nil
}

func (r *postRepository) ListRecentWithStats(ctx context.Context, limit int) ([]*entities.PostWithStats, error) {
	rows := make([]*entities.PostWithStats, 0, limit)
	// feed 允许读取从库
	err := r.withStats(ctx).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		r.logger.Error("获取最近帖子列表失败", zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (r *postRepository) ListMedia(ctx context.Context, postID uint64) ([]*entities.PostMedia, error) {
	var media []*entities.PostMedia
	err := primary(r.db.WithContext(ctx)).
		Where("post_id = ?", postID).
		Order("display_order ASC").
		Order("id ASC").
		Find(&media).Error
	return media, err
}

func (r *postRepository) DeleteOwnedPost(ctx context.Context, tx *gorm.DB, postID, userID uint64) error {
	tx = tx.WithContext(ctx)

	var owned int64
	if err := tx.Model(&entities.Post{}).Where("id = ? AND user_id = ?", postID, userID).Count(&owned).Error; err != nil {
		return err
	}
	if owned == 0 {
		return commonerrors.ErrRepoNotFound
	}

	// 子表显式删除，不依赖外键级联是否启用
	children := []interface{}{&entities.Like{}, &entities.Bookmark{}, &entities.Comment{}, &entities.PostMedia{}}
	for _, child := range children {
		if err := tx.Where("post_id = ?", postID).Delete(child).Error; err != nil {
			return err
		}
	}

	result := tx.Where("id = ? AND user_id = ?", postID, userID).Delete(&entities.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *postRepository) UpdateSummary(ctx context.Context, postID uint64, summary string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"ai_summary": summary,
			"updated_at": at,
		})
	return result.RowsAffected, result.Error
}
