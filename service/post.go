package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/content_service/constant"
	"github.com/Xushengqwer/content_service/models/dto"
	"github.com/Xushengqwer/content_service/models/entities"
	"github.com/Xushengqwer/content_service/models/vo"
	"github.com/Xushengqwer/content_service/repo/postgres"
)

// PostService 定义了处理帖子核心业务逻辑的接口。
type PostService interface {
	// CreatePost 在一个事务中写入帖子及其媒体引用。
	// - 媒体只保存调用方提供的对象键/URL，不检查对象是否存在。
	// - 事务提交后交给 SummaryCoordinator 异步投递摘要任务。
	CreatePost(ctx context.Context, req *dto.CreatePostRequest) (*vo.PostDetailVO, error)

	// UpdatePost 作者编辑帖子，非作者与不存在统一返回 commonerrors.ErrRepoNotFound。
	// - 正文变化时重新投递摘要任务。
	UpdatePost(ctx context.Context, postID uint64, req *dto.UpdatePostRequest) (*vo.PostVO, error)

	// DeletePost 作者删除帖子，点赞、收藏、评论、媒体引用一并删除。
	DeletePost(ctx context.Context, postID, userID uint64) error

	// GetPostDetail 返回帖子详情、媒体与评论（新到旧）。
	// - viewerID 非空时附带该用户的点赞/收藏状态。
	GetPostDetail(ctx context.Context, postID uint64, viewerID *uint64) (*vo.PostDetailVO, error)
}

type postService struct {
	db             *gorm.DB
	postRepo       postgres.PostRepository
	engagementRepo postgres.EngagementRepository
	coordinator    SummaryCoordinator
	logger         *zap.Logger
}

// NewPostService 是 postService 的构造函数。
func NewPostService(db *gorm.DB, postRepo postgres.PostRepository, engagementRepo postgres.EngagementRepository, coordinator SummaryCoordinator, logger *zap.Logger) PostService {
	return &postService{
		db:             db,
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
		coordinator:    coordinator,
		logger:         logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, req *dto.CreatePostRequest) (*vo.PostDetailVO, error) {
	post := &entities.Post{
		UserID:    req.UserID,
		Title:     req.Title,
		Content:   req.Content,
		Category:  defaultString(req.Category, constant.DefaultPostCategory),
		PostType:  defaultString(req.PostType, constant.DefaultPostType),
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	var media []*entities.PostMedia
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.postRepo.CreatePost(ctx, tx, post); err != nil {
			return fmt.Errorf("创建帖子失败: %w", err)
		}

		media = make([]*entities.PostMedia, 0, len(req.Media))
		for i, ref := range req.Media {
			media = append(media, &entities.PostMedia{
				PostID:       post.ID,
				MediaType:    defaultString(ref.MediaType, constant.DefaultMediaType),
				ObjectKey:    ref.ObjectKey,
				MediaURL:     ref.MediaURL,
				DisplayOrder: i,
			})
		}
		if err := s.postRepo.CreateMedia(ctx, tx, media); err != nil {
			return fmt.Errorf("创建帖子媒体失败: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("创建帖子事务失败", zap.Uint64("userID", req.UserID), zap.Error(err))
		return nil, err
	}

	state := s.coordinator.AfterCommit(ctx, post)
	s.logger.Info("帖子创建成功",
		zap.Uint64("postID", post.ID),
		zap.Int("mediaCount", len(media)),
		zap.Stringer("summaryState", state))

	return &vo.PostDetailVO{
		PostVO:   vo.NewPostVO(&entities.PostWithStats{Post: *post}),
		Media:    vo.MapMediaVO(media),
		Comments: []vo.CommentVO{},
	}, nil
}

func (s *postService) UpdatePost(ctx context.Context, postID uint64, req *dto.UpdatePostRequest) (*vo.PostVO, error) {
	current, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if current.UserID != req.UserID {
		s.logger.Warn("非作者尝试编辑帖子", zap.Uint64("postID", postID), zap.Uint64("userID", req.UserID))
		return nil, commonerrors.ErrRepoNotFound
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.PostType != nil {
		fields["post_type"] = *req.PostType
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}

	if err := s.postRepo.UpdateOwnedPost(ctx, s.db, postID, req.UserID, fields); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.GetPostWithStats(ctx, postID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil && *req.Content != current.Content {
		state := s.coordinator.AfterCommit(ctx, &updated.Post)
		s.logger.Info("帖子正文已修改，重新投递摘要任务", zap.Uint64("postID", postID), zap.Stringer("summaryState", state))
	}

	postVO := vo.NewPostVO(updated)
	return &postVO, nil
}

func (s *postService) DeletePost(ctx context.Context, postID, userID uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.postRepo.DeleteOwnedPost(ctx, tx, postID, userID)
	})
	if err != nil {
		if !errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Error("删除帖子事务失败", zap.Uint64("postID", postID), zap.Error(err))
		}
		return err
	}
	s.logger.Info("帖子及其关联数据已删除", zap.Uint64("postID", postID), zap.Uint64("userID", userID))
	return nil
}

func (s *postService) GetPostDetail(ctx context.Context, postID uint64, viewerID *uint64) (*vo.PostDetailVO, error) {
	post, err := s.postRepo.GetPostWithStats(ctx, postID)
	if err != nil {
		return nil, err
	}

	media, err := s.postRepo.ListMedia(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("获取帖子媒体失败: %w", err)
	}
	comments, err := s.engagementRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("获取帖子评论失败: %w", err)
	}

	detail := &vo.PostDetailVO{
		PostVO:   vo.NewPostVO(post),
		Media:    vo.MapMediaVO(media),
		Comments: vo.MapCommentVO(comments),
	}

	if viewerID != nil {
		liked, err := s.engagementRepo.HasLiked(ctx, *viewerID, postID)
		if err != nil {
			return nil, fmt.Errorf("获取点赞状态失败: %w", err)
		}
		bookmarked, err := s.engagementRepo.HasBookmarked(ctx, *viewerID, postID)
		if err != nil {
			return nil, fmt.Errorf("获取收藏状态失败: %w", err)
		}
		detail.UserLiked = &liked
		detail.UserBookmarked = &bookmarked
	}
	return detail, nil
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
