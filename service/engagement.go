package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/models/dto"
	"github.com/Xushengqwer/content_service/models/entities"
	"github.com/Xushengqwer/content_service/models/vo"
	"github.com/Xushengqwer/content_service/repo/postgres"
)

const (
	ActionLiked        = "liked"
	ActionUnliked      = "unliked"
	ActionBookmarked   = "bookmarked"
	ActionUnbookmarked = "unbookmarked"
)

// EngagementService 处理点赞、收藏与评论。
// 点赞/收藏是幂等的：重复操作返回相同的确认，关系最多存在一条。
type EngagementService interface {
	Like(ctx context.Context, req *dto.EngagementRequest) (*vo.EngagementAckVO, error)
	Unlike(ctx context.Context, req *dto.EngagementRequest) (*vo.EngagementAckVO, error)
	Bookmark(ctx context.Context, req *dto.EngagementRequest) (*vo.EngagementAckVO, error)
	Unbookmark(ctx context.Context, req *dto.EngagementRequest) (*vo.EngagementAckVO, error)

	// AddComment 帖子不存在时返回 commonerrors.ErrRepoNotFound
	AddComment(ctx context.Context, req *dto.CreateCommentRequest) (*vo.CommentVO, error)
	// ListComments 帖子不存在时返回 commonerrors.ErrRepoNotFound
	ListComments(ctx context.Context, postID uint64) ([]vo.CommentVO, error)
}

type engagementService struct {
	postRepo       postgres.PostRepository
	engagementRepo postgres.EngagementRepository
	logger         *zap.Logger
}

func NewEngagementService(postRepo postgres.PostRepository, engagementRepo postgres.EngagementRepository, logger *zap.Logger) EngagementService {
	return &engagementService{postRepo: postRepo, engagementRepo: engagementRepo, logger: logger}
}

// ensurePost 确认帖子存在；检查之后帖子被并发删除时，由写入处的外键冲突返回 ErrRepoNotFound
func (s *engagementService) ensurePost(ctx context.Context, postID uint64) error {
	_, err := s.postRepo.GetPostByID(ctx, postID)
	return err
}

func (s *engagementService) apply(ctx context.Context, req *dto.EngagementRequest, action string, op func(ctx context.Context, userID, postID uint64) error) (*vo.EngagementAckVO, error) {
	if err := s.ensurePost(ctx, req.PostID); err != nil {
		return nil, err
	}
	if err := op(ctx, req.UserID, req.PostID); err != nil {
		return nil, err
	}
	s.logger.Debug("互动操作完成", zap.String("action", action), zap.Uint64("userID", req.UserID), zap.Uint64("postID", req.PostID))
	return &vo.EngagementAckVO{Action: action, UserID: req.UserID, PostID: req.PostID}, nil
}

func (s *engagementService) Like(ctx context.Context, req *dto.EngagementRequest) (*vo.EngagementAckVO, error) {
	return s.apply(ctx, req, ActionLiked, s.engagementRepo.Like)
}

func (s *engagementService) Unlike(ctx context.Context, req *dto.EngagementRequest) (*vo.EngagementAckVO, error) {
	return s.apply(ctx, req, ActionUnliked, s.engagementRepo.Unlike)
}

func (s *engagementService) Bookmark(ctx context.Context, req *dto.EngagementRequest) (*vo.EngagementAckVO, error) {
	return s.apply(ctx, req, ActionBookmarked, s.engagementRepo.Bookmark)
}

func (s *engagementService) Unbookmark(ctx context.Context, req *dto.EngagementRequest) (*vo.EngagementAckVO, error) {
	return s.apply(ctx, req, ActionUnbookmarked, s.engagementRepo.Unbookmark)
}

func (s *engagementService) AddComment(ctx context.Context, req *dto.CreateCommentRequest) (*vo.CommentVO, error) {
	if err := s.ensurePost(ctx, req.PostID); err != nil {
		return nil, err
	}
	comment := &entities.Comment{
		UserID:         req.UserID,
		PostID:         req.PostID,
		Content:        req.Content,
		IsOfficial:     req.IsOfficial,
		DepartmentID:   req.DepartmentID,
		DepartmentName: req.DepartmentName,
	}
	if err := s.engagementRepo.CreateComment(ctx, comment); err != nil {
		s.logger.Error("发表评论失败", zap.Uint64("postID", req.PostID), zap.Error(err))
		return nil, err
	}
	out := vo.NewCommentVO(comment)
	return &out, nil
}

func (s *engagementService) ListComments(ctx context.Context, postID uint64) ([]vo.CommentVO, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.engagementRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	return vo.MapCommentVO(comments), nil
}
