package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/constant"
	"github.com/Xushengqwer/content_service/models/vo"
	"github.com/Xushengqwer/content_service/ranking"
	"github.com/Xushengqwer/content_service/repo/postgres"
)

// FeedService 提供帖子信息流
type FeedService interface {
	// GetFeed 取最近 candidateWindow 条帖子。
	// - viewer 为原点时按时间倒序返回，不带 rank_score。
	// - 否则按距离/互动/新鲜度综合分稳定排序，分数相同保持时间倒序。
	GetFeed(ctx context.Context, viewer ranking.Coordinate) ([]vo.PostVO, error)
}

type feedService struct {
	postRepo        postgres.PostRepository
	candidateWindow int
	logger          *zap.Logger
	now             func() time.Time
}

func NewFeedService(postRepo postgres.PostRepository, candidateWindow int, logger *zap.Logger) FeedService {
	if candidateWindow <= 0 {
		candidateWindow = constant.DefaultFeedCandidateWindow
	}
	return &feedService{
		postRepo:        postRepo,
		candidateWindow: candidateWindow,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *feedService) GetFeed(ctx context.Context, viewer ranking.Coordinate) ([]vo.PostVO, error) {
	posts, err := s.postRepo.ListRecentWithStats(ctx, s.candidateWindow)
	if err != nil {
		return nil, err
	}

	if viewer.IsOrigin() {
		out := make([]vo.PostVO, 0, len(posts))
		for _, p := range posts {
			out = append(out, vo.NewPostVO(p))
		}
		return out, nil
	}

	signals := make([]ranking.Signals, len(posts))
	for i, p := range posts {
		var loc *ranking.Coordinate
		if p.Latitude != nil && p.Longitude != nil {
			loc = &ranking.Coordinate{Latitude: *p.Latitude, Longitude: *p.Longitude}
		}
		signals[i] = ranking.Signals{
			Location:  loc,
			Likes:     p.LikeCount,
			Comments:  p.CommentCount,
			Bookmarks: p.BookmarkCount,
			CreatedAt: p.CreatedAt,
		}
	}

	ranked := ranking.Rank(signals, viewer, s.now())
	out := make([]vo.PostVO, 0, len(ranked))
	for _, r := range ranked {
		item := vo.NewPostVO(posts[r.Index])
		score := r.Score
		item.RankScore = &score
		out = append(out, item)
	}
	s.logger.Debug("信息流排序完成",
		zap.Int("candidates", len(posts)),
		zap.Float64("lat", viewer.Latitude),
		zap.Float64("lon", viewer.Longitude))
	return out, nil
}
