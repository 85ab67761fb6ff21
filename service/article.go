package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Xushengqwer/content_service/constant"
	"github.com/Xushengqwer/content_service/models/dto"
	"github.com/Xushengqwer/content_service/models/entities"
	"github.com/Xushengqwer/content_service/models/vo"
	"github.com/Xushengqwer/content_service/myErrors"
	"github.com/Xushengqwer/content_service/repo/postgres"
	"github.com/Xushengqwer/content_service/repo/redis"
)

// ArticleService 管理政府/部门文章及其检索。
type ArticleService interface {
	CreateArticle(ctx context.Context, req *dto.CreateArticleRequest) (*vo.ArticleVO, error)

	// GetArticle 优先读缓存，未命中回源数据库后回填。
	GetArticle(ctx context.Context, id uint64) (*vo.ArticleVO, error)

	// UpdateArticle 部分更新：未提供（或为 null）的字段保持原值。
	// 检索表示与文章字段在同一事务内更新，更新返回后立即可被新文本检索到。
	UpdateArticle(ctx context.Context, id uint64, req *dto.UpdateArticleRequest) (*vo.ArticleVO, error)

	DeleteArticle(ctx context.Context, id uint64) error

	// SearchArticles 按 government_id 与全文条件检索，两者都是可选的。
	SearchArticles(ctx context.Context, query *dto.ArticleSearchQuery) ([]vo.ArticleVO, error)
}

type articleService struct {
	articleRepo postgres.ArticleRepository
	cache       redis.ArticleCache // 可以为 nil，表示不使用缓存
	logger      *zap.Logger
}

func NewArticleService(articleRepo postgres.ArticleRepository, cache redis.ArticleCache, logger *zap.Logger) ArticleService {
	return &articleService{articleRepo: articleRepo, cache: cache, logger: logger}
}

// absentJSON 字段缺省或显式 null 都视为未提供
func absentJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func validateContent(raw json.RawMessage) error {
	if absentJSON(raw) {
		return myErrors.NewValidationError("content", "不能为空")
	}
	if !json.Valid(raw) {
		return myErrors.NewValidationError("content", "不是合法的 JSON")
	}
	return nil
}

func validateImages(raw json.RawMessage) error {
	var images []json.RawMessage
	if err := json.Unmarshal(raw, &images); err != nil {
		return myErrors.NewValidationError("images", "必须是 JSON 数组")
	}
	return nil
}

func (s *articleService) CreateArticle(ctx context.Context, req *dto.CreateArticleRequest) (*vo.ArticleVO, error) {
	if err := validateContent(req.Content); err != nil {
		return nil, err
	}
	images := datatypes.JSON("[]")
	if !absentJSON(req.Images) {
		if err := validateImages(req.Images); err != nil {
			return nil, err
		}
		images = datatypes.JSON(req.Images)
	}

	authorKind := req.AuthorKind
	if authorKind == "" {
		authorKind = constant.AuthorKindAdmin
	}

	article := &entities.Article{
		GovernmentID: req.GovernmentID,
		Category:     req.Category,
		AuthorID:     req.AuthorID,
		AuthorKind:   authorKind,
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
		Summary:      req.Summary,
		Content:      datatypes.JSON(req.Content),
		Images:       images,
		Thumbnail:    req.Thumbnail,
	}
	if err := s.articleRepo.CreateArticle(ctx, article); err != nil {
		return nil, err
	}
	s.logger.Info("文章创建成功", zap.Uint64("articleID", article.ID), zap.Uint64("governmentID", article.GovernmentID))

	out := vo.NewArticleVO(article)
	return &out, nil
}

func (s *articleService) GetArticle(ctx context.Context, id uint64) (*vo.ArticleVO, error) {
	if s.cache != nil {
		cached, err := s.cache.GetArticle(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, myErrors.ErrCacheMiss) {
			s.logger.Warn("读取文章缓存失败，回源数据库", zap.Uint64("articleID", id), zap.Error(err))
		}
	}

	// generation 必须在回源之前读取
	var gen int64
	fill := false
	if s.cache != nil {
		g, err := s.cache.Generation(ctx, id)
		if err != nil {
			s.logger.Warn("读取文章缓存 generation 失败，本次不回填", zap.Uint64("articleID", id), zap.Error(err))
		} else {
			gen, fill = g, true
		}
	}

	article, err := s.articleRepo.GetArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := vo.NewArticleVO(article)

	if fill {
		if _, err := s.cache.SetArticle(ctx, &out, gen); err != nil {
			s.logger.Warn("回填文章缓存失败", zap.Uint64("articleID", id), zap.Error(err))
		}
	}
	return &out, nil
}

func (s *articleService) UpdateArticle(ctx context.Context, id uint64, req *dto.UpdateArticleRequest) (*vo.ArticleVO, error) {
	if !absentJSON(req.Content) {
		if err := validateContent(req.Content); err != nil {
			return nil, err
		}
	}
	if !absentJSON(req.Images) {
		if err := validateImages(req.Images); err != nil {
			return nil, err
		}
	}

	updated, err := s.articleRepo.UpdateArticle(ctx, id, func(a *entities.Article) error {
		if req.Category != nil {
			a.Category = req.Category
		}
		if req.Title != nil {
			if strings.TrimSpace(*req.Title) == "" {
				return myErrors.NewValidationError("title", "不能为空")
			}
			a.Title = *req.Title
		}
		if req.Summary != nil {
			a.Summary = *req.Summary
		}
		if !absentJSON(req.Content) {
			a.Content = datatypes.JSON(req.Content)
		}
		if !absentJSON(req.Images) {
			a.Images = datatypes.JSON(req.Images)
		}
		if req.Thumbnail != nil {
			a.Thumbnail = req.Thumbnail
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	out := vo.NewArticleVO(updated)
	return &out, nil
}

func (s *articleService) DeleteArticle(ctx context.Context, id uint64) error {
	if err := s.articleRepo.DeleteArticle(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.logger.Info("文章已删除", zap.Uint64("articleID", id))
	return nil
}

func (s *articleService) SearchArticles(ctx context.Context, query *dto.ArticleSearchQuery) ([]vo.ArticleVO, error) {
	articles, err := s.articleRepo.SearchArticles(ctx, postgres.ArticleSearch{
		GovernmentID: query.GovernmentID,
		Query:        query.Search,
	})
	if err != nil {
		return nil, err
	}
	return vo.MapArticleVO(articles), nil
}

// invalidate 缓存失效失败只记录日志，数据库已是最新
func (s *articleService) invalidate(ctx context.Context, id uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateArticle(ctx, id); err != nil {
		s.logger.Warn("文章缓存失效失败", zap.Uint64("articleID", id), zap.Error(err))
	}
}
