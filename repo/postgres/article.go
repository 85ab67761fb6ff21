package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/Xushengqwer/go-common/commonerrors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/content_service/models/entities"
	"github.com/Xushengqwer/content_service/search"
)

// ArticleSearch 是文章检索条件，两个字段都可选
type ArticleSearch struct {
	GovernmentID *uint64
	Query        string
}

// ArticleRepository 负责文章及其派生检索列的持久化。
// 所有写入都经过 Create/Save，使 Article.BeforeSave 在同一条语句中重算 search_tokens。
type ArticleRepository interface {
	CreateArticle(ctx context.Context, article *entities.Article) error
	GetArticleByID(ctx context.Context, id uint64) (*entities.Article, error)

	// UpdateArticle 在事务中读取文章（PostgreSQL 上加行锁），交给 mutate 修改后整行保存。
	// mutate 返回错误时事务回滚。
	UpdateArticle(ctx context.Context, id uint64, mutate func(*entities.Article) error) (*entities.Article, error)

	DeleteArticle(ctx context.Context, id uint64) error

	// SearchArticles 按 government_id 与全文条件检索，结果按 created_at DESC, id DESC。
	// 查询文本非空但规范化后没有任何词干时返回空结果。
	SearchArticles(ctx context.Context, cond ArticleSearch) ([]*entities.Article, error)
}

type articleRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewArticleRepository(db *gorm.DB, logger *zap.Logger) ArticleRepository {
	return &articleRepository{db: db, logger: logger}
}

func (r *articleRepository) CreateArticle(ctx context.Context, article *entities.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		r.logger.Error("创建文章失败", zap.Uint64("governmentID", article.GovernmentID), zap.Error(err))
		return err
	}
	return nil
}

func (r *articleRepository) GetArticleByID(ctx context.Context, id uint64) (*entities.Article, error) {
	var article entities.Article
	if err := primary(r.db.WithContext(ctx)).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) UpdateArticle(ctx context.Context, id uint64, mutate func(*entities.Article) error) (*entities.Article, error) {
	var updated entities.Article
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.First(&updated, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return commonerrors.ErrRepoNotFound
			}
			return err
		}
		if err := mutate(&updated); err != nil {
			return err
		}
		return tx.Save(&updated).Error
	})
	if err != nil {
		if !errors.Is(err, commonerrors.ErrRepoNotFound) {
			r.logger.Error("更新文章失败", zap.Uint64("articleID", id), zap.Error(err))
		}
		return nil, err
	}
	return &updated, nil
}

func (r *articleRepository) DeleteArticle(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&entities.Article{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *articleRepository) SearchArticles(ctx context.Context, cond ArticleSearch) ([]*entities.Article, error) {
	articles := make([]*entities.Article, 0)

	query := primary(r.db.WithContext(ctx)).Model(&entities.Article{})
	if cond.GovernmentID != nil {
		query = query.Where("government_id = ?", *cond.GovernmentID)
	}
	if strings.TrimSpace(cond.Query) != "" {
		terms := search.QueryTerms(cond.Query)
		if len(terms) == 0 {
			return articles, nil
		}
		for _, term := range terms {
			query = query.Where("search_tokens LIKE ?", search.LikePattern(term))
		}
	}

	err := query.Order("created_at DESC").Order("id DESC").Find(&articles).Error
	if err != nil {
		r.logger.Error("检索文章失败", zap.Any("cond", cond), zap.Error(err))
		return nil, err
	}
	return articles, nil
}
