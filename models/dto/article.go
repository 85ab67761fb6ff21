package dto

import "encoding/json"

// CreateArticleRequest 创建文章
type CreateArticleRequest struct {
	GovernmentID uint64          `json:"government_id" binding:"required"`
	Category     *int            `json:"category"`
	AuthorID     *uint64         `json:"author_id"`
	AuthorKind   string          `json:"author_kind" binding:"omitempty,oneof=admin department"` // 默认 admin
	DepartmentID *uint64         `json:"department_id"`
	Title        string          `json:"title" binding:"required,max=500"`
	Summary      string          `json:"summary"`
	Content      json.RawMessage `json:"content" binding:"required"` // 编辑器产出的 JSON 树
	Images       json.RawMessage `json:"images"`                     // JSON 数组，可选
	Thumbnail    *string         `json:"thumbnail" binding:"omitempty,max=1024"`
}

// UpdateArticleRequest 部分更新文章，未提供的字段保持不变
type UpdateArticleRequest struct {
	Category  *int            `json:"category"`
	Title     *string         `json:"title" binding:"omitempty,max=500"`
	Summary   *string         `json:"summary"`
	Content   json.RawMessage `json:"content"`
	Images    json.RawMessage `json:"images"`
	Thumbnail *string         `json:"thumbnail" binding:"omitempty,max=1024"`
}

// ArticleSearchQuery 文章列表/检索，两个条件均可选且可组合
type ArticleSearchQuery struct {
	GovernmentID *uint64 `form:"government_id"`
	Search       string  `form:"search"`
}
