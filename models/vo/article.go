package vo

import (
	"encoding/json"
	"time"

	"github.com/Xushengqwer/content_service/models/entities"
)

// ArticleVO 文章的对外表示，不包含派生检索列
type ArticleVO struct {
	ID           uint64          `json:"id"`
	GovernmentID uint64          `json:"government_id"`
	Category     *int            `json:"category"`
	AuthorID     *uint64         `json:"author_id"`
	AuthorKind   string          `json:"author_kind"`
	DepartmentID *uint64         `json:"department_id"`
	Title        string          `json:"title"`
	Summary      string          `json:"summary"`
	Content      json.RawMessage `json:"content" swaggertype:"object"`
	Images       json.RawMessage `json:"images" swaggertype:"array,object"`
	Thumbnail    *string         `json:"thumbnail"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// UploadVO 上传成功后返回的对象引用
type UploadVO struct {
	ObjectKey   string `json:"object_key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// HealthVO 存活检查
type HealthVO struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func NewArticleVO(a *entities.Article) ArticleVO {
	images := json.RawMessage(a.Images)
	if len(images) == 0 {
		images = json.RawMessage("[]")
	}
	return ArticleVO{
		ID:           a.ID,
		GovernmentID: a.GovernmentID,
		Category:     a.Category,
		AuthorID:     a.AuthorID,
		AuthorKind:   a.AuthorKind,
		DepartmentID: a.DepartmentID,
		Title:        a.Title,
		Summary:      a.Summary,
		Content:      json.RawMessage(a.Content),
		Images:       images,
		Thumbnail:    a.Thumbnail,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func MapArticleVO(articles []*entities.Article) []ArticleVO {
	out := make([]ArticleVO, 0, len(articles))
	for _, a := range articles {
		if a == nil {
			continue
		}
		out = append(out, NewArticleVO(a))
	}
	return out
}
