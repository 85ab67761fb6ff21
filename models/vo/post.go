package vo

import (
	"time"

	"github.com/Xushengqwer/content_service/models/entities"
)

// PostVO 帖子列表项/详情的公共部分
type PostVO struct {
	ID            uint64    `json:"id"`
	UserID        uint64    `json:"user_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	PostType      string    `json:"post_type"`
	Location      string    `json:"location"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	AISummary     *string   `json:"ai_summary"`
	LikeCount     int64     `json:"like_count"`
	BookmarkCount int64     `json:"bookmark_count"`
	CommentCount  int64     `json:"comment_count"`
	RankScore     *float64  `json:"rank_score,omitempty"` // 仅在按位置排序时返回
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MediaVO 帖子媒体引用
type MediaVO struct {
	ID           uint64 `json:"id"`
	MediaType    string `json:"media_type"`
	ObjectKey    string `json:"object_key"`
	MediaURL     string `json:"media_url"`
	DisplayOrder int    `json:"display_order"`
}

// CommentVO 评论
type CommentVO struct {
	ID             uint64    `json:"id"`
	PostID         uint64    `json:"post_id"`
	UserID         uint64    `json:"user_id"`
	Content        string    `json:"content"`
	IsOfficial     bool      `json:"is_official"`
	DepartmentID   *uint64   `json:"department_id"`
	DepartmentName *string   `json:"department_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// PostDetailVO 帖子详情，附带媒体、评论，以及可选的当前用户互动状态
type PostDetailVO struct {
	PostVO
	Media          []MediaVO   `json:"media"`
	Comments       []CommentVO `json:"comments"`
	UserLiked      *bool       `json:"user_liked,omitempty"`
	UserBookmarked *bool       `json:"user_bookmarked,omitempty"`
}

// EngagementAckVO 点赞/收藏类操作的确认，重复操作返回相同结果
type EngagementAckVO struct {
	Action string `json:"action"` // liked | unliked | bookmarked | unbookmarked
	UserID uint64 `json:"user_id"`
	PostID uint64 `json:"post_id"`
}

// NewPostVO 将带统计的帖子实体转换为 VO
func NewPostVO(p *entities.PostWithStats) PostVO {
	return PostVO{
		ID:            p.ID,
		UserID:        p.UserID,
		Title:         p.Title,
		Content:       p.Content,
		Category:      p.Category,
		PostType:      p.PostType,
		Location:      p.Location,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		AISummary:     p.AISummary,
		LikeCount:     p.LikeCount,
		BookmarkCount: p.BookmarkCount,
		CommentCount:  p.CommentCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// MapMediaVO 保持输入顺序，空输入返回空切片而不是 nil，便于前端处理
func MapMediaVO(media []*entities.PostMedia) []MediaVO {
	out := make([]MediaVO, 0, len(media))
	for _, m := range media {
		if m == nil {
			continue
		}
		out = append(out, MediaVO{
			ID:           m.ID,
			MediaType:    m.MediaType,
			ObjectKey:    m.ObjectKey,
			MediaURL:     m.MediaURL,
			DisplayOrder: m.DisplayOrder,
		})
	}
	return out
}

func NewCommentVO(c *entities.Comment) CommentVO {
	return CommentVO{
		ID:             c.ID,
		PostID:         c.PostID,
		UserID:         c.UserID,
		Content:        c.Content,
		IsOfficial:     c.IsOfficial,
		DepartmentID:   c.DepartmentID,
		DepartmentName: c.DepartmentName,
		CreatedAt:      c.CreatedAt,
	}
}

func MapCommentVO(comments []*entities.Comment) []CommentVO {
	out := make([]CommentVO, 0, len(comments))
	for _, c := range comments {
		if c == nil {
			continue
		}
		out = append(out, NewCommentVO(c))
	}
	return out
}
