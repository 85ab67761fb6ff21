package dto

// EngagementRequest 点赞/取消点赞/收藏/取消收藏共用
type EngagementRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
	PostID uint64 `json:"post_id" binding:"required"`
}

// CreateCommentRequest 发表评论；IsOfficial 表示部门官方回复
type CreateCommentRequest struct {
	UserID         uint64  `json:"user_id" binding:"required"`
	PostID         uint64  `json:"post_id" binding:"required"`
	Content        string  `json:"content" binding:"required"`
	IsOfficial     bool    `json:"is_official"`
	DepartmentID   *uint64 `json:"department_id"`
	DepartmentName *string `json:"department_name" binding:"omitempty,max=255"`
}
