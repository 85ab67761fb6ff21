package dto

// MediaRef 是调用方在创建帖子时附带的媒体引用，通常来自 /uploads 的返回值
type MediaRef struct {
	MediaType string `json:"media_type" binding:"omitempty,max=20"`  // 默认 image
	ObjectKey string `json:"object_key" binding:"omitempty,max=512"` // 可选，对象存储中的键
	MediaURL  string `json:"media_url" binding:"required,max=1024"`  // 必填，公开访问地址
}

// CreatePostRequest 定义了创建帖子的请求数据结构
type CreatePostRequest struct {
	UserID    uint64     `json:"user_id" binding:"required"`
	Title     string     `json:"title" binding:"required,max=255"`
	Content   string     `json:"content" binding:"required"`
	Category  string     `json:"category" binding:"omitempty,max=50"`  // 默认 general
	PostType  string     `json:"post_type" binding:"omitempty,max=30"` // 默认 text
	Location  string     `json:"location" binding:"omitempty,max=255"`
	Latitude  *float64   `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64   `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Media     []MediaRef `json:"media" binding:"omitempty,dive"`
}

// UpdatePostRequest 作者编辑帖子，nil 字段保持不变
type UpdatePostRequest struct {
	UserID    uint64   `json:"user_id" binding:"required"` // 必须与帖子作者一致
	Title     *string  `json:"title" binding:"omitempty,max=255"`
	Content   *string  `json:"content"`
	Category  *string  `json:"category" binding:"omitempty,max=50"`
	PostType  *string  `json:"post_type" binding:"omitempty,max=30"`
	Location  *string  `json:"location" binding:"omitempty,max=255"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
}

// DeletePostRequest 删除帖子时需要提供作者 ID 做归属校验
type DeletePostRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

// PostDetailQuery 帖子详情的可选查询参数
type PostDetailQuery struct {
	UserID *uint64 `form:"user_id"` // 提供时返回该用户的点赞/收藏状态
}
