package vo

// --- 用于成功响应且包含具体 Data 的包装器 (仅供 swag 生成文档) ---

// FeedResponseWrapper 对应 response.APIResponse[[]vo.PostVO]
type FeedResponseWrapper struct {
	Code    int      `json:"code" example:"0"`
	Message string   `json:"message,omitempty" example:"success"`
	Data    []PostVO `json:"data"`
}

// PostResponseWrapper 对应 response.APIResponse[vo.PostVO]
type PostResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message,omitempty" example:"success"`
	Data    PostVO `json:"data"`
}

// PostDetailResponseWrapper 对应 response.APIResponse[vo.PostDetailVO]
type PostDetailResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    PostDetailVO `json:"data"`
}

// EngagementAckResponseWrapper 对应 response.APIResponse[vo.EngagementAckVO]
type EngagementAckResponseWrapper struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    EngagementAckVO `json:"data"`
}

// CommentResponseWrapper 对应 response.APIResponse[vo.CommentVO]
type CommentResponseWrapper struct {
	Code    int       `json:"code" example:"0"`
	Message string    `json:"message,omitempty" example:"success"`
	Data    CommentVO `json:"data"`
}

// CommentListResponseWrapper 对应 response.APIResponse[[]vo.CommentVO]
type CommentListResponseWrapper struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message,omitempty" example:"success"`
	Data    []CommentVO `json:"data"`
}

// ArticleResponseWrapper 对应 response.APIResponse[vo.ArticleVO]
type ArticleResponseWrapper struct {
	Code    int       `json:"code" example:"0"`
	Message string    `json:"message,omitempty" example:"success"`
	Data    ArticleVO `json:"data"`
}

// ArticleListResponseWrapper 对应 response.APIResponse[[]vo.ArticleVO]
type ArticleListResponseWrapper struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message,omitempty" example:"success"`
	Data    []ArticleVO `json:"data"`
}

// UploadResponseWrapper 对应 response.APIResponse[vo.UploadVO]
type UploadResponseWrapper struct {
	Code    int      `json:"code" example:"0"`
	Message string   `json:"message,omitempty" example:"success"`
	Data    UploadVO `json:"data"`
}

// --- 用于错误响应 或 简单成功响应（只有 Code 和 Message） ---

// BaseResponseWrapper 代表一个只包含 Code 和 Message 的响应。
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message" example:"success"`
}
