package controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/content_service/models/dto"
	"github.com/Xushengqwer/content_service/ranking"
	"github.com/Xushengqwer/content_service/service"
)

// PostController 定义帖子控制器的结构体
type PostController struct {
	postService service.PostService
	feedService service.FeedService
}

// NewPostController 构造函数，用于创建 PostController 实例
func NewPostController(postService service.PostService, feedService service.FeedService) *PostController {
	return &PostController{
		postService: postService,
		feedService: feedService,
	}
}

// parseCoordinate 无法解析、非有限或超出 [-limit, limit] 的值按 0 处理
func parseCoordinate(raw string, limit float64) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return 0
	}
	return v
}

// GetFeed 获取帖子信息流
// @Summary      获取帖子信息流 (公开)
// @Description  返回最近的帖子及互动计数。提供 lat/lon 时按距离、互动、新鲜度综合排序并返回 rank_score，否则按时间倒序。
// @Tags         posts (帖子)
// @Produce      json
// @Param        lat query number false "纬度"
// @Param        lon query number false "经度"
// @Success      200 {object} vo.FeedResponseWrapper "信息流获取成功"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/content/posts [get]
func (ctrl *PostController) GetFeed(c *gin.Context) {
	viewer := ranking.Coordinate{
		Latitude:  parseCoordinate(c.Query("lat"), 90),
		Longitude: parseCoordinate(c.Query("lon"), 180),
	}
	feed, err := ctrl.feedService.GetFeed(c.Request.Context(), viewer)
	if err != nil {
		respondServiceError(c, err, "获取信息流")
		return
	}
	response.RespondSuccess(c, feed, "信息流获取成功")
}

// CreatePost 创建帖子
// @Summary      创建新帖子
// @Description  创建帖子及其媒体引用。媒体只保存对象键/URL，通常来自 /uploads 的返回值。创建后异步生成 AI 摘要。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreatePostRequest true "帖子内容"
// @Success      201 {object} vo.PostDetailResponseWrapper "帖子创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/content/posts [post]
func (ctrl *PostController) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}
	detail, err := ctrl.postService.CreatePost(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "创建帖子")
		return
	}
	respondCreated(c, detail, "帖子创建成功")
}

// GetPostDetail 获取帖子详情
// @Summary      获取指定ID的帖子详情 (公开)
// @Description  返回帖子、互动计数、媒体与评论（新到旧）。提供 user_id 时附带该用户的点赞/收藏状态。
// @Tags         posts (帖子)
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID"
// @Param        user_id query uint64 false "当前用户 ID"
// @Success      200 {object} vo.PostDetailResponseWrapper "帖子详情检索成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的帖子 ID 格式"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/content/posts/{post_id} [get]
func (ctrl *PostController) GetPostDetail(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	var query dto.PostDetailQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	detail, err := ctrl.postService.GetPostDetail(c.Request.Context(), postID, query.UserID)
	if err != nil {
		respondServiceError(c, err, "检索帖子详情")
		return
	}
	response.RespondSuccess(c, detail, "帖子详情检索成功")
}

// UpdatePost 作者编辑帖子
// @Summary      编辑帖子
// @Description  只有作者本人可以编辑，未提供的字段保持不变。正文变化时重新生成摘要。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID"
// @Param        request body dto.UpdatePostRequest true "要修改的字段"
// @Success      200 {object} vo.PostResponseWrapper "帖子更新成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或非作者本人"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/content/posts/{post_id} [put]
func (ctrl *PostController) UpdatePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}
	post, err := ctrl.postService.UpdatePost(c.Request.Context(), postID, &req)
	if err != nil {
		respondServiceError(c, err, "更新帖子")
		return
	}
	response.RespondSuccess(c, post, "帖子更新成功")
}

// DeletePost 作者删除帖子
// @Summary      删除帖子
// @Description  只有作者本人可以删除，点赞、收藏、评论、媒体引用一并删除。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID"
// @Param        request body dto.DeletePostRequest true "作者 ID"
// @Success      200 {object} vo.BaseResponseWrapper "帖子删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或非作者本人"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/content/posts/{post_id} [delete]
func (ctrl *PostController) DeletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	var req dto.DeletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}
	if err := ctrl.postService.DeletePost(c.Request.Context(), postID, req.UserID); err != nil {
		respondServiceError(c, err, "删除帖子")
		return
	}
	response.RespondSuccess[any](c, nil, "帖子删除成功")
}

// RegisterRoutes 注册 PostController 的路由
func (ctrl *PostController) RegisterRoutes(group *gin.RouterGroup) {
	posts := group.Group("/posts")
	{
		posts.GET("", ctrl.GetFeed)
		posts.POST("", ctrl.CreatePost)
		posts.GET("/:post_id", ctrl.GetPostDetail)
		posts.PUT("/:post_id", ctrl.UpdatePost)
		posts.DELETE("/:post_id", ctrl.DeletePost)
	}
}
