package controller

import (
	"context"
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/content_service/models/dto"
	"github.com/Xushengqwer/content_service/models/vo"
	"github.com/Xushengqwer/content_service/service"
)

// EngagementController 处理点赞、收藏与评论
type EngagementController struct {
	engagementService service.EngagementService
}

func NewEngagementController(engagementService service.EngagementService) *EngagementController {
	return &EngagementController{engagementService: engagementService}
}

type engagementOp func(ctx context.Context, req *dto.EngagementRequest) (*vo.EngagementAckVO, error)

func (ctrl *EngagementController) handle(op engagementOp, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.EngagementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
			return
		}
		ack, err := op(c.Request.Context(), &req)
		if err != nil {
			respondServiceError(c, err, action)
			return
		}
		response.RespondSuccess(c, ack, action+"成功")
	}
}

// Like 点赞
// @Summary      点赞帖子
// @Description  幂等操作，重复点赞返回相同结果。
// @Tags         engagement (互动)
// @Accept       json
// @Produce      json
// @Param        request body dto.EngagementRequest true "用户与帖子"
// @Success      200 {object} vo.EngagementAckResponseWrapper "点赞成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/content/likes [post]
func (ctrl *EngagementController) Like(c *gin.Context) {
	ctrl.handle(ctrl.engagementService.Like, "点赞")(c)
}

// Unlike 取消点赞
// @Summary      取消点赞
// @Tags         engagement (互动)
// @Accept       json
// @Produce      json
// @Param        request body dto.EngagementRequest true "用户与帖子"
// @Success      200 {object} vo.EngagementAckResponseWrapper "取消点赞成功"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/content/likes [delete]
func (ctrl *EngagementController) Unlike(c *gin.Context) {
	ctrl.handle(ctrl.engagementService.Unlike, "取消点赞")(c)
}

// Bookmark 收藏
// @Summary      收藏帖子
// @Tags         engagement (互动)
// @Accept       json
// @Produce      json
// @Param        request body dto.EngagementRequest true "用户与帖子"
// @Success      200 {object} vo.EngagementAckResponseWrapper "收藏成功"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/content/bookmarks [post]
func (ctrl *EngagementController) Bookmark(c *gin.Context) {
	ctrl.handle(ctrl.engagementService.Bookmark, "收藏")(c)
}

// Unbookmark 取消收藏
// @Summary      取消收藏
// @Tags         engagement (互动)
// @Accept       json
// @Produce      json
// @Param        request body dto.EngagementRequest true "用户与帖子"
// @Success      200 {object} vo.EngagementAckResponseWrapper "取消收藏成功"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/content/bookmarks [delete]
func (ctrl *EngagementController) Unbookmark(c *gin.Context) {
	ctrl.handle(ctrl.engagementService.Unbookmark, "取消收藏")(c)
}

// AddComment 发表评论
// @Summary      发表评论
// @Description  is_official 为 true 时表示部门官方回复。
// @Tags         engagement (互动)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCommentRequest true "评论内容"
// @Success      201 {object} vo.CommentResponseWrapper "评论成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/content/comments [post]
func (ctrl *EngagementController) AddComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}
	comment, err := ctrl.engagementService.AddComment(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "发表评论")
		return
	}
	respondCreated(c, comment, "评论成功")
}

// ListComments 获取帖子评论
// @Summary      获取帖子评论 (新到旧)
// @Tags         engagement (互动)
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID"
// @Success      200 {object} vo.CommentListResponseWrapper "评论获取成功"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/v1/content/comments/{post_id} [get]
func (ctrl *EngagementController) ListComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	comments, err := ctrl.engagementService.ListComments(c.Request.Context(), postID)
	if err != nil {
		respondServiceError(c, err, "获取评论")
		return
	}
	response.RespondSuccess(c, comments, "评论获取成功")
}

func (ctrl *EngagementController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/likes", ctrl.Like)
	group.DELETE("/likes", ctrl.Unlike)
	group.POST("/bookmarks", ctrl.Bookmark)
	group.DELETE("/bookmarks", ctrl.Unbookmark)
	group.POST("/comments", ctrl.AddComment)
	group.GET("/comments/:post_id", ctrl.ListComments)
}
