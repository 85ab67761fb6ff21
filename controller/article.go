package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/content_service/models/dto"
	"github.com/Xushengqwer/content_service/service"
)

// ArticleController 处理政府/部门文章
type ArticleController struct {
	articleService service.ArticleService
}

func NewArticleController(articleService service.ArticleService) *ArticleController {
	return &ArticleController{articleService: articleService}
}

// SearchArticles 文章列表与检索
// @Summary      文章列表/全文检索
// @Description  government_id 与 search 均可选且可组合；search 的每个词都必须命中标题或摘要。按创建时间倒序。
// @Tags         articles (文章)
// @Produce      json
// @Param        government_id query uint64 false "政府 ID"
// @Param        search query string false "检索文本"
// @Success      200 {object} vo.ArticleListResponseWrapper "文章检索成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Router       /api/v1/content/articles [get]
func (ctrl *ArticleController) SearchArticles(c *gin.Context) {
	var query dto.ArticleSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}
	articles, err := ctrl.articleService.SearchArticles(c.Request.Context(), &query)
	if err != nil {
		respondServiceError(c, err, "检索文章")
		return
	}
	response.RespondSuccess(c, articles, "文章检索成功")
}

// GetArticle 获取文章
// @Summary      获取指定ID的文章
// @Tags         articles (文章)
// @Produce      json
// @Param        id path uint64 true "文章 ID"
// @Success      200 {object} vo.ArticleResponseWrapper "文章获取成功"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/v1/content/articles/{id} [get]
func (ctrl *ArticleController) GetArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	article, err := ctrl.articleService.GetArticle(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "获取文章")
		return
	}
	response.RespondSuccess(c, article, "文章获取成功")
}

// CreateArticle 创建文章
// @Summary      创建文章
// @Tags         articles (文章)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateArticleRequest true "文章内容"
// @Success      201 {object} vo.ArticleResponseWrapper "文章创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Router       /api/v1/content/articles [post]
func (ctrl *ArticleController) CreateArticle(c *gin.Context) {
	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}
	article, err := ctrl.articleService.CreateArticle(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "创建文章")
		return
	}
	respondCreated(c, article, "文章创建成功")
}

// UpdateArticle 部分更新文章
// @Summary      更新文章
// @Description  未提供或为 null 的字段保持不变。
// @Tags         articles (文章)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "文章 ID"
// @Param        request body dto.UpdateArticleRequest true "要修改的字段"
// @Success      200 {object} vo.ArticleResponseWrapper "文章更新成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/v1/content/articles/{id} [put]
func (ctrl *ArticleController) UpdateArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}
	article, err := ctrl.articleService.UpdateArticle(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "更新文章")
		return
	}
	response.RespondSuccess(c, article, "文章更新成功")
}

// DeleteArticle 删除文章
// @Summary      删除文章
// @Tags         articles (文章)
// @Produce      json
// @Param        id path uint64 true "文章 ID"
// @Success      200 {object} vo.BaseResponseWrapper "文章删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/v1/content/articles/{id} [delete]
func (ctrl *ArticleController) DeleteArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.articleService.DeleteArticle(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "删除文章")
		return
	}
	response.RespondSuccess[any](c, nil, "文章删除成功")
}

func (ctrl *ArticleController) RegisterRoutes(group *gin.RouterGroup) {
	articles := group.Group("/articles")
	{
		articles.GET("", ctrl.SearchArticles)
		articles.POST("", ctrl.CreateArticle)
		articles.GET("/:id", ctrl.GetArticle)
		articles.PUT("/:id", ctrl.UpdateArticle)
		articles.DELETE("/:id", ctrl.DeleteArticle)
	}
}
