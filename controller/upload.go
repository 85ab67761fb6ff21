package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/content_service/constant"
	"github.com/Xushengqwer/content_service/service"
)

// multipartOverhead 是 multipart 边界与字段头的预留字节
const multipartOverhead = 64 << 10

// UploadController 处理文件上传
type UploadController struct {
	uploadService service.UploadService
	maxSize       int64
}

// NewUploadController maxSize<=0 时使用 constant.DefaultUploadMaxSize，应与上传服务的上限一致
func NewUploadController(uploadService service.UploadService, maxSize int64) *UploadController {
	if maxSize <= 0 {
		maxSize = constant.DefaultUploadMaxSize
	}
	return &UploadController{uploadService: uploadService, maxSize: maxSize}
}

// Upload 上传单个文件
// @Summary      上传文件
// @Description  上传单个图片文件（multipart 字段 file），返回对象键与公开 URL。对象存储不可用时返回 503。
// @Tags         uploads (上传)
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "图片文件"
// @Success      201 {object} vo.UploadResponseWrapper "上传成功"
// @Failure      400 {object} vo.BaseResponseWrapper "缺少文件或类型/大小不合法"
// @Failure      503 {object} vo.BaseResponseWrapper "上传功能暂不可用"
// @Router       /api/v1/content/uploads [post]
func (ctrl *UploadController) Upload(c *gin.Context) {
	limit := ctrl.maxSize + multipartOverhead
	tooLarge := fmt.Sprintf("文件大小超过上限 %d 字节", ctrl.maxSize)
	if c.Request.ContentLength > limit {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, tooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, tooLarge)
			return
		}
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "缺少上传文件字段 file")
		return
	}
	out, err := ctrl.uploadService.Upload(c.Request.Context(), fileHeader)
	if err != nil {
		respondServiceError(c, err, "上传文件")
		return
	}
	respondCreated(c, out, "上传成功")
}

func (ctrl *UploadController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/uploads", ctrl.Upload)
}
