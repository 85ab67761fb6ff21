package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/content_service/myErrors"
)

// respondServiceError 把服务层错误映射为 HTTP 状态码。
// 存储层错误只返回通用信息，不透出内部细节。
func respondServiceError(c *gin.Context, err error, action string) {
	var ve *myErrors.ValidationError
	switch {
	case errors.Is(err, commonerrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "资源不存在")
	case errors.As(err, &ve):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, ve.Error())
	case errors.Is(err, myErrors.ErrUploadsDisabled):
		response.RespondError(c, http.StatusServiceUnavailable, response.ErrCodeServerInternal, "上传功能暂不可用")
	default:
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, action+"失败")
	}
}

// respondCreated 与 RespondSuccess 的响应结构一致，状态码为 201
func respondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 ID 格式")
		return 0, false
	}
	return id, true
}
