package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/content_service/constant"
	"github.com/Xushengqwer/content_service/models/vo"
)

// Health 存活检查，不探测下游依赖
// @Summary      健康检查
// @Tags         health
// @Produce      json
// @Success      200 {object} vo.HealthVO
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, vo.HealthVO{Status: "healthy", Service: constant.ServiceName})
}
