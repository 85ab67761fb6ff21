package router

import (
	"net/http"
	"time"

	"github.com/Xushengqwer/go-common/core"
	commonMiddleware "github.com/Xushengqwer/go-common/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appConfig "github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/constant"
	"github.com/Xushengqwer/content_service/controller"
)

// Controllers 汇总需要注册到 /api/v1/content 的控制器
type Controllers struct {
	Post       *controller.PostController
	Engagement *controller.EngagementController
	Article    *controller.ArticleController
	Upload     *controller.UploadController
}

// SetupRouter 仅负责配置 Gin 引擎、中间件和路由注册。
func SetupRouter(logger *core.ZapLogger, cfg *appConfig.ContentConfig, ctrls Controllers) *gin.Engine {
	logger.Info("开始设置 Gin 路由...")

	router := gin.New()

	// 1. OTel 最先，后续中间件的日志才能带上 TraceID
	router.Use(otelgin.Middleware(constant.ServiceName))

	// 2. Panic Recovery
	router.Use(commonMiddleware.ErrorHandlingMiddleware(logger))

	// 3. 访问日志
	router.Use(commonMiddleware.RequestLoggerMiddleware(logger.Logger()))

	// 4. 超时控制，配置单位为秒
	requestTimeout := time.Duration(cfg.ServerConfig.RequestTimeout) * time.Second
	router.Use(commonMiddleware.RequestTimeoutMiddleware(logger, requestTimeout))

	// 5. 响应压缩，信息流与文章列表体积较大
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	logger.Debug("已注册全局中间件")

	v1 := router.Group("/api/v1/content")
	ctrls.Post.RegisterRoutes(v1)
	ctrls.Engagement.RegisterRoutes(v1)
	ctrls.Article.RegisterRoutes(v1)
	ctrls.Upload.RegisterRoutes(v1)
	logger.Info("所有控制器路由已注册到 /api/v1/content 分组")

	// 访问 /swagger/index.html 查看接口文档
	swaggerURL := ginSwagger.URL("/swagger/doc.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))

	router.GET("/health", controller.Health)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	logger.Info("Gin 路由器设置完成")
	return router
}
