package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sharedCore "github.com/Xushengqwer/go-common/core"
	sharedTracing "github.com/Xushengqwer/go-common/core/tracing"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/constant"
	"github.com/Xushengqwer/content_service/controller"
	"github.com/Xushengqwer/content_service/dependencies"
	_ "github.com/Xushengqwer/content_service/docs"
	"github.com/Xushengqwer/content_service/mq/producer"
	"github.com/Xushengqwer/content_service/repo/postgres"
	redisrepo "github.com/Xushengqwer/content_service/repo/redis"
	"github.com/Xushengqwer/content_service/router"
	"github.com/Xushengqwer/content_service/rpc"
	"github.com/Xushengqwer/content_service/service"
	"github.com/Xushengqwer/content_service/tasks"
)

// @title           Content Service API
// @version         1.0
// @description     公民内容服务：帖子、互动、政府文章、上传与 AI 摘要。

// @host      localhost:8083
// @schemes http https
func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "Path to configuration file")
	flag.Parse()

	// 1. 加载配置
	var cfg appConfig.ContentConfig
	if err := sharedCore.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}

	// 2. 初始化 Logger
	logger, loggerErr := sharedCore.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", loggerErr)
	}
	zl := logger.Logger()
	defer func() {
		if err := zl.Sync(); err != nil {
			log.Printf("WARN: ZapLogger Sync 失败: %v\n", err)
		}
	}()
	logger.Info("Logger 初始化成功")

	// 3. 初始化 TracerProvider
	if cfg.TracerConfig.Enabled {
		tracerShutdown, err := sharedTracing.InitTracerProvider(constant.ServiceName, constant.ServiceVersion, cfg.TracerConfig)
		if err != nil {
			logger.Fatal("初始化 TracerProvider 失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerShutdown(ctx); err != nil {
				logger.Error("关闭 TracerProvider 失败", zap.Error(err))
			}
		}()
		logger.Info("分布式追踪已初始化")
	} else {
		logger.Info("分布式追踪已禁用")
	}

	// --- 4. 初始化依赖 ---
	// 4.1 PostgreSQL 是唯一的硬依赖
	db, err := dependencies.InitPostgres(&cfg, logger)
	if err != nil {
		logger.Fatal("初始化 PostgreSQL 数据库失败", zap.Error(err))
	}

	// 4.2 Redis 缓存，Ping 失败时仍使用客户端，读取失败会回源数据库
	var articleCache redisrepo.ArticleCache
	if cfg.CacheConfig.Enabled {
		rdb, redisErr := dependencies.InitRedis(&cfg.RedisConfig, logger)
		if redisErr != nil {
			logger.Warn("Redis 暂不可用，文章缓存将在恢复后生效", zap.Error(redisErr))
		}
		if rdb != nil {
			defer func() { _ = rdb.Close() }()
			articleCache = redisrepo.NewArticleCache(rdb, time.Duration(cfg.CacheConfig.ArticleTTLSeconds)*time.Second, zl)
		}
	} else {
		logger.Info("文章缓存已禁用")
	}

	// 4.3 对象存储，失败时上传能力关闭
	objectStore, storeErr := dependencies.InitObjectStore(&cfg.ObjectStoreConfig, logger)
	if storeErr != nil {
		logger.Error("初始化对象存储失败，上传功能关闭", zap.Error(storeErr))
	}

	// 4.4 摘要任务发布器，失败时帖子停留在 Created
	publisher, pubErr := producer.NewPublisher(cfg.BrokerConfig, cfg.KafkaConfig, zl)
	if pubErr != nil {
		logger.Error("初始化摘要任务发布器失败，AI 摘要关闭", zap.Error(pubErr))
	}

	// --- 5. 能力探测 ---
	caps := service.NewCapabilities(false, false)
	probeTask := tasks.NewDependencyProbeTask(cfg.ProbeConfig, objectStore, publisher, caps, zl)
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	probeTask.RunOnce(startupCtx)
	startupCancel()
	logger.Info("依赖能力初始状态",
		zap.Bool("uploads", caps.UploadsEnabled()),
		zap.Bool("summaries", caps.SummariesEnabled()))
	if err := probeTask.Start(); err != nil {
		logger.Fatal("启动依赖探测任务失败", zap.Error(err))
	}

	// --- 6. 仓库、服务与控制器 ---
	postRepo := postgres.NewPostRepository(db, zl)
	engagementRepo := postgres.NewEngagementRepository(db, zl)
	articleRepo := postgres.NewArticleRepository(db, zl)

	coordinator := service.NewSummaryCoordinator(postRepo, publisher, caps,
		time.Duration(cfg.SummaryConfig.PublishTimeoutSeconds)*time.Second, zl)
	postService := service.NewPostService(db, postRepo, engagementRepo, coordinator, zl)
	feedService := service.NewFeedService(postRepo, cfg.FeedConfig.CandidateWindow, zl)
	engagementService := service.NewEngagementService(postRepo, engagementRepo, zl)
	articleService := service.NewArticleService(articleRepo, articleCache, zl)
	uploadService := service.NewUploadService(objectStore, caps, cfg.UploadConfig.MaxSizeBytes, cfg.UploadConfig.AllowedTypes, zl)

	ginRouter := router.SetupRouter(logger, &cfg, router.Controllers{
		Post:       controller.NewPostController(postService, feedService),
		Engagement: controller.NewEngagementController(engagementService),
		Article:    controller.NewArticleController(articleService),
		Upload:     controller.NewUploadController(uploadService, cfg.UploadConfig.MaxSizeBytes),
	})

	// --- 7. 摘要回调 gRPC 服务 ---
	grpcAddr := fmt.Sprintf(":%s", cfg.GRPCConfig.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logger.Fatal("监听 gRPC 端口失败", zap.String("address", grpcAddr), zap.Error(err))
	}
	grpcServer := rpc.NewServer(rpc.NewContentUpdater(coordinator, zl), zl)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC 服务异常退出", zap.Error(err))
		}
	}()

	// --- 8. HTTP 服务 ---
	serverAddr := fmt.Sprintf(":%s", cfg.ServerConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: ginRouter,
	}
	go func() {
		logger.Info("HTTP 服务器开始监听", zap.String("address", serverAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
	}()

	// --- 9. 优雅关停，顺序与启动相反 ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	logger.Info("收到关停信号，开始优雅退出...", zap.String("signal", receivedSignal.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// a. 停止接收 HTTP 请求
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭 HTTP 服务器失败", zap.Error(err))
	} else {
		logger.Info("HTTP 服务器已成功关闭")
	}

	// b. 停止摘要回调
	grpcServer.Stop(shutdownCtx)
	logger.Info("gRPC 服务已关闭")

	// c. 停止探测任务
	select {
	case <-probeTask.Stop().Done():
		logger.Info("依赖探测任务已停止")
	case <-shutdownCtx.Done():
		logger.Error("等待依赖探测任务停止超时", zap.Error(shutdownCtx.Err()))
	}

	// d. 等待后台摘要投递结束，再关闭发布器
	waitDone := make(chan struct{})
	go func() {
		coordinator.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-shutdownCtx.Done():
		logger.Error("等待摘要任务投递超时", zap.Error(shutdownCtx.Err()))
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("关闭摘要任务发布器失败", zap.Error(err))
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("服务已成功关闭")
}
