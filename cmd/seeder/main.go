package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/dependencies"
	"github.com/Xushengqwer/content_service/mq/producer"
	"github.com/Xushengqwer/content_service/repo/postgres"
	"github.com/Xushengqwer/content_service/service"
)

func main() {
	var (
		configFile  string
		numPosts    int
		numArticles int
		numGovs     int
		withSummary bool
	)
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.IntVar(&numPosts, "n", 50, "要生成的帖子数量")
	flag.IntVar(&numArticles, "articles", 20, "要生成的文章数量")
	flag.IntVar(&numGovs, "govs", 3, "文章分布的政府数量")
	flag.BoolVar(&withSummary, "summaries", false, "是否为生成的帖子投递摘要任务")
	flag.Parse()

	if numPosts < 0 || numArticles < 0 || numGovs <= 0 {
		fmt.Println("错误: 数量参数不能为负，政府数量必须大于 0")
		os.Exit(1)
	}

	absConfigFile, err := filepath.Abs(configFile)
	if err != nil {
		absConfigFile = configFile
	}

	var cfg appConfig.ContentConfig
	if err := core.LoadConfig(absConfigFile, &cfg); err != nil {
		fmt.Printf("加载配置失败 (%s): %v\n", absConfigFile, err)
		os.Exit(1)
	}

	zapLogger, err := core.NewZapLogger(cfg.ZapConfig)
	if err != nil {
		fmt.Printf("初始化 ZapLogger 失败: %v\n", err)
		os.Exit(1)
	}
	logger := zapLogger.Logger()
	defer func() { _ = logger.Sync() }()

	db, err := dependencies.InitPostgres(&cfg, zapLogger)
	if err != nil {
		logger.Fatal("初始化 PostgreSQL 失败 (Seeder)", zap.Error(err))
	}

	// 默认不投递摘要任务，seeder 只写数据库
	var publisher producer.SummaryJobPublisher
	if withSummary {
		publisher, err = producer.NewPublisher(cfg.BrokerConfig, cfg.KafkaConfig, logger)
		if err != nil {
			logger.Fatal("初始化摘要任务发布器失败 (Seeder)", zap.Error(err))
		}
		defer func() { _ = publisher.Close() }()
	}
	caps := service.NewCapabilities(false, publisher != nil)

	postRepo := postgres.NewPostRepository(db, logger)
	engagementRepo := postgres.NewEngagementRepository(db, logger)
	coordinator := service.NewSummaryCoordinator(postRepo, publisher, caps,
		time.Duration(cfg.SummaryConfig.PublishTimeoutSeconds)*time.Second, logger)

	s := &seeder{
		posts:      service.NewPostService(db, postRepo, engagementRepo, coordinator, logger),
		engagement: service.NewEngagementService(postRepo, engagementRepo, logger),
		articles:   service.NewArticleService(postgres.NewArticleRepository(db, logger), nil, logger),
		logger:     logger,
	}

	ctx := context.Background()
	startTime := time.Now()
	s.seedPosts(ctx, numPosts)
	s.seedArticles(ctx, numArticles, numGovs)

	// 等后台摘要投递结束再退出
	coordinator.Wait()
	logger.Info("数据填充完成", zap.Duration("耗时", time.Since(startTime)))
}
