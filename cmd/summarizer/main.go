// 摘要 worker：消费摘要任务，生成摘要后经回调 RPC 写回内容服务。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	sharedCore "github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/mq/consumer"
	"github.com/Xushengqwer/content_service/mq/producer"
	"github.com/Xushengqwer/content_service/rpc"
	"github.com/Xushengqwer/content_service/summarizer"
)

// jobConsumer 是 Kafka 与 RabbitMQ 消费者的共同形态
type jobConsumer interface {
	Start(ctx context.Context)
	Close() error
}

func newJobConsumer(cfg *appConfig.SummarizerConfig, handler consumer.MessageHandler, logger *zap.Logger) (jobConsumer, string, error) {
	switch cfg.BrokerConfig.Driver {
	case "", producer.DriverKafka:
		c, err := consumer.NewConsumer(&cfg.KafkaConfig, cfg.KafkaConfig.Topics.SummarizeJobs, handler, logger)
		if err != nil {
			return nil, "", err
		}
		return c, cfg.KafkaConfig.Topics.SummarizeJobs, nil
	case producer.DriverRabbitMQ:
		c, err := consumer.NewRabbitMQConsumer(cfg.BrokerConfig.RabbitMQ, handler, logger)
		if err != nil {
			return nil, "", err
		}
		return c, cfg.BrokerConfig.RabbitMQ.Queue, nil
	default:
		return nil, "", fmt.Errorf("不支持的 broker driver: %q", cfg.BrokerConfig.Driver)
	}
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config/summarizer.development.yaml", "Path to configuration file")
	flag.Parse()

	var cfg appConfig.SummarizerConfig
	if err := sharedCore.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}

	zapLogger, err := sharedCore.NewZapLogger(cfg.ZapConfig)
	if err != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", err)
	}
	logger := zapLogger.Logger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := summarizer.New(ctx, cfg.LLMConfig, logger)
	if err != nil {
		logger.Fatal("初始化摘要器失败", zap.Error(err))
	}

	timeout := time.Duration(cfg.CallbackConfig.TimeoutSeconds) * time.Second
	client, err := rpc.NewClient(cfg.CallbackConfig.Target, timeout)
	if err != nil {
		logger.Fatal("创建摘要回调客户端失败", zap.Error(err), zap.String("target", cfg.CallbackConfig.Target))
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("关闭回调客户端失败", zap.Error(err))
		}
	}()

	handler := consumer.NewSummarizeJobHandler(sum, client, logger)
	jobs, source, err := newJobConsumer(&cfg, handler, logger)
	if err != nil {
		logger.Fatal("初始化摘要任务消费者失败", zap.Error(err), zap.String("driver", cfg.BrokerConfig.Driver))
	}

	logger.Info("摘要 worker 已启动",
		zap.String("driver", cfg.BrokerConfig.Driver),
		zap.String("source", source),
		zap.String("callback", cfg.CallbackConfig.Target))

	// Start 在 ctx 取消前阻塞
	jobs.Start(ctx)

	if err := jobs.Close(); err != nil {
		logger.Error("关闭摘要任务消费者失败", zap.Error(err))
	}
	logger.Info("摘要 worker 已退出")
}
