// dependencies/postgres.go
package dependencies

import (
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	appConfig "github.com/Xushengqwer/content_service/config"
	"github.com/Xushengqwer/content_service/models/entities"
)

// InitPostgres 初始化 PostgreSQL 连接，并配置读写分离 (如果配置了从库)。
// 主库是服务唯一的硬依赖，重试耗尽后返回错误，由调用方决定退出。
func InitPostgres(cfg *appConfig.ContentConfig, logger *core.ZapLogger) (*gorm.DB, error) {
	pgCfg := cfg.PostgresConfig

	if pgCfg.Write.DSN == "" {
		return nil, fmt.Errorf("主数据库 DSN (postgresConfig.write.dsn) 未配置")
	}
	gormConfig := &gorm.Config{
		Logger: core.NewGormLogger(logger, cfg.GormLogConfig),
		// 外键冲突翻译为 gorm.ErrForeignKeyViolated，仓储层据此识别帖子已被删除
		TranslateError: true,
	}

	maxRetries := pgCfg.ConnectRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}
	retryInterval := 2 * time.Second

	var db *gorm.DB
	var err error
	logger.Info("开始连接主数据库...")
	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(pgCfg.Write.DSN), gormConfig)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					break
				}
			} else {
				err = dbErr
			}
		}
		logger.Warn("无法连接到主数据库，尝试重试", zap.Int("retry", i+1), zap.Int("maxRetries", maxRetries), zap.Error(err))
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("无法连接到主数据库: %w", err)
	}
	logger.Info("成功连接到主数据库")

	// --- 配置读写分离 (dbresolver) ---
	replicas := make([]gorm.Dialector, 0, len(pgCfg.Read))
	for i, replicaCfg := range pgCfg.Read {
		if replicaCfg.DSN == "" {
			logger.Warn("发现空的从库 DSN 配置，已跳过", zap.Int("index", i))
			continue
		}
		replicas = append(replicas, postgres.Open(replicaCfg.DSN))
	}
	if len(replicas) > 0 {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Sources:  []gorm.Dialector{postgres.Open(pgCfg.Write.DSN)},
			Replicas: replicas,
			Policy:   dbresolver.StrictRoundRobinPolicy(),
		}))
		if err != nil {
			return nil, fmt.Errorf("配置 GORM 读写分离失败: %w", err)
		}
		logger.Info("成功配置 GORM 读写分离插件", zap.Int("从库数量", len(replicas)))
	} else {
		logger.Info("未配置有效的从数据库，不启用读写分离")
	}

	// --- 配置连接池 ---
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("无法获取数据库对象: %w", err)
	}
	maxIdle := pgCfg.SharedMaxIdleConns
	maxOpen := pgCfg.SharedMaxOpenConns
	maxLife := pgCfg.SharedConnMaxLifetime
	if pgCfg.Write.MaxIdleConns != nil {
		maxIdle = *pgCfg.Write.MaxIdleConns
	}
	if pgCfg.Write.MaxOpenConns != nil {
		maxOpen = *pgCfg.Write.MaxOpenConns
	}
	if pgCfg.Write.ConnMaxLifetime != nil {
		maxLife = *pgCfg.Write.ConnMaxLifetime
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLife) * time.Second)
	logger.Info("配置数据库连接池",
		zap.Int("最大空闲连接数", maxIdle),
		zap.Int("最大打开连接数", maxOpen),
		zap.Int("连接最大生命周期(秒)", maxLife),
	)

	logger.Info("开始执行数据库自动迁移...")
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库自动迁移失败: %w", err)
	}
	logger.Info("数据库自动迁移完成")
	return db, nil
}

// Migrate 按依赖顺序迁移全部实体；帖子必须先于其子表创建。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Post{},
		&entities.PostMedia{},
		&entities.Like{},
		&entities.Bookmark{},
		&entities.Comment{},
		&entities.Article{},
	)
}
