package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Xushengqwer/content_service/dependencies"
	"github.com/Xushengqwer/content_service/models/entities"
)

// newTestDB 返回一个已迁移的内存 sqlite 库。
// 单连接：内存库的每个连接都是独立的数据库。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dependencies.Migrate(db))
	return db
}

// newForeignKeyTestDB 与 newTestDB 相同，但强制外键并翻译驱动错误，与生产配置一致
func newForeignKeyTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dependencies.Migrate(db))
	return db
}

func seedPost(t *testing.T, db *gorm.DB, userID uint64, title string, createdAt time.Time) *entities.Post {
	t.Helper()
	post := &entities.Post{
		UserID:    userID,
		Title:     title,
		Content:   "body of " + title,
		Category:  "general",
		PostType:  "text",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
