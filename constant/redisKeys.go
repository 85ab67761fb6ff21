package constant

import "time"

// Redis Key 相关常量
const (
	// ArticleDetailCacheKeyPrefix 是文章详情缓存的 Key 前缀。
	// 示例 Key: "article_detail:42"
	// Redis 类型: String (JSON 序列化的文章实体)
	ArticleDetailCacheKeyPrefix = "article_detail:"

	// ArticleGenerationKeySuffix 拼在文章详情 Key 后面，记录该文章被失效的次数。
	// 示例 Key: "article_detail:42:gen"
	// Redis 类型: String (整数)
	ArticleGenerationKeySuffix = ":gen"

	// ArticleGenerationTTL 是失效计数 Key 的过期时间，需远大于一次回源耗时。
	ArticleGenerationTTL = 24 * time.Hour

	// DefaultArticleCacheTTL 是未配置 TTL 时的文章缓存过期时间。
	DefaultArticleCacheTTL = 5 * time.Minute
)
