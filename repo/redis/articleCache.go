package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/constant"
	"github.com/Xushengqwer/content_service/models/vo"
	"github.com/Xushengqwer/content_service/myErrors"
)

// ArticleCache 定义了文章详情的读穿缓存操作。
// - 缓存内容是 vo.ArticleVO 的 JSON 序列化形式，Key 为 `ArticleDetailCacheKeyPrefix{id}`。
// - 数据库是唯一真相来源，缓存失败不影响主流程，由调用方决定是否忽略错误。
// - 每次失效都会递增该文章的 generation，回填只在 generation 未变化时生效，
//   回源期间发生的更新不会被旧数据覆盖。
type ArticleCache interface {
	// GetArticle 读取文章详情缓存，未命中返回 myErrors.ErrCacheMiss。
	GetArticle(ctx context.Context, id uint64) (*vo.ArticleVO, error)

	// Generation 返回文章当前的失效计数，从未失效过为 0。回源前调用。
	Generation(ctx context.Context, id uint64) (int64, error)

	// SetArticle 在 generation 仍等于 gen 时写入缓存并设置 TTL，返回是否写入。
	SetArticle(ctx context.Context, article *vo.ArticleVO, gen int64) (bool, error)

	// InvalidateArticle 递增 generation 并删除文章详情缓存，Key 不存在不视为错误。
	InvalidateArticle(ctx context.Context, id uint64) error
}

// KEYS[1] 详情 Key, KEYS[2] generation Key; ARGV[1] 期望的 generation, ARGV[2] 数据, ARGV[3] TTL 毫秒
var setIfGenerationScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[2])
if not gen then gen = '0' end
if gen ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// KEYS[1] 详情 Key, KEYS[2] generation Key; ARGV[1] generation TTL 毫秒
var invalidateScript = redis.NewScript(`
redis.call('INCR', KEYS[2])
redis.call('PEXPIRE', KEYS[2], ARGV[1])
return redis.call('DEL', KEYS[1])
`)

type articleCache struct {
	redisClient *redis.Client
	ttl         time.Duration
	logger      *zap.Logger
}

// NewArticleCache 是 articleCache 的构造函数，ttl<=0 时使用 constant.DefaultArticleCacheTTL。
func NewArticleCache(redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) ArticleCache {
	if ttl <= 0 {
		ttl = constant.DefaultArticleCacheTTL
	}
	return &articleCache{redisClient: redisClient, ttl: ttl, logger: logger}
}

func articleKey(id uint64) string {
	return fmt.Sprintf("%s%d", constant.ArticleDetailCacheKeyPrefix, id)
}

func generationKey(id uint64) string {
	return articleKey(id) + constant.ArticleGenerationKeySuffix
}

func (c *articleCache) GetArticle(ctx context.Context, id uint64) (*vo.ArticleVO, error) {
	key := articleKey(id)

	jsonData, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.logger.Debug("文章详情缓存未命中", zap.String("key", key))
			return nil, myErrors.ErrCacheMiss
		}
		c.logger.Error("从 Redis 获取文章详情失败", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("获取文章(ID: %d)详情缓存失败: %w", id, err)
	}

	var article vo.ArticleVO
	if err := json.Unmarshal(jsonData, &article); err != nil {
		c.logger.Error("反序列化文章详情缓存失败，删除损坏的 Key", zap.String("key", key), zap.Error(err))
		if delErr := c.redisClient.Del(ctx, key).Err(); delErr != nil {
			c.logger.Warn("删除损坏的文章缓存失败", zap.String("key", key), zap.Error(delErr))
		}
		return nil, myErrors.ErrCacheMiss
	}
	return &article, nil
}

func (c *articleCache) Generation(ctx context.Context, id uint64) (int64, error) {
	gen, err := c.redisClient.Get(ctx, generationKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("获取文章(ID: %d)缓存 generation 失败: %w", id, err)
	}
	return gen, nil
}

func (c *articleCache) SetArticle(ctx context.Context, article *vo.ArticleVO, gen int64) (bool, error) {
	key := articleKey(article.ID)
	data, err := json.Marshal(article)
	if err != nil {
		return false, fmt.Errorf("序列化文章(ID: %d)失败: %w", article.ID, err)
	}
	stored, err := setIfGenerationScript.Run(ctx, c.redisClient,
		[]string{key, generationKey(article.ID)},
		strconv.FormatInt(gen, 10), data, c.ttl.Milliseconds()).Int()
	if err != nil {
		c.logger.Warn("写入文章详情缓存失败", zap.String("key", key), zap.Error(err))
		return false, err
	}
	if stored == 0 {
		c.logger.Debug("文章在回源期间已失效，跳过回填", zap.String("key", key), zap.Int64("generation", gen))
		return false, nil
	}
	return true, nil
}

func (c *articleCache) InvalidateArticle(ctx context.Context, id uint64) error {
	key := articleKey(id)
	err := invalidateScript.Run(ctx, c.redisClient,
		[]string{key, generationKey(id)},
		constant.ArticleGenerationTTL.Milliseconds()).Err()
	if err != nil {
		c.logger.Warn("删除文章详情缓存失败", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
