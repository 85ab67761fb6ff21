package config

// RedisConfig 是 Redis 客户端连接配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr" json:"addr" yaml:"addr"`
	Password string `mapstructure:"password" json:"-" yaml:"password"`
	DB       int    `mapstructure:"db" json:"db" yaml:"db"`
	PoolSize int    `mapstructure:"poolSize" json:"poolSize" yaml:"poolSize"`
	// DialTimeout 连接超时（秒）
	DialTimeout int `mapstructure:"dialTimeout" json:"dialTimeout" yaml:"dialTimeout"`
}

// CacheConfig 控制文章详情的读穿缓存。
type CacheConfig struct {
	// Enabled 为 false 时完全跳过 Redis，所有读取直接访问数据库。
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	// ArticleTTLSeconds 是文章详情缓存的过期时间，<=0 时使用默认值 300。
	ArticleTTLSeconds int `mapstructure:"articleTTLSeconds" json:"articleTTLSeconds" yaml:"articleTTLSeconds"`
}
