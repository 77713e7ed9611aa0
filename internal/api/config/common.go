package config

// Config 配置主体
type Config struct {
	Server               ServerConfig         `mapstructure:"server"`
	DB                   DBConfig             `mapstructure:"database"`
	Redis                RedisConfig          `mapstructure:"redis"`
	JWT                  JWTConfig            `mapstructure:"jwt"`
	Logstash             LogstashConfig       `mapstructure:"logstash"`
	CommentArea          CommentAreaConfig    `mapstructure:"comment_area"`
	Cron                 CronConfig           `mapstructure:"cron"`
	Kafka                KafkaConfig          `mapstructure:"kafka"`
	KafkaCommentConsumer KafkaCommentConsumer `mapstructure:"kafka_comment_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	// SlowMs 超过该耗时的命令记 Warn 日志
	SlowMs int `mapstructure:"slow_ms"`
}

// JWTConfig 令牌签发配置，Expiration 单位为小时
type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration int    `mapstructure:"expiration"`
}

// LogstashConfig 日志外送配置，Addr 为空时只输出到 stdout
type LogstashConfig struct {
	Addr  string `mapstructure:"addr"`
	Index string `mapstructure:"index"`
	Token string `mapstructure:"token"`
}

// CommentAreaConfig 评论区配置
type CommentAreaConfig struct {
	EditableWindow      int    `mapstructure:"editable_window"`
	ShortenLength       int    `mapstructure:"shorten_length"`
	DefaultNumberToShow int    `mapstructure:"default_number_to_show"`
	SiteURL             string `mapstructure:"site_url"`
	ActivityCacheSize   int    `mapstructure:"activity_cache_size"`
	ActivityCacheTTL    int    `mapstructure:"activity_cache_ttl"`
}

// CronConfig 定时任务配置
type CronConfig struct {
	CommentCountSpec string `mapstructure:"comment_count_spec"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
}

// KafkaCommentConsumer 评论事件的 topic 同时用于生产与消费
type KafkaCommentConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
