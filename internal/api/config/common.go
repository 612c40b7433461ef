package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Sweep    SweepConfig    `mapstructure:"sweep"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	UseSSL         bool   `mapstructure:"use_ssl"`
}

// TelegramConfig 出站消息通道配置
type TelegramConfig struct {
	BotToken         string   `mapstructure:"bot_token"`
	APIBase          string   `mapstructure:"api_base"`
	ModerationChatID int64    `mapstructure:"moderation_chat_id"`
	ModeratorIDs     []uint64 `mapstructure:"moderator_ids"`
}

// NotifyConfig 通知扇出配置
type NotifyConfig struct {
	Workers        int `mapstructure:"workers"`         // 并发投递协程数
	TimeoutSeconds int `mapstructure:"timeout_seconds"` // 单个接收者的投递超时
}

// SweepConfig 过期清扫配置
type SweepConfig struct {
	IntervalMinutes int `mapstructure:"interval_minutes"` // 常规间隔，默认 10 分钟
	BackoffMinutes  int `mapstructure:"backoff_minutes"`  // 失败后的退避间隔，默认 30 分钟
}
