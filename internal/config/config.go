package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Log       LogConfig
	Catalog   CatalogConfig
	Favorites FavoritesConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string
	Environment string
	Version     string
	Debug       bool
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host            string
	Port            int
	Mode            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string
	Format string // json, console
}

// CatalogConfig 工具目录配置
type CatalogConfig struct {
	Path             string
	ExtraDir         string
	Watch            bool
	ReloadDebounceMs int
}

// FavoritesConfig 收藏存储配置
type FavoritesConfig struct {
	Backend  string // file, bolt, postgres
	Path     string
	BoltPath string
}

// DatabaseConfig 数据库配置（postgres 收藏后端）
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig 响应缓存配置
type CacheConfig struct {
	Enabled    bool
	Backend    string // memory, redis
	TTLSeconds int
	Size       int
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled       bool
	Requests      int
	WindowSeconds int
	Burst         int
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load 加载配置，path 为空时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// 环境变量
	v.SetEnvPrefix("OSINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetAddr 获取服务器地址
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetAddr 获取 Redis 地址
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TTL 缓存过期时间
func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Window 限流窗口
func (c *RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// ReloadDebounce 目录重载去抖时间
func (c *CatalogConfig) ReloadDebounce() time.Duration {
	return time.Duration(c.ReloadDebounceMs) * time.Millisecond
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "osint-framework")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.debug", false)

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.shutdownTimeout", 10)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Catalog
	v.SetDefault("catalog.path", "tools-master.json")
	v.SetDefault("catalog.extraDir", "")
	v.SetDefault("catalog.watch", false)
	v.SetDefault("catalog.reloadDebounceMs", 200)

	// Favorites
	v.SetDefault("favorites.backend", "file")
	v.SetDefault("favorites.path", "data/favorites.json")
	v.SetDefault("favorites.boltPath", "data/favorites.db")

	// Database
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "osint")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 2)
	v.SetDefault("database.maxLifetime", 300)

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// Cache
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttlSeconds", 300)
	v.SetDefault("cache.size", 512)

	// RateLimit
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requests", 100)
	v.SetDefault("rateLimit.windowSeconds", 900)
	v.SetDefault("rateLimit.burst", 0)

	// Metrics
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
