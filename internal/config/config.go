package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const defaultSecret = "your-secret-key-change-in-production"

// Config 应用配置
type Config struct {
	Env       string `yaml:"env" validate:"oneof=development production test"`
	AppSecret string `yaml:"app_secret" validate:"required,min=16"`
	Port      string `yaml:"port" validate:"required,numeric"`
	SiteName  string `yaml:"site_name" validate:"required"`
	SiteUrl   string `yaml:"site_url" validate:"required,url"`
	LogLevel  string `yaml:"log_level" validate:"oneof=trace debug info warn error"`

	// 上游接口
	JikanBaseURL    string        `yaml:"jikan_base_url" validate:"required,url"`
	AniListURL      string        `yaml:"anilist_url" validate:"required,url"`
	HTTPTimeout     time.Duration `yaml:"http_timeout" validate:"gte=0"`
	JikanRatePerSec float64       `yaml:"jikan_rate_per_sec" validate:"gte=0"` // 0 表示不限速

	// 缓存与访客状态
	HomeCacheTTL   time.Duration `yaml:"home_cache_ttl" validate:"gte=0"`
	ViewerCapacity int           `yaml:"viewer_capacity" validate:"gt=0"`
	ViewerTTL      time.Duration `yaml:"viewer_ttl" validate:"gt=0"`

	// 过期访客与缓存的清理间隔
	CleanupInterval time.Duration `yaml:"cleanup_interval" validate:"gt=0"`

	// 横向列表自动滚动的帧间隔
	RailFrameInterval time.Duration `yaml:"rail_frame_interval" validate:"gt=0"`

	TemplatesDir string `yaml:"templates_dir" validate:"required"`
	StaticDir    string `yaml:"static_dir" validate:"required"`
}

// Load 加载配置：环境变量 -> CONFIG_FILE(YAML) 覆盖 -> 校验
func Load() (*Config, error) {
	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		AppSecret:         getEnv("APP_SECRET", defaultSecret),
		Port:              getEnv("PORT", "5005"),
		SiteName:          getEnv("SITE_NAME", "Animedex"),
		SiteUrl:           getEnv("SITE_URL", "http://localhost:5005"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		JikanBaseURL:      getEnv("JIKAN_BASE_URL", "https://api.jikan.moe/v4"),
		AniListURL:        getEnv("ANILIST_URL", "https://graphql.anilist.co"),
		HTTPTimeout:       getDuration("HTTP_TIMEOUT", 15*time.Second),
		JikanRatePerSec:   getFloat("JIKAN_RATE_PER_SEC", 3),
		HomeCacheTTL:      getDuration("HOME_CACHE_TTL", 10*time.Minute),
		ViewerCapacity:    getInt("VIEWER_CAPACITY", 1000),
		ViewerTTL:         getDuration("VIEWER_TTL", 30*time.Minute),
		CleanupInterval:   getDuration("CLEANUP_INTERVAL", 5*time.Minute),
		RailFrameInterval: getDuration("RAIL_FRAME_INTERVAL", 16*time.Millisecond),
		TemplatesDir:      getEnv("TEMPLATES_DIR", "./web/templates"),
		StaticDir:         getEnv("STATIC_DIR", "./web/static"),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UsesDefaultSecret 生产环境仍在使用默认密钥
func (c *Config) UsesDefaultSecret() bool {
	return c.Env == "production" && c.AppSecret == defaultSecret
}

// overlay 用 YAML 文件中出现的字段覆盖当前配置
func (c *Config) overlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}
	return nil
}

// Validate 校验配置项
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
