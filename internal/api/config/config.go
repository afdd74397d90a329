package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetDefault("challenge.ttl_minute", 60)
	viper.SetDefault("rss.timeout_second", 10)
	viper.SetDefault("rss.verify_scan", 3)
	viper.SetDefault("auth.expire_hours", 24)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// ChallengeTTL 挑战 Token 的有效期
func (c *Config) ChallengeTTL() time.Duration {
	return time.Duration(c.Challenge.TTLMinute) * time.Minute
}

// RSSTimeout 单次 RSS 拉取的超时时间
func (c *Config) RSSTimeout() time.Duration {
	return time.Duration(c.RSS.TimeoutSecond) * time.Second
}
