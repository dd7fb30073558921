package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetDefault("moderation.review_threshold", 60)
	viper.SetDefault("moderation.reject_threshold", 85)
	viper.SetDefault("i18n.supported_languages", []string{"en", "zh", "ko"})
	viper.SetDefault("worker.queue_size", 256)
	viper.SetDefault("worker.workers", 1)
	viper.SetDefault("llm.daily_limit", 10000)

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

	if cfg.Moderation.ReviewThreshold >= cfg.Moderation.RejectThreshold {
		return fmt.Errorf("invalid moderation thresholds: review %d >= reject %d",
			cfg.Moderation.ReviewThreshold, cfg.Moderation.RejectThreshold)
	}
	if len(cfg.I18n.SupportedLanguages) == 0 {
		return errors.New("i18n.supported_languages must not be empty")
	}

	Cfg = &cfg

	return nil
}
