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

	setDefaults()

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

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("jwt.expiration", 72)
	viper.SetDefault("comment_area.editable_window", 600)
	viper.SetDefault("comment_area.shorten_length", 160)
	viper.SetDefault("comment_area.default_number_to_show", 5)
	viper.SetDefault("comment_area.activity_cache_size", 256)
	viper.SetDefault("comment_area.activity_cache_ttl", 60)
	viper.SetDefault("cron.comment_count_spec", "@every 1m")
	viper.SetDefault("kafka_comment_consumer.topic", "studentquiz.comment.events")
	viper.SetDefault("kafka_comment_consumer.group_id", "studentquiz-comment-count")
}
