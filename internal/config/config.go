package config

import (
	"github.com/blues/cfp/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Validation ValidationConfig `mapstructure:"validation"`
	Task       TaskConfig       `mapstructure:"task"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	Secret          string `mapstructure:"secret"`            // JWT签名密钥
	AccessTokenTTL  int    `mapstructure:"access_token_ttl"`  // access token有效期（小时）
	RefreshTokenTTL int    `mapstructure:"refresh_token_ttl"` // refresh token有效期（小时）
}

// ValidationConfig 校验规则配置，敏感词按部署环境注入
type ValidationConfig struct {
	TitleDenylist   []string `mapstructure:"title_denylist"`   // 项目标题敏感词
	MessageDenylist []string `mapstructure:"message_denylist"` // 贡献留言敏感词
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
	PoolSize int `mapstructure:"pool_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cfp")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "crowdfunding")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("auth.secret", "change-me")
	viper.SetDefault("auth.access_token_ttl", 2)
	viper.SetDefault("auth.refresh_token_ttl", 168)
	viper.SetDefault("validation.title_denylist", []string{"scam", "fake", "fraud", "illegal"})
	viper.SetDefault("validation.message_denylist", []string{"spam", "scam", "fake", "fraud"})
	viper.SetDefault("task.interval", 300)
	viper.SetDefault("task.pool_size", 8)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
