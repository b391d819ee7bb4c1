package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config 保存 md2block 的所有配置
type Config struct {
	Debug          bool   `mapstructure:"debug"`
	LogLevel       string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"` // 日志级别
	Strict         bool   `mapstructure:"strict"`                                                     // 未闭合的公式块视为错误
	MaxDepth       int    `mapstructure:"max_depth" validate:"gte=0"`                                 // 块树最大深度，0 表示不限制
	Workers        int    `mapstructure:"workers" validate:"gte=1,lte=256"`                           // 多文件并发数
	OutputFormat   string `mapstructure:"output_format" validate:"oneof=json yaml toml"`              // 输出格式
	PrettyMarkdown bool   `mapstructure:"pretty_markdown"`                                            // prepare 输出时用 markdownfmt 重新排版
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("strict", false)
	v.SetDefault("max_depth", 0)
	v.SetDefault("workers", 4)
	v.SetDefault("output_format", "json")
	v.SetDefault("pretty_markdown", false)
}

// LoadConfig 从文件加载配置
//
// configPath 为空时依次查找家目录和当前目录下的 .md2block.yaml，
// 找不到配置文件时使用默认值。环境变量前缀为 MD2BLOCK。
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 设置默认值
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".md2block")
		v.SetConfigType("yaml")
	}

	// 读取环境变量
	v.SetEnvPrefix("MD2BLOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// 如果找不到配置文件，则使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate 按 mapstructure 键名报告字段
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("mapstructure")
	})
	return v
}()

// Validate 校验配置
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %v (%s %s)", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
