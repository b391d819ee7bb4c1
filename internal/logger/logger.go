package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 创建一个新的日志记录器
func NewLogger(debug bool) *zap.Logger {
	level := "info"
	if debug {
		level = "debug"
	}
	return NewLoggerWithLevel(level)
}

// NewLoggerWithLevel 按级别名称创建日志记录器，无法识别的级别按 info 处理
//
// 日志写到 stderr，stdout 留给转换结果。
func NewLoggerWithLevel(level string) *zap.Logger {
	config := zap.NewProductionConfig()

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		panic("初始化日志系统失败: " + err.Error())
	}

	return logger
}
