package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/nerdneilsfield/md2block/internal/cli"
	"github.com/nerdneilsfield/md2block/internal/logger"
	"go.uber.org/zap"
)

// Version information
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	// 初始化日志
	log := logger.NewLogger(false)
	defer func() {
		_ = log.Sync()
	}()

	// 创建根命令
	rootCmd := cli.NewRootCommand(Version, Commit, BuildDate)

	// Ctrl+C 取消整个转换
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 执行命令
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error("执行命令失败", zap.Error(err))
		_ = log.Sync()
		stop()
		os.Exit(1)
	}
}
