package cli

import (
	"fmt"

	"github.com/nerdneilsfield/md2block/internal/config"
	"github.com/nerdneilsfield/md2block/internal/formats/markdown"
	"github.com/nerdneilsfield/md2block/internal/logger"
	"github.com/nerdneilsfield/md2block/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// 命令行标志变量
	cfgFile        string
	debugMode      bool
	strictMode     bool
	outputFormat   string
	outputPath     string
	maxDepth       int
	workers        int
	showSummary    bool
	prettyMarkdown bool
)

// NewRootCommand 创建根命令
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "md2block",
		Short: "将包含数学公式的 Markdown 转换为块结构",
		Long: `md2block 将包含 LaTeX 公式的 Markdown 文档转换为 Notion 风格的块树。

公式在分词之前被替换为占位符，渲染完成后再恢复到块树中，
因此 $...$、$$...$$ 以及独立成行的 $$ 公式块都能原样保留。`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "配置文件路径（默认查找 ~/.md2block.yaml 与 ./.md2block.yaml）")
	flags.BoolVar(&debugMode, "debug", false, "启用调试日志")
	flags.BoolVar(&strictMode, "strict", false, "未闭合的公式块视为错误")
	flags.StringVarP(&outputFormat, "format", "f", "", "输出格式: json, yaml, toml")
	flags.StringVarP(&outputPath, "output", "o", "", "输出文件（多个输入时为输出目录）")
	flags.IntVar(&maxDepth, "max-depth", 0, "块树最大深度，0 表示不限制")
	flags.IntVar(&workers, "workers", 0, "多文件并发数")

	rootCmd.AddCommand(
		newConvertCommand(),
		newPrepareCommand(),
		newEquationsCommand(),
		newRestoreCommand(),
	)

	return rootCmd
}

// session 一次命令执行所需的配置、日志与转换器
type session struct {
	cfg       *config.Config
	log       *zap.Logger
	converter *pipeline.Converter
}

// newSession 加载配置并用命令行标志覆盖
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = debugMode
	}
	if flags.Changed("strict") {
		cfg.Strict = strictMode
	}
	if flags.Changed("format") {
		cfg.OutputFormat = outputFormat
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("pretty") {
		cfg.PrettyMarkdown = prettyMarkdown
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log := logger.NewLoggerWithLevel(level)

	converter := pipeline.NewConverter(markdown.NewProcessor(), pipeline.Options{
		Strict:   cfg.Strict,
		MaxDepth: cfg.MaxDepth,
		Workers:  cfg.Workers,
	}, log)

	return &session{cfg: cfg, log: log, converter: converter}, nil
}

// close 刷新日志
func (s *session) close() {
	_ = s.log.Sync()
}
