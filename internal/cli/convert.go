package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nerdneilsfield/md2block/internal/formatter"
	"github.com/nerdneilsfield/md2block/internal/pipeline"
	"github.com/nerdneilsfield/md2block/internal/stats"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [flags] file...",
		Short: "将 Markdown 文件转换为块树",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			enc, err := formatter.Get(s.cfg.OutputFormat)
			if err != nil {
				return err
			}

			results, convErr := s.converter.ConvertFiles(cmd.Context(), args)

			if showSummary {
				stats.PrintSummary(cmd.ErrOrStderr(), results)
			}

			if err := writeResults(cmd.OutOrStdout(), enc, results, len(args) > 1, s.log); err != nil {
				return err
			}
			return convErr
		},
	}

	cmd.Flags().BoolVar(&showSummary, "summary", false, "在 stderr 输出转换摘要")
	return cmd
}

// writeResults 输出转换结果
//
// 未指定 --output 时写到 stdout；多个输入时 --output 是目录，每个文件单独输出。
func writeResults(stdout io.Writer, enc formatter.Encoder, results []*pipeline.Result, multiple bool, log *zap.Logger) error {
	for _, r := range results {
		if r == nil {
			continue
		}

		if outputPath == "" {
			if err := enc.Encode(stdout, r.Document); err != nil {
				return err
			}
			continue
		}

		target := outputPath
		if multiple {
			if err := os.MkdirAll(outputPath, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			base := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
			target = filepath.Join(outputPath, base+"."+enc.Extension())
		}

		if err := writeFile(target, func(w io.Writer) error { return enc.Encode(w, r.Document) }); err != nil {
			return err
		}
		log.Info("已写入输出文件", zap.String("file", target))
	}
	return nil
}

// writeFile 创建文件并写入内容
func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
