package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nerdneilsfield/md2block/internal/formatter"
	"github.com/nerdneilsfield/md2block/pkg/equation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// equationList 公式列表的序列化形式；TOML 顶层必须是表
type equationList struct {
	Equations []equation.Entry `json:"equations" yaml:"equations" toml:"equations"`
}

func newRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [flags] tree.json source.md",
		Short: "将外部渲染器输出的块树中的占位符恢复为公式",
		Long: `读取外部渲染器生成的 JSON 块树（节点字段 title 与 children），
按 source.md 重新提取公式表并恢复占位符。`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read block tree: %w", err)
			}
			var tree any
			if err := json.Unmarshal(data, &tree); err != nil {
				return fmt.Errorf("failed to decode block tree: %w", err)
			}

			lines, err := s.converter.ReadFile(args[1])
			if err != nil {
				return err
			}
			extraction, _, err := s.converter.Prepare(lines)
			if err != nil {
				return err
			}

			opts := equation.RestoreOptions{MaxDepth: s.cfg.MaxDepth}
			if err := equation.RestoreGeneric(tree, extraction.Table, opts); err != nil {
				return err
			}
			s.log.Debug("块树恢复完成", zap.Int("equations", extraction.Table.Len()))

			enc, err := formatter.Get(s.cfg.OutputFormat)
			if err != nil {
				return err
			}

			var out any = tree
			if _, ok := tree.([]any); ok && enc.Name() == "toml" {
				out = map[string]any{"blocks": tree}
			}

			write := func(w io.Writer) error { return enc.Encode(w, out) }
			if outputPath != "" {
				return writeFile(outputPath, write)
			}
			return write(cmd.OutOrStdout())
		},
	}
}
