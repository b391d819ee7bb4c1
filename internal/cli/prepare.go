package cli

import (
	"io"
	"strings"

	"github.com/nerdneilsfield/md2block/internal/formatter"
	"github.com/nerdneilsfield/md2block/internal/stats"
	"github.com/spf13/cobra"
)

func newPrepareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare [flags] file",
		Short: "输出替换公式并规范化后的 Markdown",
		Long:  "输出交给分词器之前的中间结果：公式已替换为占位符，成对的 $$ 分隔行后补了空行。",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			lines, err := s.converter.ReadFile(args[0])
			if err != nil {
				return err
			}

			_, prepared, err := s.converter.Prepare(lines)
			if err != nil {
				return err
			}

			text := strings.Join(prepared, "")
			if s.cfg.PrettyMarkdown {
				if text, err = formatter.FormatMarkdown(prepared); err != nil {
					return err
				}
			}

			write := func(w io.Writer) error {
				_, err := io.WriteString(w, text)
				return err
			}
			if outputPath != "" {
				return writeFile(outputPath, write)
			}
			return write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&prettyMarkdown, "pretty", false, "用 markdownfmt 重新排版输出")
	return cmd
}

func newEquationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "equations [flags] file",
		Short: "列出文档中提取到的公式",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			lines, err := s.converter.ReadFile(args[0])
			if err != nil {
				return err
			}

			extraction, _, err := s.converter.Prepare(lines)
			if err != nil {
				return err
			}

			// 没有指定格式时输出表格
			if !cmd.Flags().Changed("format") {
				stats.PrintEquations(cmd.OutOrStdout(), extraction.Table)
				return nil
			}

			enc, err := formatter.Get(s.cfg.OutputFormat)
			if err != nil {
				return err
			}
			return enc.Encode(cmd.OutOrStdout(), equationList{Equations: extraction.Table.Entries()})
		},
	}
}
