package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nerdneilsfield/md2block/internal/pipeline"
	"github.com/nerdneilsfield/md2block/pkg/block"
	"github.com/nerdneilsfield/md2block/pkg/equation"
)

// previewWidth 表格中公式预览的最大字符数
const previewWidth = 48

// KindCounts 按类型统计公式数量
func KindCounts(t *equation.Table) map[equation.Kind]int {
	counts := make(map[equation.Kind]int)
	for _, eq := range t.Equations() {
		counts[eq.Kind]++
	}
	return counts
}

// PrintEquations 以表格形式列出公式
func PrintEquations(w io.Writer, t *equation.Table) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"#", "类型", "行", "占位符", "公式"})

	for _, e := range t.Entries() {
		tw.AppendRow(table.Row{
			e.Equation.Index,
			e.Equation.Kind.String(),
			e.Equation.Line,
			e.Placeholder,
			preview(e.Equation.Text),
		})
	}

	counts := KindCounts(t)
	tw.AppendFooter(table.Row{
		"", "合计", t.Len(), "",
		fmt.Sprintf("block %d / inline_double %d / inline_single %d",
			counts[equation.KindBlock], counts[equation.KindInlineDouble], counts[equation.KindInlineSingle]),
	})

	tw.SetStyle(table.StyleLight)
	tw.Render()
}

// PrintSummary 打印多个文件的转换摘要
func PrintSummary(w io.Writer, results []*pipeline.Result) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintln(w, "📊 Conversion Summary")
	title.Fprintln(w, strings.Repeat("=", 50))

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"文件", "公式", "块", "状态"})

	ok, failed := 0, 0
	for _, r := range results {
		if r == nil {
			failed++
			continue
		}
		ok++
		tw.AppendRow(table.Row{r.Path, r.Table.Len(), block.Count(r.Document.Blocks), status(r)})
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()

	fmt.Fprintln(w)
	color.New(color.FgGreen).Fprintf(w, "成功: %d", ok)
	if failed > 0 {
		fmt.Fprint(w, "  ")
		color.New(color.FgRed).Fprintf(w, "失败: %d", failed)
	}
	fmt.Fprintln(w)
}

// status 单个文件的状态描述
func status(r *pipeline.Result) string {
	var notes []string
	if r.Unterminated != nil {
		notes = append(notes, fmt.Sprintf("公式块未闭合 (第 %d 行)", r.Unterminated.Line))
	}
	if len(r.Leftovers) > 0 {
		notes = append(notes, fmt.Sprintf("残留占位符 %d 个", len(r.Leftovers)))
	}
	if len(notes) == 0 {
		return "ok"
	}
	return strings.Join(notes, "; ")
}

// preview 把公式压成一行并截断
func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= previewWidth {
		return s
	}
	return string(runes[:previewWidth-1]) + "…"
}
