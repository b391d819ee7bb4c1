package formatter

import (
	"strings"

	"github.com/Kunde21/markdownfmt/v3"
	"github.com/Kunde21/markdownfmt/v3/markdown"
)

// FormatMarkdown 用 markdownfmt 重新排版规范化后的 Markdown
//
// 只用于展示交给分词器的中间结果，占位符在排版前后保持不变。
func FormatMarkdown(lines []string) (string, error) {
	src := strings.Join(lines, "")

	formatted, err := markdownfmt.Process("", []byte(src), markdown.WithCodeFormatters(markdown.GoCodeFormatter))
	if err != nil {
		return "", &FormatError{
			Formatter: "markdownfmt",
			Reason:    "markdown formatting failed",
			Err:       err,
		}
	}
	return string(formatted), nil
}
