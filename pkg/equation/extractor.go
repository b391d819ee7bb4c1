package equation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// state 逐行扫描的状态
type state int

const (
	stateScanning state = iota
	stateInBlock
)

// Options 提取选项
type Options struct {
	// Strict 为 true 时，未闭合的公式块作为错误返回，而不是原样输出
	Strict bool
}

// Fragment 未闭合的公式块
type Fragment struct {
	Line  int      `json:"line"`  // 起始分隔符所在行
	Lines []string `json:"lines"` // 原样输出的行（含起始分隔符）
}

// Extraction 一次提取的结果
type Extraction struct {
	Table        *Table
	Lines        []string
	Unterminated *Fragment
}

// Extractor 公式提取器
type Extractor struct {
	opts          Options
	doublePattern *regexp.Regexp
	singlePattern *regexp2.Regexp
}

// NewExtractor 创建公式提取器
func NewExtractor(opts Options) *Extractor {
	return &Extractor{
		opts:          opts,
		doublePattern: regexp.MustCompile(`\$\$(.+?)\$\$`),
		// 单 $ 需要前后断言排除 $$，标准库 regexp 不支持 look-around
		singlePattern: regexp2.MustCompile(`(?<!\$)\$(?!\$)(.+?)(?<!\$)\$(?!\$)`, regexp2.None),
	}
}

// Extract 提取所有公式并替换为占位符
//
// 序号按从上到下、从左到右遇到的顺序分配，多行公式块与行内公式共用同一个计数器。
func (e *Extractor) Extract(lines []string) (*Extraction, error) {
	lines = ensureTerminators(lines)
	if err := checkCollision(lines); err != nil {
		return nil, err
	}

	table := newTable()
	out := make([]string, 0, len(lines))

	st := stateScanning
	var (
		buffer   []string // 去除行尾空白后的公式内容
		raw      []string // 原始行，未闭合时原样输出
		openedAt int
		indent   string // 起始分隔符的缩进，占位符行沿用它以留在原来的容器内
	)

	for i, line := range lines {
		lineNo := i + 1

		switch st {
		case stateScanning:
			if isDelimiter(line) {
				st = stateInBlock
				openedAt = lineNo
				indent = leadingWhitespace(line)
				buffer = buffer[:0]
				raw = []string{line}
				continue
			}

			replaced, err := e.replaceInline(line, lineNo, table)
			if err != nil {
				return nil, err
			}
			out = append(out, replaced)

		case stateInBlock:
			if isDelimiter(line) {
				body := strings.Trim(strings.Join(buffer, "\n"), "\n")
				text := BlockDelimiter + "\n" + body + "\n" + BlockDelimiter
				entry := table.add(text, KindBlock, openedAt)
				out = append(out, indent+entry.Placeholder+"\n")
				st = stateScanning
				raw = nil
				continue
			}
			// 块内内容不做行内扫描
			buffer = append(buffer, strings.TrimRightFunc(line, unicode.IsSpace))
			raw = append(raw, line)
		}
	}

	result := &Extraction{Table: table}
	if st == stateInBlock {
		if e.opts.Strict {
			return nil, &LineError{
				Line:   openedAt,
				Detail: fmt.Sprintf("%d line(s) after opening %q", len(raw)-1, BlockDelimiter),
				Err:    ErrUnterminatedBlock,
			}
		}
		result.Unterminated = &Fragment{Line: openedAt, Lines: raw}
		out = append(out, raw...)
	}
	result.Lines = out

	return result, nil
}

// replaceInline 先匹配 $$...$$，再在其余片段中匹配 $...$
//
// 单 $ 只在相邻的 $$...$$ 之间的片段内查找，不会跨越已替换的公式。
// 片段按从左到右的顺序处理，序号因此与公式在行内的位置一致。
func (e *Extractor) replaceInline(line string, lineNo int, table *Table) (string, error) {
	if !strings.Contains(line, "$") {
		return line, nil
	}

	var b strings.Builder
	prev := 0
	for _, loc := range e.doublePattern.FindAllStringIndex(line, -1) {
		segment, err := e.replaceSingle(line[prev:loc[0]], lineNo, table)
		if err != nil {
			return "", err
		}
		b.WriteString(segment)
		b.WriteString(table.add(line[loc[0]:loc[1]], KindInlineDouble, lineNo).Placeholder)
		prev = loc[1]
	}

	segment, err := e.replaceSingle(line[prev:], lineNo, table)
	if err != nil {
		return "", err
	}
	b.WriteString(segment)

	return b.String(), nil
}

// replaceSingle 替换片段中的 $...$
func (e *Extractor) replaceSingle(segment string, lineNo int, table *Table) (string, error) {
	if !strings.Contains(segment, "$") {
		return segment, nil
	}
	replaced, err := e.singlePattern.ReplaceFunc(segment, func(m regexp2.Match) string {
		return table.add(m.String(), KindInlineSingle, lineNo).Placeholder
	}, -1, -1)
	if err != nil {
		return "", fmt.Errorf("failed to match inline equation on line %d: %w", lineNo, err)
	}
	return replaced, nil
}

// checkCollision 输入中已有占位符格式的文本时直接报错，避免恢复时错误替换
func checkCollision(lines []string) error {
	for i, line := range lines {
		if found := FindPlaceholders(line); len(found) > 0 {
			return &LineError{Line: i + 1, Detail: found[0], Err: ErrPlaceholderCollision}
		}
	}
	return nil
}

// isDelimiter 判断是否为只包含 $$ 的行
func isDelimiter(line string) bool {
	return strings.TrimSpace(line) == BlockDelimiter
}

// leadingWhitespace 返回行首的空白
func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}

// isBlank 判断是否为空行
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// NormalizeLines 按行切分文本，保留行尾换行符
func NormalizeLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return ensureTerminators(lines)
}

// ensureTerminators 保证每行都以换行符结尾
func ensureTerminators(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		out[i] = line
	}
	return out
}
