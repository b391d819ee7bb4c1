package equation

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind 公式类型
type Kind int

const (
	// KindBlock 独立成行的 $$ 多行公式块
	KindBlock Kind = iota
	// KindInlineDouble 同一行内的 $$...$$
	KindInlineDouble
	// KindInlineSingle 同一行内的 $...$
	KindInlineSingle
)

// String 返回类型名称
func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindInlineDouble:
		return "inline_double"
	case KindInlineSingle:
		return "inline_single"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText 以名称形式序列化
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// BlockDelimiter 多行公式块的分隔符
const BlockDelimiter = "$$"

const (
	placeholderPrefix = "**EQUATION_"
	placeholderSuffix = "**"
)

// placeholderPattern 匹配任意占位符
var placeholderPattern = regexp.MustCompile(`\*\*EQUATION_\d+\*\*`)

// Placeholder 根据序号生成占位符
//
// 使用加粗包裹，goldmark 解析后会成为 Emphasis 节点，渲染回标题时原样保留。
func Placeholder(index int) string {
	return fmt.Sprintf("%s%d%s", placeholderPrefix, index, placeholderSuffix)
}

// ContainsPlaceholder 判断文本中是否包含占位符格式的字符串
func ContainsPlaceholder(s string) bool {
	if !strings.Contains(s, placeholderPrefix) {
		return false
	}
	return placeholderPattern.MatchString(s)
}

// FindPlaceholders 返回文本中所有占位符格式的字符串
func FindPlaceholders(s string) []string {
	if !strings.Contains(s, placeholderPrefix) {
		return nil
	}
	return placeholderPattern.FindAllString(s, -1)
}

// Equation 提取出的一个公式
type Equation struct {
	Index int    `json:"index" yaml:"index" toml:"index"`
	Text  string `json:"text" yaml:"text" toml:"text"` // 包含分隔符的原文
	Kind  Kind   `json:"kind" yaml:"kind" toml:"kind"`
	Line  int    `json:"line" yaml:"line" toml:"line"` // 起始行号（从 1 开始）
}

// Entry 公式表中的一项
type Entry struct {
	Equation    Equation `json:"equation" yaml:"equation" toml:"equation"`
	Placeholder string   `json:"placeholder" yaml:"placeholder" toml:"placeholder"`
}

// Table 公式与占位符的有序映射
//
// 每个文档单独创建，提取结束后只读。
type Table struct {
	entries []Entry
	index   map[string]int
}

func newTable() *Table {
	return &Table{index: make(map[string]int)}
}

// add 分配下一个序号并登记公式
func (t *Table) add(text string, kind Kind, line int) Entry {
	n := len(t.entries)
	entry := Entry{
		Equation: Equation{
			Index: n,
			Text:  text,
			Kind:  kind,
			Line:  line,
		},
		Placeholder: Placeholder(n),
	}
	t.entries = append(t.entries, entry)
	t.index[entry.Placeholder] = n
	return entry
}

// Len 公式数量
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries 返回所有表项的副本
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Equations 按序号顺序返回所有公式
func (t *Table) Equations() []Equation {
	if t == nil {
		return nil
	}
	out := make([]Equation, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Equation
	}
	return out
}

// Placeholders 按序号顺序返回所有占位符，与 Equations 一一对应
func (t *Table) Placeholders() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Placeholder
	}
	return out
}

// Lookup 根据占位符查找公式
func (t *Table) Lookup(placeholder string) (Equation, bool) {
	if t == nil {
		return Equation{}, false
	}
	i, ok := t.index[placeholder]
	if !ok {
		return Equation{}, false
	}
	return t.entries[i].Equation, true
}
