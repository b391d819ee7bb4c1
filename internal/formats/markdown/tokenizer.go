package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Tree goldmark 解析得到的语法树
type Tree struct {
	Root   ast.Node
	Source []byte
	Meta   map[string]any
}

// Tokenizer 基于 goldmark 的块级分词器
//
// 不启用任何数学扩展，公式在进入这里之前已经被替换成占位符。
type Tokenizer struct {
	md goldmark.Markdown
}

// NewTokenizer 创建分词器
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM, // 表格、删除线、任务列表、自动链接
				meta.Meta,     // YAML front matter
			),
		),
	}
}

// Tokenize 将逐行文本解析为语法树
func (t *Tokenizer) Tokenize(lines []string) (*Tree, error) {
	source := []byte(strings.Join(lines, ""))

	pc := parser.NewContext()
	root := t.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))

	metadata, err := meta.TryGet(pc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}

	return &Tree{
		Root:   root,
		Source: source,
		Meta:   metadata,
	}, nil
}
