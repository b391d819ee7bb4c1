package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// inline 将节点的行内子节点序列化为文本
func inline(n ast.Node, source []byte) string {
	var b strings.Builder
	writeInlineChildren(&b, n, source)
	return b.String()
}

func writeInlineChildren(b *strings.Builder, n ast.Node, source []byte) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		writeInline(b, child, source)
	}
}

func writeInline(b *strings.Builder, n ast.Node, source []byte) {
	switch node := n.(type) {
	case *ast.Text:
		b.Write(node.Segment.Value(source))
		if node.SoftLineBreak() || node.HardLineBreak() {
			b.WriteByte('\n')
		}

	case *ast.String:
		b.Write(node.Value)

	case *ast.CodeSpan:
		b.WriteByte('`')
		writeInlineChildren(b, node, source)
		b.WriteByte('`')

	case *ast.Emphasis:
		marker := strings.Repeat("*", node.Level)
		b.WriteString(marker)
		writeInlineChildren(b, node, source)
		b.WriteString(marker)

	case *ast.Link:
		b.WriteByte('[')
		writeInlineChildren(b, node, source)
		b.WriteString("](")
		b.Write(node.Destination)
		b.WriteByte(')')

	case *ast.Image:
		b.WriteString("![")
		writeInlineChildren(b, node, source)
		b.WriteString("](")
		b.Write(node.Destination)
		b.WriteByte(')')

	case *ast.AutoLink:
		b.Write(node.URL(source))

	case *ast.RawHTML:
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			b.Write(seg.Value(source))
		}

	case *east.Strikethrough:
		b.WriteString("~~")
		writeInlineChildren(b, node, source)
		b.WriteString("~~")

	case *east.TaskCheckBox:
		// 由列表项处理

	default:
		writeInlineChildren(b, n, source)
	}
}
