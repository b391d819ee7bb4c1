package markdown

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nerdneilsfield/md2block/pkg/block"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ErrUnsupportedNode 渲染器无法处理的块级节点
var ErrUnsupportedNode = errors.New("unsupported markdown node")

// Renderer 将 goldmark 语法树渲染为块树
//
// 行内内容会重新序列化为 Markdown 风格的文本（**粗体**、*斜体*、`代码`、[链接](url)），
// 因此占位符能够原样保留在 Title 中。
// 强调统一输出为 * 标记，源文中的 _x_、__x__ 会变成 *x*、**x**。
type Renderer struct{}

// NewRenderer 创建块渲染器
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render 渲染整棵语法树
func (r *Renderer) Render(tree *Tree) ([]*block.Block, error) {
	if tree == nil || tree.Root == nil {
		return nil, fmt.Errorf("tree is nil")
	}
	return r.renderChildren(tree.Root, tree.Source)
}

// renderChildren 依次渲染 n 的所有块级子节点
func (r *Renderer) renderChildren(n ast.Node, source []byte) ([]*block.Block, error) {
	var blocks []*block.Block
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		rendered, err := r.renderBlock(child, source)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, rendered...)
	}
	return blocks, nil
}

// renderBlock 渲染单个块级节点，列表会展开为多个块
func (r *Renderer) renderBlock(n ast.Node, source []byte) ([]*block.Block, error) {
	switch node := n.(type) {
	case *ast.Heading:
		return one(&block.Block{Type: headingType(node.Level), Title: inline(node, source)}), nil

	case *ast.Paragraph:
		if img, ok := soleImage(node); ok {
			return one(&block.Block{
				Type:   block.TypeImage,
				Title:  inline(img, source),
				Source: string(img.Destination),
			}), nil
		}
		return one(&block.Block{Type: block.TypeText, Title: inline(node, source)}), nil

	case *ast.TextBlock:
		return one(&block.Block{Type: block.TypeText, Title: inline(node, source)}), nil

	case *ast.Blockquote:
		return r.renderContainer(node, block.TypeQuote, source)

	case *ast.List:
		itemType := block.TypeBulletedList
		if node.IsOrdered() {
			itemType = block.TypeNumberedList
		}
		var items []*block.Block
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			rendered, err := r.renderContainer(item, itemType, source)
			if err != nil {
				return nil, err
			}
			items = append(items, rendered...)
		}
		return items, nil

	case *ast.FencedCodeBlock:
		return one(&block.Block{
			Type:     block.TypeCode,
			Title:    rawLines(node.Lines(), source),
			Language: string(node.Language(source)),
		}), nil

	case *ast.CodeBlock:
		return one(&block.Block{Type: block.TypeCode, Title: rawLines(node.Lines(), source)}), nil

	case *ast.HTMLBlock:
		html := rawLines(node.Lines(), source)
		if node.HasClosure() {
			html += "\n" + strings.TrimRight(string(node.ClosureLine.Value(source)), "\n")
		}
		return one(&block.Block{Type: block.TypeText, Title: html}), nil

	case *ast.ThematicBreak:
		return one(&block.Block{Type: block.TypeDivider}), nil

	case *east.Table:
		table := &block.Block{Type: block.TypeTable}
		for row := node.FirstChild(); row != nil; row = row.NextSibling() {
			table.Append(&block.Block{Type: block.TypeTableRow, Title: tableRow(row, source)})
		}
		return one(table), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Kind().String())
	}
}

// renderContainer 渲染引用或列表项：第一个段落作为标题，其余内容作为子块
func (r *Renderer) renderContainer(n ast.Node, typ block.Type, source []byte) ([]*block.Block, error) {
	b := &block.Block{Type: typ}

	first := n.FirstChild()
	if first != nil && isTextual(first) {
		if box, ok := first.FirstChild().(*east.TaskCheckBox); ok && typ != block.TypeQuote {
			checked := box.IsChecked
			b.Type = block.TypeToDo
			b.Checked = &checked
		}
		b.Title = strings.TrimLeft(inline(first, source), " ")
		first = first.NextSibling()
	}

	for child := first; child != nil; child = child.NextSibling() {
		rendered, err := r.renderBlock(child, source)
		if err != nil {
			return nil, err
		}
		b.Append(rendered...)
	}
	return one(b), nil
}

func one(b *block.Block) []*block.Block {
	return []*block.Block{b}
}

func headingType(level int) block.Type {
	switch level {
	case 1:
		return block.TypeHeader
	case 2:
		return block.TypeSubHeader
	default:
		return block.TypeSubSubHeader
	}
}

func isTextual(n ast.Node) bool {
	switch n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return true
	}
	return false
}

// soleImage 段落只包含一张图片时返回该图片
func soleImage(p *ast.Paragraph) (*ast.Image, bool) {
	if p.ChildCount() != 1 {
		return nil, false
	}
	img, ok := p.FirstChild().(*ast.Image)
	return img, ok
}

// rawLines 拼接块内原始行，去掉末尾换行
func rawLines(lines *text.Segments, source []byte) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}

// tableRow 将一行单元格拼接为 "a | b | c"
func tableRow(row ast.Node, source []byte) string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, inline(cell, source))
	}
	return strings.Join(cells, " | ")
}
