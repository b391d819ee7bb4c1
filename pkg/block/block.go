package block

// Type 块类型，取值与 Notion 风格的块词汇保持一致
type Type string

const (
	TypeHeader       Type = "header"
	TypeSubHeader    Type = "sub_header"
	TypeSubSubHeader Type = "sub_sub_header"
	TypeText         Type = "text"
	TypeQuote        Type = "quote"
	TypeBulletedList Type = "bulleted_list"
	TypeNumberedList Type = "numbered_list"
	TypeToDo         Type = "to_do"
	TypeCode         Type = "code"
	TypeDivider      Type = "divider"
	TypeImage        Type = "image"
	TypeTable        Type = "table"
	TypeTableRow     Type = "table_row"
)

// Block 渲染后的块节点
//
// Title 是唯一可渲染的文本字段，为空表示该节点没有文本。
// Children 按顺序保存子块，深度不受限制。
type Block struct {
	Type     Type     `json:"type" yaml:"type" toml:"type"`
	Title    string   `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Language string   `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty"`
	Checked  *bool    `json:"checked,omitempty" yaml:"checked,omitempty" toml:"checked,omitempty"`
	Source   string   `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	Children []*Block `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// HasTitle 判断节点是否携带文本
func (b *Block) HasTitle() bool {
	return b.Title != ""
}

// HasChildren 判断节点是否有子块
func (b *Block) HasChildren() bool {
	return len(b.Children) > 0
}

// Append 追加子块
func (b *Block) Append(children ...*Block) {
	b.Children = append(b.Children, children...)
}

// WalkFunc 遍历回调，depth 从 0 开始
type WalkFunc func(b *Block, depth int) error

type frame struct {
	block *Block
	depth int
}

// Walk 以先序深度优先的方式遍历块树
//
// 使用显式栈而不是递归，树的深度不受 goroutine 栈限制。
// 回调返回错误时立即停止。
func Walk(blocks []*Block, fn WalkFunc) error {
	stack := make([]frame, 0, len(blocks))
	for i := len(blocks) - 1; i >= 0; i-- {
		stack = append(stack, frame{block: blocks[i]})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.block == nil {
			continue
		}

		if err := fn(top.block, top.depth); err != nil {
			return err
		}

		// 逆序压栈以保证子块按原顺序出栈
		for i := len(top.block.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{block: top.block.Children[i], depth: top.depth + 1})
		}
	}
	return nil
}

// Count 统计树中的节点数量
func Count(blocks []*Block) int {
	n := 0
	_ = Walk(blocks, func(*Block, int) error {
		n++
		return nil
	})
	return n
}

// Document 渲染器的输出：块树与文档元数据
type Document struct {
	Meta   map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
	Blocks []*Block       `json:"blocks" yaml:"blocks" toml:"blocks"`
}
