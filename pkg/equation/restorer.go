package equation

import (
	"fmt"
	"strings"

	"github.com/nerdneilsfield/md2block/pkg/block"
)

// RestoreOptions 恢复选项
type RestoreOptions struct {
	// MaxDepth 大于 0 时限制块树深度，超过返回 ErrTreeTooDeep
	MaxDepth int
}

// RestoreText 将文本中的占位符替换回公式原文
//
// 对每个公式依次做全量替换。表中不存在的占位符保持不变。
func RestoreText(s string, t *Table) string {
	if t.Len() == 0 || !strings.Contains(s, placeholderPrefix) {
		return s
	}
	for _, e := range t.entries {
		s = strings.ReplaceAll(s, e.Placeholder, e.Equation.Text)
	}
	return s
}

// RestoreLines 对逐行文本做恢复
func RestoreLines(lines []string, t *Table) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = RestoreText(line, t)
	}
	return out
}

// Restore 先序遍历块树，原地恢复每个节点的 Title
//
// 没有 Title 的节点照样会继续处理其子块。
func Restore(blocks []*block.Block, t *Table, opts RestoreOptions) error {
	return block.Walk(blocks, func(b *block.Block, depth int) error {
		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			return fmt.Errorf("%w: depth %d (limit %d)", ErrTreeTooDeep, depth+1, opts.MaxDepth)
		}
		if b.HasTitle() {
			b.Title = RestoreText(b.Title, t)
		}
		return nil
	})
}

// Leftovers 返回恢复后仍残留在块树中的占位符
func Leftovers(blocks []*block.Block) []string {
	var found []string
	_ = block.Walk(blocks, func(b *block.Block, _ int) error {
		found = append(found, FindPlaceholders(b.Title)...)
		return nil
	})
	return found
}
