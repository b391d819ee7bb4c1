package markdown

import (
	"fmt"

	"github.com/nerdneilsfield/md2block/pkg/block"
)

// Processor 串联分词与渲染
type Processor struct {
	tokenizer *Tokenizer
	renderer  *Renderer
}

// NewProcessor 创建 Markdown 处理器
func NewProcessor() *Processor {
	return &Processor{
		tokenizer: NewTokenizer(),
		renderer:  NewRenderer(),
	}
}

// Render 将规范化后的行渲染为块文档
func (p *Processor) Render(lines []string) (*block.Document, error) {
	tree, err := p.tokenizer.Tokenize(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize markdown: %w", err)
	}

	blocks, err := p.renderer.Render(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to render blocks: %w", err)
	}

	return &block.Document{Meta: tree.Meta, Blocks: blocks}, nil
}
