package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nerdneilsfield/md2block/pkg/block"
	"github.com/nerdneilsfield/md2block/pkg/equation"
	"go.uber.org/zap"
)

// BlockRenderer 外部分词器与渲染器，不需要理解公式
type BlockRenderer interface {
	Render(lines []string) (*block.Document, error)
}

// Options 转换选项
type Options struct {
	Strict   bool // 未闭合的公式块直接报错
	MaxDepth int  // 块树最大深度，0 表示不限制
	Workers  int  // 多文件并发数
}

// Result 单个文档的转换结果
type Result struct {
	DocumentID   string
	Path         string
	Document     *block.Document
	Table        *equation.Table
	Unterminated *equation.Fragment
	Leftovers    []string // 恢复后仍残留的占位符
}

// Converter 串联公式提取、分词渲染与公式恢复
//
// 公式表在每次转换时单独创建，不同文档之间没有共享状态。
type Converter struct {
	extractor *equation.Extractor
	renderer  BlockRenderer
	opts      Options
	logger    *zap.Logger
}

// NewConverter 创建转换器
func NewConverter(renderer BlockRenderer, opts Options, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Converter{
		extractor: equation.NewExtractor(equation.Options{Strict: opts.Strict}),
		renderer:  renderer,
		opts:      opts,
		logger:    logger,
	}
}

// Prepare 提取公式并规范化分隔行，返回可以直接交给分词器的行
func (c *Converter) Prepare(lines []string) (*equation.Extraction, []string, error) {
	extraction, err := c.extractor.Extract(lines)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract equations: %w", err)
	}

	if f := extraction.Unterminated; f != nil {
		c.logger.Warn("公式块未闭合，内容将原样保留",
			zap.Int("line", f.Line),
			zap.Int("lines", len(f.Lines)))
	}

	return extraction, equation.Isolate(extraction.Lines), nil
}

// Convert 转换一个文档
//
// ctx 只在各阶段之间检查，单个阶段内部不会被打断。
func (c *Converter) Convert(ctx context.Context, lines []string) (*Result, error) {
	result := &Result{DocumentID: uuid.NewString()}
	log := c.logger.With(zap.String("document_id", result.DocumentID))

	extraction, normalized, err := c.Prepare(lines)
	if err != nil {
		return nil, err
	}
	result.Table = extraction.Table
	result.Unterminated = extraction.Unterminated
	log.Debug("公式提取完成",
		zap.Int("equations", extraction.Table.Len()),
		zap.Int("lines", len(normalized)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := c.renderer.Render(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	log.Debug("块渲染完成", zap.Int("blocks", block.Count(doc.Blocks)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := equation.Restore(doc.Blocks, extraction.Table, equation.RestoreOptions{MaxDepth: c.opts.MaxDepth}); err != nil {
		return nil, fmt.Errorf("failed to restore equations: %w", err)
	}
	result.Document = doc

	if leftovers := equation.Leftovers(doc.Blocks); len(leftovers) > 0 {
		result.Leftovers = leftovers
		log.Warn("恢复后仍有占位符残留", zap.Strings("placeholders", leftovers))
	}

	return result, nil
}
