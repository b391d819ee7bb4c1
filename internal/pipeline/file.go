package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/nerdneilsfield/md2block/pkg/equation"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// replacementChar 解码器替换无效字节时写入的 U+FFFD
var replacementChar = []byte("\uFFFD")

// ReadLines 读取文件并按行切分
//
// 根据 BOM 识别 UTF-8/UTF-16 编码，没有 BOM 时按 UTF-8 处理。
// 解码是有损的：无效字节会被替换为 U+FFFD，需要提示时使用 Converter.ReadFile。
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return DecodeLines(f)
}

// DecodeLines 从 reader 解码并按行切分，无效字节同样被替换为 U+FFFD
func DecodeLines(r io.Reader) ([]string, error) {
	text, _, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return equation.NormalizeLines(text), nil
}

// Decode 解码全部输入
//
// replaced 为解码时被替换成 U+FFFD 的无效序列数，原文中本来就有的 U+FFFD 不计入。
func Decode(r io.Reader) (text string, replaced int, err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read input: %w", err)
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", 0, fmt.Errorf("failed to decode input: %w", err)
	}

	replaced = bytes.Count(decoded, replacementChar) - bytes.Count(raw, replacementChar)
	if replaced < 0 {
		replaced = 0
	}
	return string(decoded), replaced, nil
}

// ReadFile 读取并解码文件，存在无效字节时记录警告
func (c *Converter) ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	text, replaced, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if replaced > 0 {
		c.logger.Warn("输入包含无效的 UTF-8 字节，已替换为 U+FFFD",
			zap.String("file", path),
			zap.Int("replaced", replaced))
	}
	return equation.NormalizeLines(text), nil
}

// ConvertFile 读取并转换单个文件
func (c *Converter) ConvertFile(ctx context.Context, path string) (*Result, error) {
	lines, err := c.ReadFile(path)
	if err != nil {
		return nil, err
	}

	result, err := c.Convert(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	result.Path = path

	c.logger.Info("文件转换完成",
		zap.String("file", path),
		zap.Int("equations", result.Table.Len()),
		zap.Int("blocks", len(result.Document.Blocks)))
	return result, nil
}

// ConvertFiles 并发转换多个文件，结果顺序与输入一致
//
// 返回输入顺序中第一个失败文件的错误，其余文件仍会继续处理。
func (c *Converter) ConvertFiles(ctx context.Context, paths []string) ([]*Result, error) {
	type outcome struct {
		index  int
		result *Result
		err    error
	}

	outcomes := make(chan outcome, len(paths))
	var wg sync.WaitGroup

	// 限制并发数
	semaphore := make(chan struct{}, c.opts.Workers)

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result, err := c.ConvertFile(ctx, p)
			outcomes <- outcome{index: idx, result: result, err: err}
		}(i, path)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	results := make([]*Result, len(paths))
	errs := make([]error, len(paths))
	for o := range outcomes {
		if o.err != nil {
			c.logger.Error("文件转换失败", zap.Error(o.err))
		}
		results[o.index] = o.result
		errs[o.index] = o.err
	}

	var firstErr error
	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}

	return results, firstErr
}
