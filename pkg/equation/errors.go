package equation

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedBlock 多行公式块缺少结束分隔符
	ErrUnterminatedBlock = errors.New("unterminated block equation")
	// ErrPlaceholderCollision 输入中已存在占位符格式的文本
	ErrPlaceholderCollision = errors.New("input already contains placeholder text")
	// ErrTreeShape 块树的字段类型不符合约定
	ErrTreeShape = errors.New("unexpected block tree shape")
	// ErrTreeTooDeep 块树深度超过限制
	ErrTreeTooDeep = errors.New("block tree exceeds maximum depth")
)

// LineError 带行号的提取错误
type LineError struct {
	Line   int
	Detail string
	Err    error
}

func (e *LineError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Detail)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ShapeError 块树结构错误，Path 指出出错的位置
type ShapeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v at %s: %s", e.Err, e.Path, e.Reason)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
