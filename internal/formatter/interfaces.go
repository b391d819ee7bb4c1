package formatter

import (
	"io"
)

// Encoder 将转换结果序列化输出
type Encoder interface {
	// Encode 将 v 写入 w
	Encode(w io.Writer, v any) error

	// Name 返回格式名称
	Name() string

	// Extension 返回输出文件扩展名（不含 .）
	Extension() string
}

// FormatError 格式化错误
type FormatError struct {
	Formatter string
	Reason    string
	Err       error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return e.Formatter + ": " + e.Reason + ": " + e.Err.Error()
	}
	return e.Formatter + ": " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
