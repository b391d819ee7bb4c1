package formatter

import (
	"encoding/json"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// JSONEncoder 缩进的 JSON 输出
type JSONEncoder struct{}

func (JSONEncoder) Name() string      { return "json" }
func (JSONEncoder) Extension() string { return "json" }

func (e JSONEncoder) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	// 公式里的 < > & 保持原样
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return &FormatError{Formatter: e.Name(), Reason: "encode failed", Err: err}
	}
	return nil
}

// YAMLEncoder YAML 输出
type YAMLEncoder struct{}

func (YAMLEncoder) Name() string      { return "yaml" }
func (YAMLEncoder) Extension() string { return "yaml" }

func (e YAMLEncoder) Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return &FormatError{Formatter: e.Name(), Reason: "encode failed", Err: err}
	}
	if err := enc.Close(); err != nil {
		return &FormatError{Formatter: e.Name(), Reason: "flush failed", Err: err}
	}
	return nil
}

// TOMLEncoder TOML 输出，v 的顶层必须是结构体或 map
type TOMLEncoder struct{}

func (TOMLEncoder) Name() string      { return "toml" }
func (TOMLEncoder) Extension() string { return "toml" }

func (e TOMLEncoder) Encode(w io.Writer, v any) error {
	if err := toml.NewEncoder(w).Encode(v); err != nil {
		return &FormatError{Formatter: e.Name(), Reason: "encode failed", Err: err}
	}
	return nil
}
