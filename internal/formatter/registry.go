package formatter

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry 输出格式注册表
type Registry struct {
	encoders map[string]Encoder
	mu       sync.RWMutex
}

// globalRegistry 全局注册表实例
var globalRegistry = NewRegistry()

func init() {
	Register(JSONEncoder{})
	Register(YAMLEncoder{})
	Register(TOMLEncoder{})
}

// NewRegistry 创建新的注册表
func NewRegistry() *Registry {
	return &Registry{encoders: make(map[string]Encoder)}
}

// Register 注册到全局注册表
func Register(enc Encoder) {
	globalRegistry.Register(enc)
}

// Get 从全局注册表获取编码器
func Get(name string) (Encoder, error) {
	return globalRegistry.Get(name)
}

// Names 返回全局注册表中的所有格式
func Names() []string {
	return globalRegistry.Names()
}

// Register 注册编码器，同名覆盖
func (r *Registry) Register(enc Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encoders[strings.ToLower(enc.Name())] = enc
}

// Get 按名称获取编码器，"yml" 视为 "yaml"
func (r *Registry) Get(name string) (Encoder, error) {
	key := strings.ToLower(name)
	if key == "yml" {
		key = "yaml"
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	enc, ok := r.encoders[key]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q (available: %s)", name, strings.Join(r.namesLocked(), ", "))
	}
	return enc, nil
}

// Names 返回已注册的格式名称（排序）
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.encoders))
	for name := range r.encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
