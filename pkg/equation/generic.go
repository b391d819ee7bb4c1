package equation

import (
	"fmt"
)

const (
	fieldTitle    = "title"
	fieldChildren = "children"
)

type genericFrame struct {
	node  map[string]any
	path  string
	depth int
}

// RestoreGeneric 恢复外部渲染器产出的通用块树
//
// tree 是 JSON 解码后的 []any 或 map[string]any，节点使用 title 与 children 字段。
// 字段类型不符合约定时返回 ErrTreeShape，这类错误直接交给调用方处理。
// 先完整检查一遍结构再修改，返回错误时 tree 保持原样。
func RestoreGeneric(tree any, t *Table, opts RestoreOptions) error {
	if err := walkGeneric(tree, opts, func(map[string]any, string) {}); err != nil {
		return err
	}
	return walkGeneric(tree, opts, func(node map[string]any, title string) {
		node[fieldTitle] = RestoreText(title, t)
	})
}

// walkGeneric 先序遍历通用块树，对每个带 title 的节点调用 visit
func walkGeneric(tree any, opts RestoreOptions, visit func(node map[string]any, title string)) error {
	roots, err := genericChildren(tree, "$", true)
	if err != nil {
		return err
	}

	stack := make([]genericFrame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if opts.MaxDepth > 0 && top.depth >= opts.MaxDepth {
			return fmt.Errorf("%w: %s", ErrTreeTooDeep, top.path)
		}

		if raw, ok := top.node[fieldTitle]; ok && raw != nil {
			title, ok := raw.(string)
			if !ok {
				return &ShapeError{
					Path:   top.path + "." + fieldTitle,
					Reason: fmt.Sprintf("expected string, got %T", raw),
					Err:    ErrTreeShape,
				}
			}
			visit(top.node, title)
		}

		raw, ok := top.node[fieldChildren]
		if !ok || raw == nil {
			continue
		}
		children, err := genericChildren(raw, top.path+"."+fieldChildren, false)
		if err != nil {
			return err
		}
		for i := len(children) - 1; i >= 0; i-- {
			children[i].depth = top.depth + 1
			stack = append(stack, children[i])
		}
	}
	return nil
}

// genericChildren 把一组节点转换为待处理的帧，只有根节点允许是单个对象
func genericChildren(v any, path string, allowObject bool) ([]genericFrame, error) {
	switch nodes := v.(type) {
	case map[string]any:
		if !allowObject {
			return nil, &ShapeError{Path: path, Reason: "expected array, got object", Err: ErrTreeShape}
		}
		return []genericFrame{{node: nodes, path: path}}, nil
	case []any:
		frames := make([]genericFrame, 0, len(nodes))
		for i, n := range nodes {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			m, ok := n.(map[string]any)
			if !ok {
				return nil, &ShapeError{
					Path:   itemPath,
					Reason: fmt.Sprintf("expected object, got %T", n),
					Err:    ErrTreeShape,
				}
			}
			frames = append(frames, genericFrame{node: m, path: itemPath})
		}
		return frames, nil
	default:
		return nil, &ShapeError{
			Path:   path,
			Reason: fmt.Sprintf("expected array or object, got %T", v),
			Err:    ErrTreeShape,
		}
	}
}
