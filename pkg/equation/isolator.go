package equation

// Isolate 在成对的 $$ 分隔行之后补一个空行
//
// 块级结构需要用空行与上下文分隔，否则 goldmark 会把它并入相邻段落。
// 结束分隔符后面已经是空行时不再插入，因此重复执行结果不变。
// 未闭合的起始分隔符只原样输出缓冲内容，不补空行。
func Isolate(lines []string) []string {
	out := make([]string, 0, len(lines)+1)

	st := stateScanning
	var pending []string
	needBlank := false

	for _, line := range lines {
		if needBlank {
			needBlank = false
			if !isBlank(line) {
				out = append(out, "\n")
			}
		}

		switch st {
		case stateScanning:
			if isDelimiter(line) {
				st = stateInBlock
				pending = append(pending[:0], line)
				continue
			}
			out = append(out, line)

		case stateInBlock:
			pending = append(pending, line)
			if isDelimiter(line) {
				out = append(out, pending...)
				pending = pending[:0]
				st = stateScanning
				needBlank = true
			}
		}
	}

	switch {
	case st == stateInBlock:
		out = append(out, pending...)
	case needBlank:
		out = append(out, "\n")
	}

	return out
}
