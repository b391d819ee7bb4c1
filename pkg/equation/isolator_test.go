package equation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsolate(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "no delimiters",
			input: []string{"a\n", "b\n"},
			want:  []string{"a\n", "b\n"},
		},
		{
			name:  "pair followed by text",
			input: []string{"a\n", "$$\n", "x\n", "$$\n", "b\n"},
			want:  []string{"a\n", "$$\n", "x\n", "$$\n", "\n", "b\n"},
		},
		{
			name:  "pair at end of input",
			input: []string{"$$\n", "x\n", "$$\n"},
			want:  []string{"$$\n", "x\n", "$$\n", "\n"},
		},
		{
			name:  "pair already followed by blank",
			input: []string{"$$\n", "x\n", "$$\n", "\n", "b\n"},
			want:  []string{"$$\n", "x\n", "$$\n", "\n", "b\n"},
		},
		{
			name:  "unterminated",
			input: []string{"a\n", "$$\n", "x\n"},
			want:  []string{"a\n", "$$\n", "x\n"},
		},
		{
			name:  "two pairs",
			input: []string{"$$\n", "x\n", "  $$ \n", "$$\n", "y\n", "$$\n", "z\n"},
			want:  []string{"$$\n", "x\n", "  $$ \n", "\n", "$$\n", "y\n", "$$\n", "\n", "z\n"},
		},
		{
			name:  "placeholders untouched",
			input: []string{Placeholder(0) + "\n", "text " + Placeholder(1) + "\n"},
			want:  []string{Placeholder(0) + "\n", "text " + Placeholder(1) + "\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Isolate(tt.input)
			assert.Equal(t, tt.want, got)
			// 再执行一次结果不变
			assert.Equal(t, got, Isolate(got))
		})
	}
}

func TestIsolateEmpty(t *testing.T) {
	assert.Empty(t, Isolate(nil))
}
