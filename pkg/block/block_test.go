package block

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() []*Block {
	return []*Block{
		{Type: TypeHeader, Title: "a", Children: []*Block{
			{Type: TypeText, Title: "b", Children: []*Block{
				{Type: TypeText, Title: "c"},
			}},
			{Type: TypeText, Title: "d"},
		}},
		{Type: TypeDivider},
		nil,
		{Type: TypeText, Title: "e"},
	}
}

// TestWalkPreOrder 先序遍历，子块按原顺序访问
func TestWalkPreOrder(t *testing.T) {
	var titles []string
	var depths []int
	err := Walk(sampleTree(), func(b *Block, depth int) error {
		titles = append(titles, b.Title)
		depths = append(depths, depth)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "", "e"}, titles)
	assert.Equal(t, []int{0, 1, 2, 1, 0, 0}, depths)
}

func TestWalkStopsOnError(t *testing.T) {
	stop := errors.New("stop")
	visited := 0
	err := Walk(sampleTree(), func(b *Block, _ int) error {
		visited++
		if b.Title == "b" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, visited)
}

// TestWalkDeepTree 深度远超递归习惯上限也能遍历
func TestWalkDeepTree(t *testing.T) {
	root := &Block{Type: TypeText, Title: "0"}
	cur := root
	for i := 0; i < 100000; i++ {
		child := &Block{Type: TypeText}
		cur.Append(child)
		cur = child
	}

	maxDepth := 0
	require.NoError(t, Walk([]*Block{root}, func(_ *Block, depth int) error {
		if depth > maxDepth {
			maxDepth = depth
		}
		return nil
	}))
	assert.Equal(t, 100000, maxDepth)
	assert.Equal(t, 100001, Count([]*Block{root}))
}

func TestBlockHelpers(t *testing.T) {
	b := &Block{Type: TypeQuote}
	assert.False(t, b.HasTitle())
	assert.False(t, b.HasChildren())

	b.Title = "q"
	b.Append(&Block{Type: TypeText}, &Block{Type: TypeText})
	assert.True(t, b.HasTitle())
	assert.True(t, b.HasChildren())
	assert.Len(t, b.Children, 2)
	assert.Equal(t, 6, Count(sampleTree()))
}
