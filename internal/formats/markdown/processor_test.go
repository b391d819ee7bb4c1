package markdown

import (
	"strings"
	"testing"

	"github.com/nerdneilsfield/md2block/pkg/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `---
title: Demo
---
# Heading **EQUATION_0**

Paragraph with *em* and ` + "`code`" + ` and [link](http://x.y).

**EQUATION_2**

- item one
- item **EQUATION_1**
  - nested

1. first

> quote line
>
> second para

` + "```go" + `
fmt.Println("hi")
` + "```" + `

***

| a | b |
|---|---|
| 1 | 2 |

- [x] done
- [ ] todo

![alt text](img.png)
`

func lines(s string) []string {
	return strings.SplitAfter(s, "\n")
}

func TestProcessorRender(t *testing.T) {
	doc, err := NewProcessor().Render(lines(sample))
	require.NoError(t, err)

	assert.Equal(t, "Demo", doc.Meta["title"])

	blocks := doc.Blocks
	require.Len(t, blocks, 13)

	t.Run("heading", func(t *testing.T) {
		assert.Equal(t, block.TypeHeader, blocks[0].Type)
		assert.Equal(t, "Heading **EQUATION_0**", blocks[0].Title)
	})

	t.Run("paragraph keeps inline markup", func(t *testing.T) {
		assert.Equal(t, block.TypeText, blocks[1].Type)
		assert.Equal(t, "Paragraph with *em* and `code` and [link](http://x.y).", blocks[1].Title)
	})

	t.Run("placeholder paragraph", func(t *testing.T) {
		assert.Equal(t, block.TypeText, blocks[2].Type)
		assert.Equal(t, "**EQUATION_2**", blocks[2].Title)
	})

	t.Run("lists", func(t *testing.T) {
		assert.Equal(t, block.TypeBulletedList, blocks[3].Type)
		assert.Equal(t, "item one", blocks[3].Title)

		assert.Equal(t, block.TypeBulletedList, blocks[4].Type)
		assert.Equal(t, "item **EQUATION_1**", blocks[4].Title)
		require.Len(t, blocks[4].Children, 1)
		assert.Equal(t, block.TypeBulletedList, blocks[4].Children[0].Type)
		assert.Equal(t, "nested", blocks[4].Children[0].Title)

		assert.Equal(t, block.TypeNumberedList, blocks[5].Type)
		assert.Equal(t, "first", blocks[5].Title)
	})

	t.Run("quote", func(t *testing.T) {
		assert.Equal(t, block.TypeQuote, blocks[6].Type)
		assert.Equal(t, "quote line", blocks[6].Title)
		require.Len(t, blocks[6].Children, 1)
		assert.Equal(t, "second para", blocks[6].Children[0].Title)
	})

	t.Run("code", func(t *testing.T) {
		assert.Equal(t, block.TypeCode, blocks[7].Type)
		assert.Equal(t, "go", blocks[7].Language)
		assert.Equal(t, `fmt.Println("hi")`, blocks[7].Title)
	})

	t.Run("divider", func(t *testing.T) {
		assert.Equal(t, block.TypeDivider, blocks[8].Type)
		assert.False(t, blocks[8].HasTitle())
	})

	t.Run("table", func(t *testing.T) {
		assert.Equal(t, block.TypeTable, blocks[9].Type)
		require.Len(t, blocks[9].Children, 2)
		assert.Equal(t, "a | b", strings.Join(strings.Fields(blocks[9].Children[0].Title), " "))
		assert.Equal(t, "1 | 2", strings.Join(strings.Fields(blocks[9].Children[1].Title), " "))
	})

	t.Run("task list", func(t *testing.T) {
		assert.Equal(t, block.TypeToDo, blocks[10].Type)
		assert.Equal(t, "done", blocks[10].Title)
		require.NotNil(t, blocks[10].Checked)
		assert.True(t, *blocks[10].Checked)

		assert.Equal(t, block.TypeToDo, blocks[11].Type)
		require.NotNil(t, blocks[11].Checked)
		assert.False(t, *blocks[11].Checked)
	})

	t.Run("image", func(t *testing.T) {
		assert.Equal(t, block.TypeImage, blocks[12].Type)
		assert.Equal(t, "img.png", blocks[12].Source)
		assert.Equal(t, "alt text", blocks[12].Title)
	})
}

func TestProcessorWithoutFrontMatter(t *testing.T) {
	doc, err := NewProcessor().Render(lines("plain text\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.Meta)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "plain text", doc.Blocks[0].Title)
}

func TestRendererNilTree(t *testing.T) {
	_, err := NewRenderer().Render(nil)
	assert.Error(t, err)
}

// TestRenderNormalizesEmphasisMarker 下划线强调输出为星号
func TestRenderNormalizesEmphasisMarker(t *testing.T) {
	doc, err := NewProcessor().Render(lines("_em_ and __strong__\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "*em* and **strong**", doc.Blocks[0].Title)
}
