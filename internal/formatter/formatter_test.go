package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nerdneilsfield/md2block/pkg/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleDocument() *block.Document {
	return &block.Document{
		Blocks: []*block.Block{
			{Type: block.TypeHeader, Title: "Energy $E<mc^2$"},
			{Type: block.TypeBulletedList, Title: "item", Children: []*block.Block{
				{Type: block.TypeText, Title: "$$\nx\n$$"},
			}},
		},
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"json", "toml", "yaml"}, Names())

	enc, err := Get("YML")
	require.NoError(t, err)
	assert.Equal(t, "yaml", enc.Name())

	_, err = Get("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json, toml, yaml")
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONEncoder{}.Encode(&buf, sampleDocument()))

	// 不转义 HTML 字符
	assert.Contains(t, buf.String(), `"Energy $E<mc^2$"`)

	var decoded block.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Blocks, 2)
	assert.Equal(t, "$$\nx\n$$", decoded.Blocks[1].Children[0].Title)
}

func TestYAMLEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAMLEncoder{}.Encode(&buf, sampleDocument()))

	var decoded block.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Blocks, 2)
	assert.Equal(t, block.TypeHeader, decoded.Blocks[0].Type)
	assert.Equal(t, "$$\nx\n$$", decoded.Blocks[1].Children[0].Title)
}

func TestTOMLEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TOMLEncoder{}.Encode(&buf, sampleDocument()))

	out := buf.String()
	assert.Contains(t, out, "[[blocks]]")
	assert.Contains(t, out, `type = "header"`)
	assert.Contains(t, out, "[[blocks.children]]")
}

func TestFormatMarkdownKeepsPlaceholders(t *testing.T) {
	lines := []string{"# Title   **EQUATION_0**\n", "\n", "*   item **EQUATION_1**\n"}

	out, err := FormatMarkdown(lines)
	require.NoError(t, err)
	assert.Contains(t, out, "**EQUATION_0**")
	assert.Contains(t, out, "**EQUATION_1**")
	assert.True(t, strings.HasPrefix(out, "# Title"))
}
