package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextAtlasEmbeddedFont(t *testing.T) {
	atlas, err := NewTextAtlas("", 16)
	require.NoError(t, err)

	for _, r := range "Move 0123 xyz" {
		if r == ' ' {
			continue
		}
		_, ok := atlas.Glyphs[r]
		assert.True(t, ok, "missing glyph %q", r)
	}
	assert.Greater(t, atlas.LineHeight(1), float32(0))
}

func TestTextAtlasBuildVertices(t *testing.T) {
	atlas, err := NewTextAtlas("", 16)
	require.NoError(t, err)

	verts := atlas.BuildVertices([]TextItem{{Text: "ab\nc", Scale: 1, Color: ColorVertex}}, 800, 600)
	assert.Len(t, verts, 3*6)
	for _, v := range verts {
		if v.Pos[0] < -1.5 || v.Pos[0] > 1.5 || v.Pos[1] < -1.5 || v.Pos[1] > 1.5 {
			t.Errorf("vertex outside NDC: %v", v.Pos)
		}
	}

	assert.Empty(t, atlas.BuildVertices([]TextItem{{Text: "x"}}, 0, 0))
}

func TestTextAtlasMissingFont(t *testing.T) {
	_, err := NewTextAtlas("/does/not/exist.ttf", 12)
	assert.Error(t, err)
}
