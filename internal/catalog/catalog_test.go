package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarter_ParsesAndCoversRuleCategories(t *testing.T) {
	items, err := Starter()
	require.NoError(t, err)

	categories := map[string]int{}
	for _, it := range items {
		categories[it.Category]++
	}
	for _, c := range []string{"stress", "anxiety", "depression", "general"} {
		assert.Positive(t, categories[c], "starter catalog needs %s content", c)
	}
}

func TestParse_ReportsEveryProblem(t *testing.T) {
	doc := `
items:
  - {id: a, title: A, category: general, type: podcast}
  - {id: a, title: "", category: general}
  - {title: C, category: general, difficulty: extreme}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `items[0].Type: failed "oneof"`)
	assert.Contains(t, msg, `items[1].Title: failed "required"`)
	assert.Contains(t, msg, `items[1]: duplicate id "a"`)
	assert.Contains(t, msg, `items[2].ID: failed "required"`)
	assert.Contains(t, msg, `items[2].Difficulty: failed "oneof"`)
}

func TestParse_RejectsUnknownFieldsAndEmptyCatalog(t *testing.T) {
	_, err := Parse([]byte("items:\n  - {id: a, title: A, category: general, colour: red}\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("items: []\n"))
	assert.EqualError(t, err, "catalog has no items")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - {id: walk, title: Walk, category: general, type: exercise}\n"), 0o644))

	items, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "walk", items[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
