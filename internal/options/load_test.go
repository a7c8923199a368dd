package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesDocumentOrder(t *testing.T) {
	doc := []byte(`{
		// chains
		"B": {"3": "Three"},
		"A": {"2": "Two", "1": "One",},
	}`)
	m, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, m.Keys())

	set, ok := m.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, []Option{{Value: "2", Label: "Two"}, {Value: "1", Label: "One"}}, set.Options())
}

func TestParseArrayShorthand(t *testing.T) {
	m, err := Parse([]byte(`{"Stout": ["Hollywood", "Pasadena"]}`))
	require.NoError(t, err)
	set, ok := m.Lookup("Stout")
	require.True(t, ok)
	assert.Equal(t, []Option{
		{Value: "Hollywood", Label: "Hollywood"},
		{Value: "Pasadena", Label: "Pasadena"},
	}, set.Options())
}

func TestParseEmptyDocument(t *testing.T) {
	m, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestParseRejectsMalformedShapes(t *testing.T) {
	cases := map[string]string{
		"array root":    `["A"]`,
		"number set":    `{"A": 1}`,
		"number label":  `{"A": {"1": 1}}`,
		"nested object": `{"A": {"1": {"x": "y"}}}`,
		"number item":   `{"A": ["x", 2]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseRejectsInvalidSyntax(t *testing.T) {
	_, err := Parse([]byte(`{"A": `))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformed)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"A": {"1": "One"}}`), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, m.Keys())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
