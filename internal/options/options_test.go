package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetKeepsInsertionOrder(t *testing.T) {
	s := NewSet(Option{Value: "2", Label: "Two"}, Option{Value: "1", Label: "One"})
	s.Add("3", "Three")
	s.Add("2", "Deux")

	assert.Equal(t, []Option{
		{Value: "2", Label: "Deux"},
		{Value: "1", Label: "One"},
		{Value: "3", Label: "Three"},
	}, s.Options())
	assert.Equal(t, 3, s.Len())

	label, ok := s.Label("1")
	assert.True(t, ok)
	assert.Equal(t, "One", label)
	_, ok = s.Label("9")
	assert.False(t, ok)
}

func TestOptionsReturnsCopy(t *testing.T) {
	s := NewSet(Option{Value: "a", Label: "A"})
	opts := s.Options()
	opts[0].Label = "mutated"
	label, _ := s.Label("a")
	assert.Equal(t, "A", label)
}

func TestNilMapIsEmpty(t *testing.T) {
	var m *Map
	_, ok := m.Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
}

func TestMapPutKeepsFirstPosition(t *testing.T) {
	m := NewMap()
	m.Put("B", NewSet())
	m.Put("A", NewSet())
	m.Put("B", NewSet(Option{Value: "3", Label: "Three"}))

	assert.Equal(t, []string{"B", "A"}, m.Keys())
	set, ok := m.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, 1, set.Len())
}

func TestFilterOptionsUsesKeysByDefault(t *testing.T) {
	m := NewMap()
	m.Put("A", NewSet())
	m.Put("B", NewSet())

	assert.Equal(t, []Option{
		{Value: "", Label: "---"},
		{Value: "A", Label: "A"},
		{Value: "B", Label: "B"},
	}, FilterOptions(m, nil))
}

func TestFilterOptionsExplicitValues(t *testing.T) {
	m := NewMap()
	m.Put("A", NewSet())

	got := FilterOptions(m, []string{"A", "C", "", "A"})
	assert.Equal(t, []Option{
		Placeholder(),
		{Value: "A", Label: "A"},
		{Value: "C", Label: "C"},
	}, got)
}

func TestSampleHasChains(t *testing.T) {
	m := Sample()
	assert.Equal(t, []string{"Stout", "Ball and Chain"}, m.Keys())
}
