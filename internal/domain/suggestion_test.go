package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type keyedValue struct {
	id   string
	tags []string
}

func (k keyedValue) Label() string { return k.id }
func (k keyedValue) Group() string { return "" }
func (k keyedValue) Key() string   { return k.id }

type plainValue struct {
	tags []string
}

func (p plainValue) Label() string { return "" }
func (p plainValue) Group() string { return "" }

func TestSameUsesIdentityForPointers(t *testing.T) {
	a := &Item{Text: "abc"}
	b := &Item{Text: "abc"}

	assert.True(t, Same(a, a))
	assert.False(t, Same(a, b), "equal content must not make distinct items equal")
	assert.False(t, Same(a, nil))
	assert.True(t, Same(nil, nil))
}

func TestSameFallsBackToKey(t *testing.T) {
	a := keyedValue{id: "x", tags: []string{"1"}}
	b := keyedValue{id: "x"}
	c := keyedValue{id: "y"}

	assert.True(t, Same(a, b))
	assert.False(t, Same(a, c))
	assert.NotPanics(t, func() {
		assert.False(t, Same(plainValue{}, plainValue{}))
	})
}

func TestIndexOf(t *testing.T) {
	a, b := NewItem("a"), NewItem("b")
	items := []Suggestion{a, b}

	assert.Equal(t, 1, IndexOf(items, b))
	assert.Equal(t, -1, IndexOf(items, NewItem("b")))
	assert.Equal(t, -1, IndexOf(items, nil))
}

func TestItemInsertValue(t *testing.T) {
	assert.Equal(t, "abc", (&Item{Text: "abc"}).InsertValue())
	assert.Equal(t, "v", (&Item{Text: "abc", Value: "v"}).InsertValue())
}
