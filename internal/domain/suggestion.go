package domain

import "reflect"

// Suggestion is one entry offered by the dropdown. Implementations are
// compared by identity, so the dynamic type should be a pointer.
type Suggestion interface {
	Label() string
	Group() string
}

// Keyed is an optional identity projection for suggestion types that are not
// comparable with ==.
type Keyed interface {
	Key() string
}

// Item is the default Suggestion implementation.
type Item struct {
	Text     string
	Category string
	Value    string // inserted into the input on commit; Text if empty
	Detail   string
}

func (i *Item) Label() string { return i.Text }
func (i *Item) Group() string { return i.Category }

// InsertValue returns the text a commit should place into the input.
func (i *Item) InsertValue() string {
	if i.Value != "" {
		return i.Value
	}
	return i.Text
}

// NewItem creates an ungrouped item
func NewItem(text string) *Item {
	return &Item{Text: text}
}

// Same reports whether a and b are the same suggestion.
// Comparable values are compared with ==, which for pointers is identity.
// Values of non-comparable types fall back to their Keyed projection.
func Same(a, b Suggestion) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	ka, okA := a.(Keyed)
	kb, okB := b.(Keyed)
	return okA && okB && ka.Key() == kb.Key()
}

// IndexOf returns the position of s in items, or -1.
func IndexOf(items []Suggestion, s Suggestion) int {
	if s == nil {
		return -1
	}
	for i, it := range items {
		if Same(it, s) {
			return i
		}
	}
	return -1
}
