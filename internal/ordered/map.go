// Package ordered implements an insertion-ordered map type.
package ordered

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

var _ interface {
	json.Marshaler
	yaml.IsZeroer
	yaml.Marshaler
} = (*Map[string, int])(nil)

// Map is a map that remembers the order keys were first inserted in. Setting
// an existing key replaces its value without moving it.
type Map[K comparable, V any] struct {
	items []Tuple[K, V]
	index map[K]int
}

// MapSS is a convenience alias to reduce keyboard wear.
type MapSS = Map[string, string]

// NewMap returns a new empty map with a given initial capacity.
func NewMap[K comparable, V any](cap int) *Map[K, V] {
	return &Map[K, V]{
		items: make([]Tuple[K, V], 0, cap),
		index: make(map[K]int, cap),
	}
}

// Len returns the number of items in the map.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.index)
}

// IsZero reports if m is nil or empty. It is used by yaml.v3 to check
// emptiness.
func (m *Map[K, V]) IsZero() bool {
	return m == nil || len(m.index) == 0
}

// Get retrieves the value associated with a key, and reports if it was found.
func (m *Map[K, V]) Get(k K) (V, bool) {
	var zv V
	if m == nil {
		return zv, false
	}
	idx, ok := m.index[k]
	if !ok {
		return zv, false
	}
	return m.items[idx].Value, true
}

// Set sets the value for the given key. If the key exists, it remains in its
// existing spot, otherwise it is added to the end of the map.
func (m *Map[K, V]) Set(k K, v V) {
	// Suppose someone makes Map with new(Map). The one thing we need to not be
	// nil will be nil.
	if m.index == nil {
		m.index = make(map[K]int, 1)
	}

	if idx, exists := m.index[k]; exists {
		m.items[idx].Value = v
		return
	}

	m.index[k] = len(m.items)
	m.items = append(m.items, Tuple[K, V]{
		Key:   k,
		Value: v,
	})
}

// Range ranges over the map (in order). If f returns an error, it stops ranging
// and returns that error.
func (m *Map[K, V]) Range(f func(k K, v V) error) error {
	if m.IsZero() {
		return nil
	}
	for _, p := range m.items {
		if err := f(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON marshals the ordered map to JSON. It preserves the map order in
// the output.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	// NB: writes to b don't error, but JSON encoding could error.
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	b.WriteRune('{')
	first := true
	err := m.Range(func(k K, v V) error {
		if !first {
			b.WriteRune(',')
		}
		first = false
		if err := enc.Encode(k); err != nil {
			return err
		}
		b.WriteRune(':')
		return enc.Encode(v)
	})
	if err != nil {
		return nil, err
	}
	b.WriteRune('}')
	return b.Bytes(), nil
}

// MarshalYAML returns a *yaml.Node encoding this map (in order), or an error
// if any of the items could not be encoded into a *yaml.Node.
func (m *Map[K, V]) MarshalYAML() (any, error) {
	n := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}
	err := m.Range(func(k K, v V) error {
		nk, nv := new(yaml.Node), new(yaml.Node)
		if err := nk.Encode(k); err != nil {
			return err
		}
		if err := nv.Encode(v); err != nil {
			return err
		}
		n.Content = append(n.Content, nk, nv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}
