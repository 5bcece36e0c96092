// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// OrderedMap is a string-keyed map that remembers insertion order.
// Overwriting a key keeps its original position.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap[V]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key and reports whether it was present.
func (m *OrderedMap[V]) Delete(key string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return []string{}
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	if m == nil {
		return append(buf, '}'), nil
	}
	for i, k := range m.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendQuoted(buf, k)
		buf = append(buf, ':')
		raw, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", k, err)
		}
		buf = append(buf, raw...)
	}
	return append(buf, '}'), nil
}

// Database is the whole persisted judging document.
//
// Submissions holds judge score entries and generic keys; RedXs holds
// disqualification flags. A key is expected to live in only one of them.
type Database struct {
	Submissions *OrderedMap[Value]
	RedXs       *OrderedMap[string]
}

// NewDatabase returns an empty document.
func NewDatabase() *Database {
	return &Database{
		Submissions: NewOrderedMap[Value](),
		RedXs:       NewOrderedMap[string](),
	}
}

// ParseDatabase decodes a persisted document. Missing sections are treated
// as empty; red-X entries that are not strings are kept as their JSON text.
func ParseDatabase(data []byte) (*Database, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: document is not an object", ErrInvalidJSON)
	}

	db := NewDatabase()
	if subs := root.Get("submissions"); subs.IsObject() {
		subs.ForEach(func(key, value gjson.Result) bool {
			db.Submissions.Set(key.Str, fromResult(value))
			return true
		})
	}
	if reds := root.Get("red_xs"); reds.IsObject() {
		reds.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.String {
				db.RedXs.Set(key.Str, value.Str)
			} else {
				db.RedXs.Set(key.Str, value.Raw)
			}
			return true
		})
	}
	return db, nil
}

func (db *Database) MarshalJSON() ([]byte, error) {
	subs, err := db.Submissions.MarshalJSON()
	if err != nil {
		return nil, err
	}
	reds, err := db.RedXs.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf := append([]byte(`{"submissions":`), subs...)
	buf = append(buf, `,"red_xs":`...)
	buf = append(buf, reds...)
	return append(buf, '}'), nil
}
