// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when text handed to ParseValue or
// ParseDatabase is not a well-formed JSON document.
var ErrInvalidJSON = errors.New("invalid JSON")

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Member is one key/value pair of a JSON object, kept in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value: null, bool, number, string, array or object.
// The zero Value is null.
//
// Numbers keep their original text so a stored score re-serializes
// exactly as the judge form sent it.
type Value struct {
	kind    Kind
	boolean bool
	number  string
	str     string
	items   []Value
	members []Member
}

func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Array(items ...Value) Value { return Value{kind: KindArray, items: items} }

// Number builds a number Value from its JSON text.
func Number(raw string) (Value, error) {
	if _, err := strconv.ParseFloat(raw, 64); err != nil || !gjson.Valid(raw) {
		return Value{}, ErrInvalidJSON
	}
	return Value{kind: KindNumber, number: raw}, nil
}

// Int builds a number Value from an integer.
func Int(n int64) Value {
	return Value{kind: KindNumber, number: strconv.FormatInt(n, 10)}
}

// Object builds an object Value. A repeated key keeps its first position
// and its last value.
func Object(members ...Member) Value {
	v := Value{kind: KindObject}
	for _, m := range members {
		v.setMember(m.Key, m.Value)
	}
	return v
}

func (v *Value) setMember(key string, val Value) {
	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = val
			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

// ParseValue parses a JSON document into a Value.
func ParseValue(text string) (Value, error) {
	if !gjson.Valid(text) {
		return Value{}, ErrInvalidJSON
	}
	return fromResult(gjson.Parse(text)), nil
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Value{kind: KindNumber, number: strings.TrimSpace(r.Raw)}
	case gjson.String:
		return String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			v := Value{kind: KindArray, items: []Value{}}
			r.ForEach(func(_, item gjson.Result) bool {
				v.items = append(v.items, fromResult(item))
				return true
			})
			return v
		}
		v := Value{kind: KindObject}
		r.ForEach(func(key, item gjson.Result) bool {
			v.setMember(key.Str, fromResult(item))
			return true
		})
		return v
	}
	return Null()
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string held by a string Value.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// BoolValue returns the boolean held by a bool Value.
func (v Value) BoolValue() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// Float returns the number held by a number Value.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.number, 64)
	return f, err == nil
}

func (v Value) Items() []Value { return v.items }

func (v Value) Members() []Member { return v.members }

// Field looks up an object member by key.
func (v Value) Field(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Truthy reports whether the value counts as "set" in a request flag:
// false, null, zero, "" and empty containers are all false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		f, _ := v.Float()
		return f != 0
	case KindString:
		return v.str != ""
	case KindArray:
		return len(v.items) > 0
	case KindObject:
		return len(v.members) > 0
	}
	return false
}

// Text returns a string Value's contents unquoted and any other Value as
// compact JSON.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.str
	}
	return v.Encode()
}

// Encode returns the compact JSON encoding of v.
func (v Value) Encode() string {
	return string(v.appendJSON(nil))
}

func (v Value) appendJSON(buf []byte) []byte {
	switch v.kind {
	case KindBool:
		return strconv.AppendBool(buf, v.boolean)
	case KindNumber:
		return append(buf, v.number...)
	case KindString:
		return appendQuoted(buf, v.str)
	case KindArray:
		buf = append(buf, '[')
		for i, item := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = item.appendJSON(buf)
		}
		return append(buf, ']')
	case KindObject:
		buf = append(buf, '{')
		for i, m := range v.members {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendQuoted(buf, m.Key)
			buf = append(buf, ':')
			buf = m.Value.appendJSON(buf)
		}
		return append(buf, '}')
	}
	return append(buf, "null"...)
}

func appendQuoted(buf []byte, s string) []byte {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return append(buf, `""`...)
	}
	return append(buf, bytes.TrimRight(b.Bytes(), "\n")...)
}

// Equal reports whether two values are the same JSON value. Numbers are
// compared numerically and object member order is ignored.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == o.boolean
	case KindNumber:
		a, _ := v.Float()
		b, _ := o.Float()
		return a == b
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(o.members) {
			return false
		}
		for _, m := range v.members {
			other, ok := o.Field(m.Key)
			if !ok || !m.Value.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
