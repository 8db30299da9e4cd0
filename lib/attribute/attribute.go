// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package attribute

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Map holds one request's attributes: attribute name to decoded JSON
// value. Maps are supplied fresh per request and are read, never
// mutated. Numbers are json.Number values (the protocol decoder uses
// UseNumber) so integer attributes survive without float coercion.
type Map map[string]any

// String returns the named attribute as a string. The second return
// is false when the attribute is absent or not a string.
func (m Map) String(name string) (string, bool) {
	value, ok := m[name].(string)
	return value, ok
}

// Bool returns the named attribute as a bool. The second return is
// false when the attribute is absent or not a bool.
func (m Map) Bool(name string) (bool, bool) {
	value, ok := m[name].(bool)
	return value, ok
}

// Int returns the named attribute as an int64. The second return is
// false when the attribute is absent or not an integer.
func (m Map) Int(name string) (int64, bool) {
	number, ok := m[name].(json.Number)
	if !ok {
		return 0, false
	}
	value, err := number.Int64()
	if err != nil {
		return 0, false
	}
	return value, true
}

type typeKind int

const (
	kindBool typeKind = iota
	kindString
	kindInteger
	kindFloat
	kindList
	kindData
	kindAbsolutePath
	kindStringEnum
)

// Type is a predicate over a decoded JSON value, used to validate
// attributes before a promise hook sees them. Types are only used
// for validation; values keep their decoded representation.
type Type struct {
	kind typeKind

	// variants is the allowed value set, for StringEnum types only.
	variants []string
}

var (
	// Bool accepts a JSON boolean.
	Bool = Type{kind: kindBool}

	// String accepts a JSON string.
	String = Type{kind: kindString}

	// Integer accepts a JSON number with an integral value that fits
	// in an int64.
	Integer = Type{kind: kindInteger}

	// Float accepts any JSON number, integral or not.
	Float = Type{kind: kindFloat}

	// List accepts a JSON array.
	List = Type{kind: kindList}

	// Data accepts a JSON object.
	Data = Type{kind: kindData}

	// AbsolutePath accepts a JSON string holding an absolute
	// filesystem path, as defined by the platform.
	AbsolutePath = Type{kind: kindAbsolutePath}
)

// StringEnum accepts a JSON string equal to one of the given variants.
func StringEnum(variants ...string) Type {
	return Type{kind: kindStringEnum, variants: variants}
}

// String describes the type for error messages.
func (t Type) String() string {
	switch t.kind {
	case kindBool:
		return "bool"
	case kindString:
		return "string"
	case kindInteger:
		return "integer"
	case kindFloat:
		return "float"
	case kindList:
		return "list"
	case kindData:
		return "data"
	case kindAbsolutePath:
		return "absolute path"
	case kindStringEnum:
		return fmt.Sprintf("one of [%s]", strings.Join(t.variants, ", "))
	default:
		return fmt.Sprintf("type(%d)", int(t.kind))
	}
}

// Matches reports whether the decoded JSON value satisfies the type.
func (t Type) Matches(value any) bool {
	switch t.kind {
	case kindBool:
		_, ok := value.(bool)
		return ok
	case kindString:
		_, ok := value.(string)
		return ok
	case kindInteger:
		number, ok := value.(json.Number)
		if !ok {
			return false
		}
		_, err := number.Int64()
		return err == nil
	case kindFloat:
		number, ok := value.(json.Number)
		if !ok {
			return false
		}
		_, err := number.Float64()
		return err == nil
	case kindList:
		_, ok := value.([]any)
		return ok
	case kindData:
		_, ok := value.(map[string]any)
		return ok
	case kindAbsolutePath:
		path, ok := value.(string)
		return ok && filepath.IsAbs(path)
	case kindStringEnum:
		text, ok := value.(string)
		if !ok {
			return false
		}
		for _, variant := range t.variants {
			if text == variant {
				return true
			}
		}
		return false
	default:
		return false
	}
}
