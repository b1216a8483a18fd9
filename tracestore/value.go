// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracestore // import "github.com/tracekit/trackstore/tracestore"

import "strconv"

// ValueKind discriminates the payload of a Value.
type ValueKind uint8

const (
	KindInt ValueKind = iota
	KindString
	KindBool
)

// Value is a typed scalar attached to tracks as a dimension or argument.
// String payloads are carried as StringPool handles so that Values stay
// comparable and cheap to copy.
type Value struct {
	Kind ValueKind

	intVal  int64
	strVal  StringID
	boolVal bool
}

func IntValue(v int64) Value {
	return Value{Kind: KindInt, intVal: v}
}

func StringValue(id StringID) Value {
	return Value{Kind: KindString, strVal: id}
}

func BoolValue(v bool) Value {
	return Value{Kind: KindBool, boolVal: v}
}

func (v Value) Int() int64 {
	return v.intVal
}

func (v Value) StringID() StringID {
	return v.strVal
}

func (v Value) Bool() bool {
	return v.boolVal
}

// Render formats the payload for diagnostics, resolving string handles
// through the given pool.
func (v Value) Render(pool *StringPool) string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindString:
		return pool.Get(v.strVal)
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	}
	panic("unhandled value kind")
}
