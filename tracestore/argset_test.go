// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracestore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringPoolInterning(t *testing.T) {
	pool := NewStringPool()

	require.Equal(t, NullStringID, pool.Intern(""))
	require.Equal(t, "", pool.Get(NullStringID))

	a := pool.Intern("cpu_frequency")
	b := pool.Intern("cpu_frequency")
	require.Equal(t, a, b)
	require.Equal(t, "cpu_frequency", pool.Get(a))

	c := pool.Intern("cpu_idle")
	require.NotEqual(t, a, c)
}

func TestArgSetPoolOrderIndependence(t *testing.T) {
	pool := NewStringPool()
	argSets := NewArgSetPool(pool)

	scope := pool.Intern("scope")
	cookie := pool.Intern("cookie")
	x := pool.Intern("x")

	first := argSets.Intern([]Arg{
		{Key: scope, Value: StringValue(x)},
		{Key: cookie, Value: IntValue(7)},
	})
	second := argSets.Intern([]Arg{
		{Key: cookie, Value: IntValue(7)},
		{Key: scope, Value: StringValue(x)},
	})

	require.Equal(t, first, second)
	require.Equal(t, 1, argSets.Len())
}

func TestArgSetPoolEmptySet(t *testing.T) {
	pool := NewStringPool()
	argSets := NewArgSetPool(pool)

	require.Equal(t, NullArgSetID, argSets.Intern(nil))
	require.Equal(t, NullArgSetID, argSets.Intern([]Arg{}))
	require.Equal(t, 0, argSets.Len())
	require.Nil(t, argSets.Args(NullArgSetID))
}

func TestArgSetPoolDistinctSets(t *testing.T) {
	pool := NewStringPool()
	argSets := NewArgSetPool(pool)

	utid := pool.Intern("utid")
	upid := pool.Intern("upid")

	tests := map[string]struct {
		a, b  []Arg
		equal bool
	}{
		"same key different value": {
			a:     []Arg{{Key: utid, Value: IntValue(3)}},
			b:     []Arg{{Key: utid, Value: IntValue(4)}},
			equal: false,
		},
		"different key same value": {
			a:     []Arg{{Key: utid, Value: IntValue(7)}},
			b:     []Arg{{Key: upid, Value: IntValue(7)}},
			equal: false,
		},
		"different value kind": {
			a:     []Arg{{Key: utid, Value: IntValue(1)}},
			b:     []Arg{{Key: utid, Value: BoolValue(true)}},
			equal: false,
		},
		"identical": {
			a:     []Arg{{Key: utid, Value: IntValue(3)}},
			b:     []Arg{{Key: utid, Value: IntValue(3)}},
			equal: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			idA := argSets.Intern(tc.a)
			idB := argSets.Intern(tc.b)
			if tc.equal {
				require.Equal(t, idA, idB)
			} else {
				require.NotEqual(t, idA, idB)
			}
		})
	}
}

func TestArgSetPoolCanonicalRetrieval(t *testing.T) {
	pool := NewStringPool()
	argSets := NewArgSetPool(pool)

	scope := pool.Intern("scope")
	cookie := pool.Intern("cookie")

	id := argSets.Intern([]Arg{
		{Key: scope, Value: StringValue(pool.Intern("s"))},
		{Key: cookie, Value: IntValue(42)},
	})

	args := argSets.Args(id)
	require.Len(t, args, 2)
	// Canonical order sorts by key text: "cookie" < "scope".
	require.Equal(t, cookie, args[0].Key)
	require.Equal(t, scope, args[1].Key)
}
