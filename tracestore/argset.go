// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracestore // import "github.com/tracekit/trackstore/tracestore"

import (
	"encoding/binary"
	"sort"

	"github.com/zeebo/xxh3"
)

// ArgSetID is a content-addressed handle to a persisted argument set.
// Two sets with the same (key, value) pairs receive the same handle no
// matter in which order the pairs were appended.
type ArgSetID uint32

// NullArgSetID marks the absence of an argument set.
const NullArgSetID ArgSetID = 0

// Arg is one named typed attribute of an argument set.
type Arg struct {
	Key   StringID
	Value Value
}

// ArgSetPool persists argument sets exactly once. Deduplication buckets on
// an xxh3 fingerprint of the canonical encoding and verifies full equality
// within a bucket, so fingerprint collisions cannot alias distinct sets.
type ArgSetPool struct {
	strings *StringPool

	sets    [][]Arg
	buckets map[uint64][]ArgSetID
}

func NewArgSetPool(strings *StringPool) *ArgSetPool {
	return &ArgSetPool{
		strings: strings,
		buckets: make(map[uint64][]ArgSetID),
	}
}

// Intern canonicalizes args (stable sort by key text) and returns the
// handle of the persisted set, reusing an existing one if an identical set
// was interned before. The input slice is not retained or modified. An
// empty set is not persisted; it is NullArgSetID.
func (p *ArgSetPool) Intern(args []Arg) ArgSetID {
	if len(args) == 0 {
		return NullArgSetID
	}

	canonical := make([]Arg, len(args))
	copy(canonical, args)
	sort.SliceStable(canonical, func(i, j int) bool {
		return p.strings.Get(canonical[i].Key) < p.strings.Get(canonical[j].Key)
	})

	fp := p.fingerprint(canonical)
	for _, id := range p.buckets[fp] {
		if argsEqual(p.sets[id-1], canonical) {
			return id
		}
	}

	p.sets = append(p.sets, canonical)
	id := ArgSetID(len(p.sets)) // ids are 1-based; 0 is NullArgSetID
	p.buckets[fp] = append(p.buckets[fp], id)
	return id
}

// Args returns the canonical pairs of a previously interned set, or nil
// for NullArgSetID.
func (p *ArgSetPool) Args(id ArgSetID) []Arg {
	if id == NullArgSetID {
		return nil
	}
	return p.sets[id-1]
}

// Len returns the number of distinct persisted sets.
func (p *ArgSetPool) Len() int {
	return len(p.sets)
}

func (p *ArgSetPool) fingerprint(canonical []Arg) uint64 {
	var rec [13]byte
	h := xxh3.New()
	for _, a := range canonical {
		binary.LittleEndian.PutUint32(rec[0:4], uint32(a.Key))
		rec[4] = byte(a.Value.Kind)
		var payload uint64
		switch a.Value.Kind {
		case KindInt:
			payload = uint64(a.Value.Int())
		case KindString:
			payload = uint64(a.Value.StringID())
		case KindBool:
			if a.Value.Bool() {
				payload = 1
			}
		}
		binary.LittleEndian.PutUint64(rec[5:13], payload)
		_, _ = h.Write(rec[:])
	}
	return h.Sum64()
}

func argsEqual(a, b []Arg) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
