// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracestore // import "github.com/tracekit/trackstore/tracestore"

// StringID is a handle to a string interned in a StringPool. Handles are
// stable for the lifetime of the pool and content-addressed: interning the
// same text twice yields the same handle.
type StringID uint32

// NullStringID is the handle of the empty string and doubles as the
// "no name" marker on track rows.
const NullStringID StringID = 0

// StringPool deduplicates strings into stable handles. It grows
// monotonically; entries are never removed.
type StringPool struct {
	ids   map[string]StringID
	texts []string
}

func NewStringPool() *StringPool {
	p := &StringPool{
		ids: make(map[string]StringID),
	}
	// Pre-seed the empty string so that NullStringID resolves to "".
	p.texts = append(p.texts, "")
	p.ids[""] = NullStringID
	return p
}

// Intern returns the stable handle for text, allocating one on first use.
func (p *StringPool) Intern(text string) StringID {
	if id, ok := p.ids[text]; ok {
		return id
	}
	id := StringID(len(p.texts))
	p.texts = append(p.texts, text)
	p.ids[text] = id
	return id
}

// Get resolves a handle back to its text. Handles not allocated by this
// pool are a programming error.
func (p *StringPool) Get(id StringID) string {
	return p.texts[id]
}

// Len returns the number of distinct strings in the pool, including the
// pre-seeded empty string.
func (p *StringPool) Len() int {
	return len(p.texts)
}
