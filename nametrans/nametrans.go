// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

// Package nametrans rewrites historical process-track counter names to
// their current form. Traces recorded by older emitters carry names that
// later tooling renamed; the legacy interning paths pass every candidate
// name through this table before the name becomes part of a track identity.
package nametrans // import "github.com/tracekit/trackstore/nametrans"

import (
	"strings"

	lru "github.com/elastic/go-freelru"
	"github.com/zeebo/xxh3"

	"github.com/tracekit/trackstore/tracestore"
)

const cacheCapacity = 512

func hashString(s string) uint32 {
	return uint32(xxh3.HashString(s))
}

type prefixRule struct {
	prefix      string
	replacement string
}

// Table applies exact renames first, then the first matching prefix
// rewrite. Resolved translations are memoized in an LRU so repeated counter
// events for the same raw name skip the rule scan.
type Table struct {
	exact    map[string]string
	prefixes []prefixRule
	resolved *lru.LRU[string, string]
}

func New() *Table {
	cache, err := lru.New[string, string](cacheCapacity, hashString)
	if err != nil {
		// Only reachable with an invalid capacity constant.
		panic(err)
	}
	return &Table{
		exact:    make(map[string]string),
		resolved: cache,
	}
}

// AddExactRename maps one historical name to its current form.
func (t *Table) AddExactRename(from, to string) {
	t.exact[from] = to
}

// AddPrefixRewrite rewrites the leading prefix of matching names. Rules are
// tried in registration order; the first match wins.
func (t *Table) AddPrefixRewrite(prefix, replacement string) {
	t.prefixes = append(t.prefixes, prefixRule{prefix: prefix, replacement: replacement})
}

// Translate returns the handle of the translated name, or the input handle
// unchanged if no rule applies.
func (t *Table) Translate(pool *tracestore.StringPool, raw tracestore.StringID) tracestore.StringID {
	name := pool.Get(raw)
	if translated, ok := t.resolved.Get(name); ok {
		if translated == name {
			return raw
		}
		return pool.Intern(translated)
	}

	translated := t.apply(name)
	t.resolved.Add(name, translated)
	if translated == name {
		return raw
	}
	return pool.Intern(translated)
}

func (t *Table) apply(name string) string {
	if to, ok := t.exact[name]; ok {
		return to
	}
	for _, rule := range t.prefixes {
		if strings.HasPrefix(name, rule.prefix) {
			return rule.replacement + name[len(rule.prefix):]
		}
	}
	return name
}
