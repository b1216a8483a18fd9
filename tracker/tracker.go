// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

// Package tracker assigns each distinct logical timeline of a trace a
// stable, deduplicated track and routes it into the typed table matching
// its shape. One Tracker instance serves one sequential trace-processing
// session; its identity map and group anchors are private to that session.
package tracker // import "github.com/tracekit/trackstore/tracker"

import (
	"fmt"

	"github.com/tracekit/trackstore/cputracker"
	"github.com/tracekit/trackstore/internal/log"
	"github.com/tracekit/trackstore/nametrans"
	"github.com/tracekit/trackstore/tracestore"
)

// SetArgsCallback attaches descriptive arguments to a freshly created
// track. It runs exactly once, after both the row and the identity-map
// entry exist, so re-entrant interning from the callback observes the new
// track.
type SetArgsCallback func(inserter *tracestore.BoundInserter)

type trackMapKey struct {
	classification Classification
	dims           tracestore.ArgSetID
}

// Tracker is the track identity and interning engine.
type Tracker struct {
	storage *tracestore.Storage
	args    *tracestore.ArgsTracker
	cpus    *cputracker.CPUTracker
	names   *nametrans.Table

	machineID tracestore.MachineID
	strict    bool

	// Interned keys of the fixed dimension and argument names.
	sourceKey                 tracestore.StringID
	traceIDKey                tracestore.StringID
	traceIDIsProcessScopedKey tracestore.StringID
	sourceScopeKey            tracestore.StringID
	scopeKey                  tracestore.StringID
	cookieKey                 tracestore.StringID
	chromeSource              tracestore.StringID
	utidKey                   tracestore.StringID
	upidKey                   tracestore.StringID
	ucpuKey                   tracestore.StringID
	gpuKey                    tracestore.StringID
	nameKey                   tracestore.StringID
	groupKey                  tracestore.StringID

	tracks      map[trackMapKey]tracestore.TrackID
	groupTracks [groupCount]tracestore.TrackID
}

// Option configures a Tracker at construction.
type Option func(*Tracker)

// WithMachineID tags every created row with the originating machine of a
// merged multi-machine trace.
func WithMachineID(id tracestore.MachineID) Option {
	return func(t *Tracker) {
		t.machineID = id
	}
}

// WithLenientNamePolicy downgrades legacy naming allow-list violations from
// errors to warnings. Callers must not rely on the check for correctness
// either way; it exists to surface defects.
func WithLenientNamePolicy() Option {
	return func(t *Tracker) {
		t.strict = false
	}
}

func New(storage *tracestore.Storage, cpus *cputracker.CPUTracker,
	names *nametrans.Table, opts ...Option) *Tracker {
	t := &Tracker{
		storage: storage,
		args:    tracestore.NewArgsTracker(storage),
		cpus:    cpus,
		names:   names,
		strict:  true,

		sourceKey:                 storage.InternString("source"),
		traceIDKey:                storage.InternString("trace_id"),
		traceIDIsProcessScopedKey: storage.InternString("trace_id_is_process_scoped"),
		sourceScopeKey:            storage.InternString("source_scope"),
		scopeKey:                  storage.InternString("scope"),
		cookieKey:                 storage.InternString("cookie"),
		chromeSource:              storage.InternString("chrome"),
		utidKey:                   storage.InternString("utid"),
		upidKey:                   storage.InternString("upid"),
		ucpuKey:                   storage.InternString("ucpu"),
		gpuKey:                    storage.InternString("gpu"),
		nameKey:                   storage.InternString("name"),
		groupKey:                  storage.InternString("group"),

		tracks: make(map[trackMapKey]tracestore.TrackID),
	}
	for i := range t.groupTracks {
		t.groupTracks[i] = tracestore.InvalidTrackID
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Args exposes the args tracker bound to this session's storage.
func (t *Tracker) Args() *tracestore.ArgsTracker {
	return t.args
}

// stringIDFromTrackName resolves a TrackName variant to the handle stored
// on the row, enforcing the legacy allow-lists. In lenient mode violations
// are logged and the naming proceeds without the policy protection.
func (t *Tracker) stringIDFromTrackName(c Classification, name TrackName) (tracestore.StringID, error) {
	switch n := name.(type) {
	case AutoName:
		return tracestore.NullStringID, nil
	case LegacyInternedName:
		if !legacyInternedNameAllowed(c) {
			if err := t.namePolicyViolation(c, "legacy interned name"); err != nil {
				return tracestore.NullStringID, err
			}
		}
		return n.ID, nil
	case LegacyRawName:
		if !legacyRawNameAllowed(c) {
			if err := t.namePolicyViolation(c, "legacy raw name"); err != nil {
				return tracestore.NullStringID, err
			}
		}
		return t.storage.InternString(n.Name), nil
	case ExplicitName:
		return n.ID, nil
	}
	panic(fmt.Sprintf("unhandled track name variant %T", name))
}

func (t *Tracker) namePolicyViolation(c Classification, variant string) error {
	err := &NamePolicyError{Classification: c, Variant: variant}
	if t.strict {
		return err
	}
	log.Warnf("tracker: %v (lenient mode, proceeding)", err)
	return nil
}

// header assembles the row fields shared by every shape.
func (t *Tracker) header(c Classification, dims Dimensions, name tracestore.StringID) tracestore.TrackRow {
	return tracestore.TrackRow{
		Name:              name,
		Classification:    t.storage.InternString(c.String()),
		DimensionArgSetID: dims.ArgSetID(),
		MachineID:         t.machineID,
		ParentID:          tracestore.InvalidTrackID,
	}
}

func (t *Tracker) createTrack(c Classification, dims Dimensions, name tracestore.StringID) tracestore.TrackID {
	return t.storage.InsertTrack(t.header(c, dims, name))
}

func (t *Tracker) createCounterTrack(c Classification, dims Dimensions, name tracestore.StringID) tracestore.TrackID {
	return t.storage.InsertCounterTrack(tracestore.CounterTrackRow{
		TrackRow: t.header(c, dims, name),
	})
}

func (t *Tracker) createProcessTrack(c Classification, upid tracestore.UniquePid,
	dims Dimensions, name tracestore.StringID) tracestore.TrackID {
	return t.storage.InsertProcessTrack(tracestore.ProcessTrackRow{
		TrackRow: t.header(c, dims, name),
		Upid:     upid,
	})
}

func (t *Tracker) createProcessCounterTrack(c Classification, upid tracestore.UniquePid,
	dims Dimensions, name tracestore.StringID) tracestore.TrackID {
	return t.storage.InsertProcessCounterTrack(tracestore.ProcessCounterTrackRow{
		TrackRow: t.header(c, dims, name),
		Upid:     upid,
	})
}

func (t *Tracker) createThreadTrack(c Classification, utid tracestore.UniqueTid,
	dims Dimensions, name tracestore.StringID) tracestore.TrackID {
	return t.storage.InsertThreadTrack(tracestore.ThreadTrackRow{
		TrackRow: t.header(c, dims, name),
		Utid:     utid,
	})
}

func (t *Tracker) createThreadCounterTrack(c Classification, utid tracestore.UniqueTid,
	dims Dimensions, name tracestore.StringID) tracestore.TrackID {
	return t.storage.InsertThreadCounterTrack(tracestore.ThreadCounterTrackRow{
		TrackRow: t.header(c, dims, name),
		Utid:     utid,
	})
}
