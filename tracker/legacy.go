// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracker // import "github.com/tracekit/trackstore/tracker"

import (
	"github.com/tracekit/trackstore/tracestore"
)

// Entry points predating the canonical-naming regime. They classify their
// tracks as "unknown" and take display names directly instead of going
// through a TrackName variant, so they never hit the naming allow-lists.

// LegacyInternProcessCounterTrack interns a process-scoped counter whose
// identity includes the (translated) counter name.
func (t *Tracker) LegacyInternProcessCounterTrack(rawName tracestore.StringID,
	upid tracestore.UniquePid, unit, description tracestore.StringID) tracestore.TrackID {
	name := t.names.Translate(t.storage.Strings(), rawName)

	builder := t.NewDimensionsBuilder()
	builder.AppendUpid(upid)
	builder.AppendName(name)
	dims := builder.Build()

	key := trackMapKey{classification: ClassificationUnknown, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id
	}

	id := t.storage.InsertProcessCounterTrack(tracestore.ProcessCounterTrackRow{
		TrackRow:    t.header(ClassificationUnknown, dims, name),
		Upid:        upid,
		Unit:        unit,
		Description: description,
	})
	t.tracks[key] = id
	return id
}

// LegacyInternThreadCounterTrack interns a thread-scoped counter whose
// identity includes the caller-supplied name.
func (t *Tracker) LegacyInternThreadCounterTrack(name tracestore.StringID,
	utid tracestore.UniqueTid) tracestore.TrackID {
	builder := t.NewDimensionsBuilder()
	builder.AppendUtid(utid)
	builder.AppendName(name)
	dims := builder.Build()

	key := trackMapKey{classification: ClassificationUnknown, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id
	}

	id := t.createThreadCounterTrack(ClassificationUnknown, utid, dims, name)
	t.tracks[key] = id
	return id
}

// LegacyInternGpuTrack interns a GPU track identified by (context id,
// optional scope, name).
func (t *Tracker) LegacyInternGpuTrack(name tracestore.StringID, contextID int64,
	scope tracestore.StringID) tracestore.TrackID {
	builder := t.NewDimensionsBuilder()
	builder.AppendGpu(contextID)
	if scope != tracestore.NullStringID {
		builder.Append(t.scopeKey, tracestore.StringValue(scope))
	}
	builder.AppendName(name)
	dims := builder.Build()

	key := trackMapKey{classification: ClassificationUnknown, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id
	}

	id := t.storage.InsertGpuTrack(tracestore.GpuTrackRow{
		TrackRow:  t.header(ClassificationUnknown, dims, name),
		Scope:     scope,
		ContextID: contextID,
	})
	t.tracks[key] = id
	return id
}

// LegacyInternGlobalCounterTrack interns a global counter parented under a
// group anchor. Identity is the counter's own name.
func (t *Tracker) LegacyInternGlobalCounterTrack(group Group, name tracestore.StringID,
	callback SetArgsCallback, unit, description tracestore.StringID) tracestore.TrackID {
	dims := t.singleDimension(t.nameKey, tracestore.StringValue(name))

	key := trackMapKey{classification: ClassificationUnknown, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id
	}

	header := t.header(ClassificationUnknown, NoDimensions, name)
	header.ParentID = t.InternTrackForGroup(group)
	id := t.storage.InsertCounterTrack(tracestore.CounterTrackRow{
		TrackRow:    header,
		Unit:        unit,
		Description: description,
	})
	t.tracks[key] = id

	if callback != nil {
		callback(t.args.AddArgsTo(id))
	}
	return id
}

// LegacyInternCpuIdleStateTrack interns a per-CPU idle-state counter. The
// state name is part of the identity, and the display name is synthesized
// from it.
func (t *Tracker) LegacyInternCpuIdleStateTrack(cpu uint32,
	state tracestore.StringID) tracestore.TrackID {
	ucpu := t.cpus.GetOrCreateCPU(cpu)

	builder := t.NewDimensionsBuilder()
	builder.Append(t.storage.InternString("cpu_idle_state"),
		tracestore.StringValue(state))
	builder.AppendUcpu(ucpu)
	dims := builder.Build()

	key := trackMapKey{classification: ClassificationCpuIdleState, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id
	}

	name := t.storage.InternString("cpuidle." + t.storage.GetString(state))
	id := t.storage.InsertCpuCounterTrack(tracestore.CpuCounterTrackRow{
		TrackRow: t.header(ClassificationCpuIdleState, dims, name),
		Ucpu:     ucpu,
	})
	t.tracks[key] = id
	return id
}

// LegacyInternChromeAsyncTrack interns a cross-process async span track
// identified by (scope, optional owning process, cookie).
//
// This path owns the one sanctioned post-creation mutation of the engine:
// an async track created for an unnamed event (typically an end event seen
// first) is back-filled with the first non-absent name a later event for
// the same identity supplies. The id never changes and no duplicate row is
// created.
func (t *Tracker) LegacyInternChromeAsyncTrack(rawName tracestore.StringID,
	upid tracestore.UniquePid, traceID int64, traceIDIsProcessScoped bool,
	sourceScope tracestore.StringID) tracestore.TrackID {
	builder := t.NewDimensionsBuilder()
	builder.Append(t.scopeKey, tracestore.StringValue(sourceScope))
	if traceIDIsProcessScoped {
		builder.AppendUpid(upid)
	}
	builder.Append(t.cookieKey, tracestore.IntValue(traceID))
	dims := builder.Build()

	name := t.names.Translate(t.storage.Strings(), rawName)

	key := trackMapKey{classification: ClassificationUnknown, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		if name != tracestore.NullStringID {
			row := t.storage.TrackByID(id)
			if row.Name == tracestore.NullStringID {
				row.Name = name
			}
		}
		return id
	}

	// Async tracks are always drawn in the context of a process, even when
	// the cookie's scope is global.
	id := t.storage.InsertProcessTrack(tracestore.ProcessTrackRow{
		TrackRow: t.header(ClassificationUnknown, dims, name),
		Upid:     upid,
	})
	t.tracks[key] = id

	t.args.AddArgsTo(id).
		AddArg(t.sourceKey, tracestore.StringValue(t.chromeSource)).
		AddArg(t.traceIDKey, tracestore.IntValue(traceID)).
		AddArg(t.traceIDIsProcessScopedKey, tracestore.BoolValue(traceIDIsProcessScoped)).
		AddArg(t.sourceScopeKey, tracestore.StringValue(sourceScope))

	return id
}

// LegacyCreateGpuCounterTrack inserts a GPU counter row without consulting
// the identity map; pre-canonical callers did their own deduplication.
func (t *Tracker) LegacyCreateGpuCounterTrack(name tracestore.StringID, gpuID uint32,
	description, unit tracestore.StringID) tracestore.TrackID {
	dims := t.singleDimension(t.gpuKey, tracestore.IntValue(int64(gpuID)))

	return t.storage.InsertGpuCounterTrack(tracestore.GpuCounterTrackRow{
		TrackRow:    t.header(ClassificationUnknown, dims, name),
		GpuID:       gpuID,
		Unit:        unit,
		Description: description,
	})
}
