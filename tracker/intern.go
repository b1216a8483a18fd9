// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracker // import "github.com/tracekit/trackstore/tracker"

import (
	"github.com/tracekit/trackstore/tracestore"
)

// All interning operations follow the same pattern: compute the identity
// key, probe the identity map, and on miss construct the row, register the
// mapping and only then run the optional args callback. Name resolution
// (and with it the legacy allow-list check) happens on miss only, matching
// the guarantee that a hit has no side effects beyond the lookup.

// internTrack is the resolved-name core of InternTrack, shared with the
// group anchors.
func (t *Tracker) internTrack(c Classification, dims Dimensions,
	name tracestore.StringID, callback SetArgsCallback) tracestore.TrackID {
	key := trackMapKey{classification: c, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id
	}

	id := t.createTrack(c, dims, name)
	t.tracks[key] = id
	if callback != nil {
		callback(t.args.AddArgsTo(id))
	}
	return id
}

// InternTrack returns the track for (classification, dimensions), creating
// a plain-shape row on first sight.
func (t *Tracker) InternTrack(c Classification, dims Dimensions, name TrackName,
	callback SetArgsCallback) (tracestore.TrackID, error) {
	key := trackMapKey{classification: c, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id, nil
	}

	nameID, err := t.stringIDFromTrackName(c, name)
	if err != nil {
		return tracestore.InvalidTrackID, err
	}
	return t.internTrack(c, dims, nameID, callback), nil
}

// InternGlobalTrack interns a dimensionless singleton track for the whole
// trace.
func (t *Tracker) InternGlobalTrack(c Classification, name TrackName,
	callback SetArgsCallback) (tracestore.TrackID, error) {
	return t.InternTrack(c, NoDimensions, name, callback)
}

// InternCounterTrack is InternTrack for the counter table shape.
func (t *Tracker) InternCounterTrack(c Classification, dims Dimensions,
	name TrackName) (tracestore.TrackID, error) {
	key := trackMapKey{classification: c, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id, nil
	}

	nameID, err := t.stringIDFromTrackName(c, name)
	if err != nil {
		return tracestore.InvalidTrackID, err
	}
	id := t.createCounterTrack(c, dims, nameID)
	t.tracks[key] = id
	return id, nil
}

// InternProcessTrack interns a track owned by a process. The identity is
// built from the owning process alone.
func (t *Tracker) InternProcessTrack(c Classification, upid tracestore.UniquePid,
	name TrackName) (tracestore.TrackID, error) {
	dims := t.singleDimension(t.upidKey, tracestore.IntValue(int64(upid)))

	key := trackMapKey{classification: c, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id, nil
	}

	nameID, err := t.stringIDFromTrackName(c, name)
	if err != nil {
		return tracestore.InvalidTrackID, err
	}
	id := t.createProcessTrack(c, upid, dims, nameID)
	t.tracks[key] = id
	return id, nil
}

// InternProcessCounterTrack is InternProcessTrack for the counter shape.
func (t *Tracker) InternProcessCounterTrack(c Classification, upid tracestore.UniquePid,
	name TrackName) (tracestore.TrackID, error) {
	dims := t.singleDimension(t.upidKey, tracestore.IntValue(int64(upid)))

	key := trackMapKey{classification: c, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id, nil
	}

	nameID, err := t.stringIDFromTrackName(c, name)
	if err != nil {
		return tracestore.InvalidTrackID, err
	}
	id := t.createProcessCounterTrack(c, upid, dims, nameID)
	t.tracks[key] = id
	return id, nil
}

// InternThreadTrack is the thread-scheduling convenience path: the identity
// is the owning thread, the classification is fixed.
func (t *Tracker) InternThreadTrack(utid tracestore.UniqueTid,
	name TrackName) (tracestore.TrackID, error) {
	dims := t.singleDimension(t.utidKey, tracestore.IntValue(int64(utid)))

	key := trackMapKey{classification: ClassificationThread, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id, nil
	}

	nameID, err := t.stringIDFromTrackName(ClassificationThread, name)
	if err != nil {
		return tracestore.InvalidTrackID, err
	}
	id := t.createThreadTrack(ClassificationThread, utid, dims, nameID)
	t.tracks[key] = id
	return id, nil
}

// InternThreadCounterTrack interns a counter owned by a thread.
func (t *Tracker) InternThreadCounterTrack(c Classification, utid tracestore.UniqueTid,
	name TrackName) (tracestore.TrackID, error) {
	dims := t.singleDimension(t.utidKey, tracestore.IntValue(int64(utid)))

	key := trackMapKey{classification: c, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id, nil
	}

	nameID, err := t.stringIDFromTrackName(c, name)
	if err != nil {
		return tracestore.InvalidTrackID, err
	}
	id := t.createThreadCounterTrack(c, utid, dims, nameID)
	t.tracks[key] = id
	return id, nil
}

// InternCpuTrack interns a track owned by a CPU. The raw CPU number is
// resolved to its session-stable id first.
func (t *Tracker) InternCpuTrack(c Classification, cpu uint32,
	name TrackName) (tracestore.TrackID, error) {
	ucpu := t.cpus.GetOrCreateCPU(cpu)
	dims := t.singleDimension(t.ucpuKey, tracestore.IntValue(int64(ucpu)))

	key := trackMapKey{classification: c, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id, nil
	}

	nameID, err := t.stringIDFromTrackName(c, name)
	if err != nil {
		return tracestore.InvalidTrackID, err
	}
	id := t.storage.InsertCpuTrack(tracestore.CpuTrackRow{
		TrackRow: t.header(c, dims, nameID),
		Ucpu:     ucpu,
	})
	t.tracks[key] = id
	return id, nil
}

// InternCpuCounterTrack interns a counter owned by a CPU. The resolved name
// is part of the identity so one CPU can carry several counters of the same
// classification.
func (t *Tracker) InternCpuCounterTrack(c Classification, cpu uint32,
	name TrackName) (tracestore.TrackID, error) {
	ucpu := t.cpus.GetOrCreateCPU(cpu)
	nameID, err := t.stringIDFromTrackName(c, name)
	if err != nil {
		return tracestore.InvalidTrackID, err
	}

	builder := t.NewDimensionsBuilder()
	builder.AppendUcpu(ucpu)
	builder.AppendName(nameID)
	dims := builder.Build()

	key := trackMapKey{classification: c, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id, nil
	}

	id := t.storage.InsertCpuCounterTrack(tracestore.CpuCounterTrackRow{
		TrackRow: t.header(c, dims, nameID),
		Ucpu:     ucpu,
	})
	t.tracks[key] = id
	return id, nil
}

// InternGpuCounterTrack interns a counter owned by a GPU. Frequency
// counters receive the fixed display name "gpufreq".
func (t *Tracker) InternGpuCounterTrack(c Classification, gpuID uint32,
	name TrackName) (tracestore.TrackID, error) {
	dims := t.singleDimension(t.gpuKey, tracestore.IntValue(int64(gpuID)))

	key := trackMapKey{classification: c, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id, nil
	}

	nameID, err := t.stringIDFromTrackName(c, name)
	if err != nil {
		return tracestore.InvalidTrackID, err
	}
	if c == ClassificationGpuFrequency {
		nameID = t.storage.InternString("gpufreq")
	}
	id := t.storage.InsertGpuCounterTrack(tracestore.GpuCounterTrackRow{
		TrackRow: t.header(c, dims, nameID),
		GpuID:    gpuID,
	})
	t.tracks[key] = id
	return id, nil
}

// InternPerfCounterTrack interns a performance-session counter, identified
// by the owning CPU and the session that sampled it.
func (t *Tracker) InternPerfCounterTrack(c Classification, perfSessionID uint32,
	cpu uint32, isTimebase bool, name TrackName) (tracestore.TrackID, error) {
	ucpu := t.cpus.GetOrCreateCPU(cpu)

	builder := t.NewDimensionsBuilder()
	builder.AppendUcpu(ucpu)
	builder.Append(t.storage.InternString("perf_session_id"),
		tracestore.IntValue(int64(perfSessionID)))
	dims := builder.Build()

	key := trackMapKey{classification: c, dims: dims.ArgSetID()}
	if id, ok := t.tracks[key]; ok {
		return id, nil
	}

	nameID, err := t.stringIDFromTrackName(c, name)
	if err != nil {
		return tracestore.InvalidTrackID, err
	}
	id := t.storage.InsertPerfCounterTrack(tracestore.PerfCounterTrackRow{
		TrackRow:      t.header(c, dims, nameID),
		PerfSessionID: perfSessionID,
		Cpu:           cpu,
		IsTimebase:    isTimebase,
	})
	t.tracks[key] = id
	return id, nil
}
