// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracker // import "github.com/tracekit/trackstore/tracker"

import (
	"github.com/tracekit/trackstore/tracestore"
)

// Dimensions is the persisted, canonical identity attribute set of a track.
// The zero value means "no dimensions". Because argument sets are
// content-addressed, two dimension sets built from the same (name, value)
// pairs compare equal regardless of append order.
type Dimensions struct {
	argSetID tracestore.ArgSetID
}

// NoDimensions is the explicit "no identity attributes" marker used by
// global tracks.
var NoDimensions = Dimensions{}

// ArgSetID returns the persisted argument-set handle, or
// tracestore.NullArgSetID for NoDimensions.
func (d Dimensions) ArgSetID() tracestore.ArgSetID {
	return d.argSetID
}

// DimensionsBuilder accumulates the typed attributes that identify a track.
// Callers are expected not to append the same name twice; append order does
// not affect the resulting identity.
type DimensionsBuilder struct {
	tracker *Tracker
	args    []tracestore.Arg
}

// NewDimensionsBuilder returns an empty builder bound to this tracker's
// storage session.
func (t *Tracker) NewDimensionsBuilder() DimensionsBuilder {
	return DimensionsBuilder{tracker: t}
}

// Append adds one attribute under an arbitrary interned key.
func (b *DimensionsBuilder) Append(key tracestore.StringID, value tracestore.Value) {
	b.args = append(b.args, tracestore.Arg{Key: key, Value: value})
}

// AppendUtid adds the owning-thread attribute.
func (b *DimensionsBuilder) AppendUtid(utid tracestore.UniqueTid) {
	b.Append(b.tracker.utidKey, tracestore.IntValue(int64(utid)))
}

// AppendUpid adds the owning-process attribute.
func (b *DimensionsBuilder) AppendUpid(upid tracestore.UniquePid) {
	b.Append(b.tracker.upidKey, tracestore.IntValue(int64(upid)))
}

// AppendUcpu adds the owning-CPU attribute.
func (b *DimensionsBuilder) AppendUcpu(ucpu tracestore.UCpu) {
	b.Append(b.tracker.ucpuKey, tracestore.IntValue(int64(ucpu)))
}

// AppendGpu adds the GPU index attribute.
func (b *DimensionsBuilder) AppendGpu(gpu int64) {
	b.Append(b.tracker.gpuKey, tracestore.IntValue(gpu))
}

// AppendName adds a free-form name attribute distinguishing tracks that
// share all other dimensions.
func (b *DimensionsBuilder) AppendName(name tracestore.StringID) {
	b.Append(b.tracker.nameKey, tracestore.StringValue(name))
}

// Build persists the accumulated set and returns its canonical handle. The
// builder must not be reused afterwards.
func (b DimensionsBuilder) Build() Dimensions {
	return Dimensions{argSetID: b.tracker.storage.ArgSets().Intern(b.args)}
}

// singleDimension is the shortcut for identity sets with exactly one entry.
func (t *Tracker) singleDimension(key tracestore.StringID, value tracestore.Value) Dimensions {
	return Dimensions{
		argSetID: t.storage.ArgSets().Intern([]tracestore.Arg{{Key: key, Value: value}}),
	}
}
