// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracestore // import "github.com/tracekit/trackstore/tracestore"

// ArgsTracker attaches post-creation arguments to tracks. It is distinct
// from the dimension arg sets: dimensions define a track's identity, while
// these args merely describe it.
type ArgsTracker struct {
	storage *Storage
}

func NewArgsTracker(storage *Storage) *ArgsTracker {
	return &ArgsTracker{storage: storage}
}

// AddArgsTo returns an inserter bound to the given track.
func (t *ArgsTracker) AddArgsTo(id TrackID) *BoundInserter {
	return &BoundInserter{storage: t.storage, trackID: id}
}

// ArgsForTrack collects the arguments attached to one track, in insertion
// order.
func (t *ArgsTracker) ArgsForTrack(id TrackID) []Arg {
	var args []Arg
	for i := 0; i < t.storage.Args.RowCount(); i++ {
		row := t.storage.Args.Row(i)
		if row.TrackID == id {
			args = append(args, Arg{Key: row.Key, Value: row.Value})
		}
	}
	return args
}

// BoundInserter appends (key, value) rows for one track.
type BoundInserter struct {
	storage *Storage
	trackID TrackID
}

// AddArg appends one argument and returns the inserter for chaining.
func (b *BoundInserter) AddArg(key StringID, value Value) *BoundInserter {
	b.storage.Args.append(ArgRow{TrackID: b.trackID, Key: key, Value: value})
	return b
}
