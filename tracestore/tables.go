// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracestore // import "github.com/tracekit/trackstore/tracestore"

import "math"

// TrackID identifies one track row. The id space is shared across all track
// table shapes within a session: every insert, regardless of shape, draws
// from the same monotonic allocator.
type TrackID uint32

// InvalidTrackID is the zero-like sentinel for optional track references
// such as a counter track's parent.
const InvalidTrackID TrackID = math.MaxUint32

// Valid reports whether the id refers to an allocated track.
func (id TrackID) Valid() bool {
	return id != InvalidTrackID
}

// MachineID tags rows of traces that merge events from multiple machines.
// HostMachineID marks rows of the trace's own machine.
type MachineID uint32

const HostMachineID MachineID = 0

// UniquePid is a session-unique process identifier assigned by the process
// registry upstream of this engine.
type UniquePid uint32

// UniqueTid is a session-unique thread identifier.
type UniqueTid uint32

// UCpu is a session-stable CPU identifier, valid across machines.
type UCpu uint32

// TrackRow is the header common to every track table shape and the full
// row of the plain track table.
type TrackRow struct {
	Name              StringID
	Classification    StringID
	DimensionArgSetID ArgSetID
	MachineID         MachineID
	ParentID          TrackID
}

// CounterTrackRow is a track carrying numeric samples, optionally grouped
// under a parent track.
type CounterTrackRow struct {
	TrackRow
	Unit        StringID
	Description StringID
}

type ProcessTrackRow struct {
	TrackRow
	Upid UniquePid
}

type ProcessCounterTrackRow struct {
	TrackRow
	Upid        UniquePid
	Unit        StringID
	Description StringID
}

type ThreadTrackRow struct {
	TrackRow
	Utid UniqueTid
}

type ThreadCounterTrackRow struct {
	TrackRow
	Utid        UniqueTid
	Unit        StringID
	Description StringID
}

type CpuTrackRow struct {
	TrackRow
	Ucpu UCpu
}

type CpuCounterTrackRow struct {
	TrackRow
	Ucpu        UCpu
	Unit        StringID
	Description StringID
}

type GpuTrackRow struct {
	TrackRow
	Scope     StringID
	ContextID int64
}

type GpuCounterTrackRow struct {
	TrackRow
	GpuID       uint32
	Unit        StringID
	Description StringID
}

type PerfCounterTrackRow struct {
	TrackRow
	PerfSessionID uint32
	Cpu           uint32
	IsTimebase    bool
	Unit          StringID
	Description   StringID
}

// CpuRow records one machine-local CPU resolved to a session-stable UCpu.
type CpuRow struct {
	Cpu       uint32
	MachineID MachineID
}

// ArgRow is one argument attached to a track after creation.
type ArgRow struct {
	TrackID TrackID
	Key     StringID
	Value   Value
}

// Table is an append-only slice of rows of one shape.
type Table[R any] struct {
	rows []R
}

// RowCount returns the number of rows inserted so far.
func (t *Table[R]) RowCount() int {
	return len(t.rows)
}

// Row returns a mutable reference to the row at index i.
func (t *Table[R]) Row(i int) *R {
	return &t.rows[i]
}

func (t *Table[R]) append(row R) int {
	t.rows = append(t.rows, row)
	return len(t.rows) - 1
}
