// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

// Package tracestore holds the typed, append-only tables populated by one
// trace-processing session: interned strings, content-addressed argument
// sets, the per-shape track tables, and the global args table. Later query
// stages read these tables directly; nothing here is ever deleted.
package tracestore // import "github.com/tracekit/trackstore/tracestore"

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tracekit/trackstore/internal/log"
)

type shapeKind uint8

const (
	shapeTrack shapeKind = iota
	shapeCounterTrack
	shapeProcessTrack
	shapeProcessCounterTrack
	shapeThreadTrack
	shapeThreadCounterTrack
	shapeCpuTrack
	shapeCpuCounterTrack
	shapeGpuTrack
	shapeGpuCounterTrack
	shapePerfCounterTrack
)

type trackRef struct {
	shape shapeKind
	idx   int
}

// Storage owns all tables of one processing session. It is exclusively
// owned by the session's sequential ingestion pass; there is no internal
// locking.
type Storage struct {
	sessionID uuid.UUID

	strings *StringPool
	argSets *ArgSetPool

	Tracks               Table[TrackRow]
	CounterTracks        Table[CounterTrackRow]
	ProcessTracks        Table[ProcessTrackRow]
	ProcessCounterTracks Table[ProcessCounterTrackRow]
	ThreadTracks         Table[ThreadTrackRow]
	ThreadCounterTracks  Table[ThreadCounterTrackRow]
	CpuTracks            Table[CpuTrackRow]
	CpuCounterTracks     Table[CpuCounterTrackRow]
	GpuTracks            Table[GpuTrackRow]
	GpuCounterTracks     Table[GpuCounterTrackRow]
	PerfCounterTracks    Table[PerfCounterTrackRow]

	Cpus Table[CpuRow]
	Args Table[ArgRow]

	trackRefs []trackRef
}

func NewStorage() *Storage {
	strings := NewStringPool()
	s := &Storage{
		sessionID: uuid.New(),
		strings:   strings,
		argSets:   NewArgSetPool(strings),
	}
	log.Debugf("tracestore: new session %s", s.sessionID)
	return s
}

// SessionID identifies this storage session in logs and diagnostics.
func (s *Storage) SessionID() uuid.UUID {
	return s.sessionID
}

// InternString is a convenience shorthand for Strings().Intern.
func (s *Storage) InternString(text string) StringID {
	return s.strings.Intern(text)
}

// GetString resolves an interned string handle.
func (s *Storage) GetString(id StringID) string {
	return s.strings.Get(id)
}

func (s *Storage) Strings() *StringPool {
	return s.strings
}

func (s *Storage) ArgSets() *ArgSetPool {
	return s.argSets
}

// TrackCount returns the number of tracks allocated across all shapes.
func (s *Storage) TrackCount() int {
	return len(s.trackRefs)
}

func (s *Storage) allocTrack(shape shapeKind, idx int) TrackID {
	id := TrackID(len(s.trackRefs))
	s.trackRefs = append(s.trackRefs, trackRef{shape: shape, idx: idx})
	return id
}

func (s *Storage) InsertTrack(row TrackRow) TrackID {
	return s.allocTrack(shapeTrack, s.Tracks.append(row))
}

func (s *Storage) InsertCounterTrack(row CounterTrackRow) TrackID {
	return s.allocTrack(shapeCounterTrack, s.CounterTracks.append(row))
}

func (s *Storage) InsertProcessTrack(row ProcessTrackRow) TrackID {
	return s.allocTrack(shapeProcessTrack, s.ProcessTracks.append(row))
}

func (s *Storage) InsertProcessCounterTrack(row ProcessCounterTrackRow) TrackID {
	return s.allocTrack(shapeProcessCounterTrack, s.ProcessCounterTracks.append(row))
}

func (s *Storage) InsertThreadTrack(row ThreadTrackRow) TrackID {
	return s.allocTrack(shapeThreadTrack, s.ThreadTracks.append(row))
}

func (s *Storage) InsertThreadCounterTrack(row ThreadCounterTrackRow) TrackID {
	return s.allocTrack(shapeThreadCounterTrack, s.ThreadCounterTracks.append(row))
}

func (s *Storage) InsertCpuTrack(row CpuTrackRow) TrackID {
	return s.allocTrack(shapeCpuTrack, s.CpuTracks.append(row))
}

func (s *Storage) InsertCpuCounterTrack(row CpuCounterTrackRow) TrackID {
	return s.allocTrack(shapeCpuCounterTrack, s.CpuCounterTracks.append(row))
}

func (s *Storage) InsertGpuTrack(row GpuTrackRow) TrackID {
	return s.allocTrack(shapeGpuTrack, s.GpuTracks.append(row))
}

func (s *Storage) InsertGpuCounterTrack(row GpuCounterTrackRow) TrackID {
	return s.allocTrack(shapeGpuCounterTrack, s.GpuCounterTracks.append(row))
}

func (s *Storage) InsertPerfCounterTrack(row PerfCounterTrackRow) TrackID {
	return s.allocTrack(shapePerfCounterTrack, s.PerfCounterTracks.append(row))
}

// InsertCpu records one resolved CPU and returns its session-stable index.
func (s *Storage) InsertCpu(row CpuRow) UCpu {
	return UCpu(s.Cpus.append(row))
}

// TrackByID returns the mutable common header of any track, regardless of
// which shape table holds it. Panics on ids this session never allocated.
func (s *Storage) TrackByID(id TrackID) *TrackRow {
	ref := s.trackRefs[id]
	switch ref.shape {
	case shapeTrack:
		return s.Tracks.Row(ref.idx)
	case shapeCounterTrack:
		return &s.CounterTracks.Row(ref.idx).TrackRow
	case shapeProcessTrack:
		return &s.ProcessTracks.Row(ref.idx).TrackRow
	case shapeProcessCounterTrack:
		return &s.ProcessCounterTracks.Row(ref.idx).TrackRow
	case shapeThreadTrack:
		return &s.ThreadTracks.Row(ref.idx).TrackRow
	case shapeThreadCounterTrack:
		return &s.ThreadCounterTracks.Row(ref.idx).TrackRow
	case shapeCpuTrack:
		return &s.CpuTracks.Row(ref.idx).TrackRow
	case shapeCpuCounterTrack:
		return &s.CpuCounterTracks.Row(ref.idx).TrackRow
	case shapeGpuTrack:
		return &s.GpuTracks.Row(ref.idx).TrackRow
	case shapeGpuCounterTrack:
		return &s.GpuCounterTracks.Row(ref.idx).TrackRow
	case shapePerfCounterTrack:
		return &s.PerfCounterTracks.Row(ref.idx).TrackRow
	}
	panic(fmt.Sprintf("unhandled track shape %d", ref.shape))
}
