// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracestore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackIDSpaceSharedAcrossShapes(t *testing.T) {
	s := NewStorage()

	plain := s.InsertTrack(TrackRow{Name: s.InternString("a")})
	thread := s.InsertThreadTrack(ThreadTrackRow{
		TrackRow: TrackRow{Name: s.InternString("b")},
		Utid:     7,
	})
	counter := s.InsertCounterTrack(CounterTrackRow{
		TrackRow: TrackRow{Name: s.InternString("c")},
	})

	require.Equal(t, TrackID(0), plain)
	require.Equal(t, TrackID(1), thread)
	require.Equal(t, TrackID(2), counter)
	require.Equal(t, 3, s.TrackCount())

	require.Equal(t, 1, s.Tracks.RowCount())
	require.Equal(t, 1, s.ThreadTracks.RowCount())
	require.Equal(t, 1, s.CounterTracks.RowCount())
}

func TestTrackByIDAllowsNameBackfill(t *testing.T) {
	s := NewStorage()

	id := s.InsertProcessTrack(ProcessTrackRow{Upid: 3})
	require.Equal(t, NullStringID, s.TrackByID(id).Name)

	name := s.InternString("render")
	s.TrackByID(id).Name = name

	require.Equal(t, name, s.ProcessTracks.Row(0).Name)
}

func TestTrackByIDSurvivesTableGrowth(t *testing.T) {
	s := NewStorage()

	first := s.InsertThreadTrack(ThreadTrackRow{Utid: 0})
	// Force several reallocations of the backing slice.
	for i := 1; i < 100; i++ {
		s.InsertThreadTrack(ThreadTrackRow{Utid: UniqueTid(i)})
	}

	s.TrackByID(first).Name = s.InternString("main")
	require.Equal(t, "main", s.GetString(s.ThreadTracks.Row(0).Name))
}

func TestArgsTrackerAttachesToTrack(t *testing.T) {
	s := NewStorage()
	args := NewArgsTracker(s)

	id := s.InsertTrack(TrackRow{})
	other := s.InsertTrack(TrackRow{})

	key := s.InternString("source")
	val := s.InternString("chrome")
	args.AddArgsTo(id).
		AddArg(key, StringValue(val)).
		AddArg(s.InternString("trace_id"), IntValue(42))

	attached := args.ArgsForTrack(id)
	require.Len(t, attached, 2)
	require.Equal(t, key, attached[0].Key)
	require.Equal(t, val, attached[0].Value.StringID())

	require.Empty(t, args.ArgsForTrack(other))
}
