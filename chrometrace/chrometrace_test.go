// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package chrometrace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracekit/trackstore/cputracker"
	"github.com/tracekit/trackstore/nametrans"
	"github.com/tracekit/trackstore/tracestore"
	"github.com/tracekit/trackstore/tracker"
)

func newTestImporter(t *testing.T) (*Importer, *tracestore.Storage) {
	t.Helper()
	storage := tracestore.NewStorage()
	trk := tracker.New(storage,
		cputracker.New(storage, tracestore.HostMachineID), nametrans.New())
	return NewImporter(trk, storage), storage
}

func TestImportArrayForm(t *testing.T) {
	trace := `[
		{"name":"work","ph":"X","pid":10,"tid":11,"ts":100,"dur":5},
		{"name":"work","ph":"X","pid":10,"tid":11,"ts":200,"dur":5},
		{"name":"work","ph":"X","pid":10,"tid":12,"ts":200,"dur":5}
	]`

	imp, storage := newTestImporter(t)
	stats, err := imp.Import(strings.NewReader(trace))
	require.NoError(t, err)
	require.Equal(t, 3, stats.Events)
	require.Equal(t, 0, stats.Skipped)

	// Two distinct threads, each with exactly one track.
	require.Equal(t, 2, storage.ThreadTracks.RowCount())
}

func TestImportObjectForm(t *testing.T) {
	trace := `{
		"displayTimeUnit": "ms",
		"traceEvents": [
			{"name":"frame","ph":"B","pid":1,"tid":1,"ts":0},
			{"name":"frame","ph":"E","pid":1,"tid":1,"ts":10}
		]
	}`

	imp, storage := newTestImporter(t)
	stats, err := imp.Import(strings.NewReader(trace))
	require.NoError(t, err)
	require.Equal(t, 2, stats.Events)
	require.Equal(t, 1, storage.ThreadTracks.RowCount())
}

func TestImportAsyncBackfill(t *testing.T) {
	// The end event arrives first and carries no name; the named begin
	// event for the same cookie back-fills the track.
	trace := `[
		{"ph":"e","pid":1,"tid":1,"id":"0x2a","ts":50},
		{"name":"navigation","ph":"b","pid":1,"tid":1,"id":"0x2a","ts":0}
	]`

	imp, storage := newTestImporter(t)
	_, err := imp.Import(strings.NewReader(trace))
	require.NoError(t, err)

	require.Equal(t, 1, storage.ProcessTracks.RowCount())
	require.Equal(t, "navigation", storage.GetString(storage.ProcessTracks.Row(0).Name))
}

func TestImportAsyncScopedCookies(t *testing.T) {
	// Same numeric cookie in two processes: process-local (no scope) ids
	// stay separate, explicitly scoped ids are global and shared.
	trace := `[
		{"name":"a","ph":"b","pid":1,"tid":1,"id":7},
		{"name":"a","ph":"b","pid":2,"tid":1,"id":7},
		{"name":"g","ph":"b","pid":1,"tid":1,"id":9,"scope":"x"},
		{"name":"g","ph":"b","pid":2,"tid":1,"id":9,"scope":"x"}
	]`

	imp, storage := newTestImporter(t)
	_, err := imp.Import(strings.NewReader(trace))
	require.NoError(t, err)

	require.Equal(t, 3, storage.ProcessTracks.RowCount())
}

func TestImportCounters(t *testing.T) {
	trace := `[
		{"name":"mem","ph":"C","pid":1,"args":{"rss":100,"swap":2}},
		{"name":"mem","ph":"C","pid":1,"args":{"rss":120,"swap":3}},
		{"name":"cpu","ph":"C","pid":1,"args":{"usage":5}}
	]`

	imp, storage := newTestImporter(t)
	_, err := imp.Import(strings.NewReader(trace))
	require.NoError(t, err)

	// mem.rss, mem.swap and cpu: three counter timelines, deduplicated
	// across repeated samples.
	require.Equal(t, 3, storage.ProcessCounterTracks.RowCount())

	names := make([]string, 0, 3)
	for i := 0; i < storage.ProcessCounterTracks.RowCount(); i++ {
		names = append(names,
			storage.GetString(storage.ProcessCounterTracks.Row(i).Name))
	}
	require.ElementsMatch(t, []string{"mem.rss", "mem.swap", "cpu"}, names)
}

func TestImportSkipsUnknownPhases(t *testing.T) {
	trace := `[
		{"name":"process_name","ph":"M","pid":1,"args":{"name":"browser"}},
		{"name":"work","ph":"X","pid":1,"tid":1}
	]`

	imp, _ := newTestImporter(t)
	stats, err := imp.Import(strings.NewReader(trace))
	require.NoError(t, err)
	require.Equal(t, 2, stats.Events)
	require.Equal(t, 1, stats.Skipped)
}

func TestImportRejectsGarbage(t *testing.T) {
	imp, _ := newTestImporter(t)
	_, err := imp.Import(strings.NewReader(`"not a trace"`))
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParseEventID(t *testing.T) {
	tests := map[string]struct {
		raw     string
		want    int64
		wantErr bool
	}{
		"number":      {raw: `42`, want: 42},
		"hex string":  {raw: `"0x2a"`, want: 42},
		"dec string":  {raw: `"42"`, want: 42},
		"empty":       {raw: ``, want: 0},
		"unparseable": {raw: `"xyz"`, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseEventID([]byte(tc.raw))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
