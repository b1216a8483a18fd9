// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

// trackstore ingests a Chrome Trace Event Format file and prints the track
// tables that one processing session interned from it.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/tracekit/trackstore/chrometrace"
	"github.com/tracekit/trackstore/cputracker"
	"github.com/tracekit/trackstore/internal/log"
	"github.com/tracekit/trackstore/nametrans"
	"github.com/tracekit/trackstore/tracestore"
	"github.com/tracekit/trackstore/tracker"
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	args, err := parseArgs()
	if err != nil {
		log.Errorf("Failed to parse arguments: %v", err)
		return 1
	}
	if args.VerboseMode {
		log.SetDebugLogger()
	}

	input, err := openInput(args.Input)
	if err != nil {
		log.Errorf("Failed to open input: %v", err)
		return 1
	}
	defer input.Close()

	storage := tracestore.NewStorage()
	machineID := tracestore.MachineID(args.MachineID)

	var opts []tracker.Option
	if machineID != tracestore.HostMachineID {
		opts = append(opts, tracker.WithMachineID(machineID))
	}
	if args.LenientNames {
		opts = append(opts, tracker.WithLenientNamePolicy())
	}

	trk := tracker.New(storage, cputracker.New(storage, machineID),
		nametrans.New(), opts...)
	importer := chrometrace.NewImporter(trk, storage)

	stats, err := importer.Import(input)
	if err != nil {
		log.Errorf("Import failed after %d events: %v", stats.Events, err)
		return 1
	}
	log.Infof("Imported %d events (%d without track mapping), session %s",
		stats.Events, stats.Skipped, storage.SessionID())

	if args.DumpTracks {
		dumpTracks(storage)
	} else {
		dumpSummary(storage)
	}
	return 0
}

// openInput returns the trace stream, transparently decompressing gzipped
// files.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return struct {
		io.Reader
		io.Closer
	}{gz, f}, nil
}

func dumpSummary(s *tracestore.Storage) {
	fmt.Printf("tracks:                 %d\n", s.Tracks.RowCount())
	fmt.Printf("counter tracks:         %d\n", s.CounterTracks.RowCount())
	fmt.Printf("process tracks:         %d\n", s.ProcessTracks.RowCount())
	fmt.Printf("process counter tracks: %d\n", s.ProcessCounterTracks.RowCount())
	fmt.Printf("thread tracks:          %d\n", s.ThreadTracks.RowCount())
	fmt.Printf("thread counter tracks:  %d\n", s.ThreadCounterTracks.RowCount())
	fmt.Printf("cpu tracks:             %d\n", s.CpuTracks.RowCount())
	fmt.Printf("cpu counter tracks:     %d\n", s.CpuCounterTracks.RowCount())
	fmt.Printf("gpu tracks:             %d\n", s.GpuTracks.RowCount())
	fmt.Printf("gpu counter tracks:     %d\n", s.GpuCounterTracks.RowCount())
	fmt.Printf("perf counter tracks:    %d\n", s.PerfCounterTracks.RowCount())
	fmt.Printf("total:                  %d\n", s.TrackCount())
}

func dumpTracks(s *tracestore.Storage) {
	for id := 0; id < s.TrackCount(); id++ {
		row := s.TrackByID(tracestore.TrackID(id))
		name := s.GetString(row.Name)
		if name == "" {
			name = "<unnamed>"
		}
		fmt.Printf("%6d %-28s %s\n", id, s.GetString(row.Classification), name)
	}
}
