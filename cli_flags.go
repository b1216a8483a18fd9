// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"os"

	"github.com/peterbourgon/ff/v3"
)

const (
	defaultMachineID = 0
)

// Help strings for command line arguments
var (
	inputHelp = "Path to a Chrome Trace Event Format file (.json or .json.gz). " +
		"Reads stdin when omitted."
	machineIDHelp = "Machine tag stored on every track row when merging " +
		"multi-machine traces. 0 marks the host machine."
	lenientNamesHelp = "Downgrade legacy naming allow-list violations from errors " +
		"to warnings."
	verboseModeHelp = "Enable verbose logging."
	dumpTracksHelp  = "Print every interned track instead of the per-table summary."
)

type config struct {
	Input        string
	MachineID    uint
	LenientNames bool
	VerboseMode  bool
	DumpTracks   bool
}

func parseArgs() (*config, error) {
	var args config

	fs := flag.NewFlagSet("trackstore", flag.ExitOnError)

	// Please keep the parameters ordered alphabetically in the source-code.
	fs.BoolVar(&args.DumpTracks, "dump-tracks", false, dumpTracksHelp)

	fs.StringVar(&args.Input, "input", "", inputHelp)

	fs.BoolVar(&args.LenientNames, "lenient-names", false, lenientNamesHelp)

	fs.UintVar(&args.MachineID, "machine-id", defaultMachineID, machineIDHelp)

	fs.BoolVar(&args.VerboseMode, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&args.VerboseMode, "verbose", false, verboseModeHelp)

	fs.Usage = func() {
		fs.PrintDefaults()
	}

	return &args, ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("TRACKSTORE"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
	)
}
