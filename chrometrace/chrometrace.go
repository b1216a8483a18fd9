// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

// Package chrometrace drives a tracker session from a Chrome Trace Event
// Format (JSON) file. It understands both the bare event-array form and the
// object form with a "traceEvents" member, streaming events through
// json.Decoder instead of loading the whole file.
//
// Only the event kinds that materialize tracks are handled: duration and
// complete events pin down thread tracks, counter events become
// process-scoped counter tracks, and async events become cookie-scoped
// span tracks.
package chrometrace // import "github.com/tracekit/trackstore/chrometrace"

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tracekit/trackstore/internal/log"
	"github.com/tracekit/trackstore/tracestore"
	"github.com/tracekit/trackstore/tracker"
)

var ErrSyntax = errors.New("trace file contained a syntax error")

// event is the wire form of one trace event. Fields irrelevant to track
// creation (timestamps, durations, stack references) are not decoded.
type event struct {
	Name  string          `json:"name"`
	Phase string          `json:"ph"`
	Pid   int64           `json:"pid"`
	Tid   int64           `json:"tid"`
	ID    json.RawMessage `json:"id"`
	Scope string          `json:"scope"`
	Args  map[string]any  `json:"args"`
}

type objectFile struct {
	TraceEvents []json.RawMessage `json:"traceEvents"`
}

// Stats summarizes one import run.
type Stats struct {
	Events  int
	Skipped int
}

// Importer maps trace events onto tracker interning calls. The pid/tid
// registries stand in for the external process and thread registries: each
// distinct pid receives a session-unique upid, each (pid, tid) a utid.
type Importer struct {
	tracker *tracker.Tracker
	storage *tracestore.Storage

	upids map[int64]tracestore.UniquePid
	utids map[[2]int64]tracestore.UniqueTid
}

func NewImporter(t *tracker.Tracker, storage *tracestore.Storage) *Importer {
	return &Importer{
		tracker: t,
		storage: storage,
		upids:   make(map[int64]tracestore.UniquePid),
		utids:   make(map[[2]int64]tracestore.UniqueTid),
	}
}

// Import reads one trace and interns a track for every timeline it
// mentions.
func (imp *Importer) Import(r io.Reader) (Stats, error) {
	decoder := json.NewDecoder(r)

	tok, err := decoder.Token()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read first token: %w", err)
	}

	switch tok {
	case json.Delim('['):
		return imp.importArray(decoder)
	case json.Delim('{'):
		return imp.importObject(r, decoder)
	default:
		return Stats{}, fmt.Errorf("expected '[' or '{' at start of trace: %w", ErrSyntax)
	}
}

func (imp *Importer) importArray(decoder *json.Decoder) (Stats, error) {
	var stats Stats
	for decoder.More() {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return stats, fmt.Errorf("error parsing event: %w", err)
		}
		if err := imp.handleRaw(raw, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (imp *Importer) importObject(r io.Reader, decoder *json.Decoder) (Stats, error) {
	// The object form is not unbounded in practice; decode it in one go.
	var file objectFile
	full := io.MultiReader(strings.NewReader("{"), decoder.Buffered(), r)
	if err := json.NewDecoder(full).Decode(&file); err != nil {
		return Stats{}, fmt.Errorf("error parsing trace object: %w", err)
	}

	var stats Stats
	for _, raw := range file.TraceEvents {
		if err := imp.handleRaw(raw, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (imp *Importer) handleRaw(raw json.RawMessage, stats *Stats) error {
	var e event
	if err := json.Unmarshal(raw, &e); err != nil {
		return fmt.Errorf("error parsing event: %w", err)
	}
	handled, err := imp.handleEvent(&e)
	if err != nil {
		return err
	}
	stats.Events++
	if !handled {
		stats.Skipped++
	}
	return nil
}

func (imp *Importer) handleEvent(e *event) (bool, error) {
	switch e.Phase {
	case "B", "E", "X", "i", "I":
		_, err := imp.tracker.InternThreadTrack(imp.utid(e.Pid, e.Tid), tracker.AutoName{})
		return true, err
	case "C":
		imp.importCounter(e)
		return true, nil
	case "b", "e", "n", "S", "T", "F":
		return true, imp.importAsync(e)
	default:
		log.Debugf("chrometrace: skipping phase %q event %q", e.Phase, e.Name)
		return false, nil
	}
}

// importCounter creates one counter track per series carried in the event's
// args. Multi-series counters qualify the track name with the series key.
func (imp *Importer) importCounter(e *event) {
	upid := imp.upid(e.Pid)
	for _, series := range counterSeries(e) {
		name := imp.storage.InternString(series)
		imp.tracker.LegacyInternProcessCounterTrack(name, upid,
			tracestore.NullStringID, tracestore.NullStringID)
	}
}

func counterSeries(e *event) []string {
	if len(e.Args) <= 1 {
		return []string{e.Name}
	}
	names := make([]string, 0, len(e.Args))
	for key := range e.Args {
		names = append(names, e.Name+"."+key)
	}
	return names
}

// importAsync interns the cookie-scoped span track for an async event.
// End events frequently omit the name; the tracker back-fills it when a
// named event for the same cookie arrives.
func (imp *Importer) importAsync(e *event) error {
	cookie, err := parseEventID(e.ID)
	if err != nil {
		return fmt.Errorf("event %q: %w", e.Name, err)
	}

	name := tracestore.NullStringID
	if e.Name != "" {
		name = imp.storage.InternString(e.Name)
	}
	scope := imp.storage.InternString(e.Scope)

	// Chrome async ids without an explicit scope are process-local.
	processScoped := e.Scope == ""
	imp.tracker.LegacyInternChromeAsyncTrack(name, imp.upid(e.Pid), cookie,
		processScoped, scope)
	return nil
}

// parseEventID accepts the two spellings of async correlation ids found in
// the wild: a JSON number, or a (possibly 0x-prefixed) string.
func parseEventID(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, nil
	}

	var asNumber int64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber, nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err != nil {
		return 0, fmt.Errorf("unparseable event id %s: %w", raw, ErrSyntax)
	}
	if hex, ok := strings.CutPrefix(asString, "0x"); ok {
		if v, err := strconv.ParseInt(hex, 16, 64); err == nil {
			return v, nil
		}
	} else if v, err := strconv.ParseInt(asString, 10, 64); err == nil {
		return v, nil
	}
	return 0, fmt.Errorf("unparseable event id %q: %w", asString, ErrSyntax)
}

func (imp *Importer) upid(pid int64) tracestore.UniquePid {
	if upid, ok := imp.upids[pid]; ok {
		return upid
	}
	upid := tracestore.UniquePid(len(imp.upids))
	imp.upids[pid] = upid
	return upid
}

func (imp *Importer) utid(pid, tid int64) tracestore.UniqueTid {
	key := [2]int64{pid, tid}
	if utid, ok := imp.utids[key]; ok {
		return utid
	}
	utid := tracestore.UniqueTid(len(imp.utids))
	imp.utids[key] = utid
	return utid
}
