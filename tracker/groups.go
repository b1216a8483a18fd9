// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracker // import "github.com/tracekit/trackstore/tracker"

import (
	"fmt"

	"github.com/tracekit/trackstore/tracestore"
)

// Group is one of the fixed top-level category anchors used as parents for
// grouped global counter tracks.
type Group uint8

const (
	GroupMemory Group = iota
	GroupIo
	GroupVirtio
	GroupNetwork
	GroupPower
	GroupDeviceState
	GroupThermals
	GroupClockFrequency
	GroupBatteryMitigation

	groupCount
)

func groupName(g Group) string {
	switch g {
	case GroupMemory:
		return "Memory"
	case GroupIo:
		return "IO"
	case GroupVirtio:
		return "Virtio"
	case GroupNetwork:
		return "Network"
	case GroupPower:
		return "Power"
	case GroupDeviceState:
		return "Device State"
	case GroupThermals:
		return "Thermals"
	case GroupClockFrequency:
		// The misspelling is load-bearing: existing traces and tooling
		// match this exact string.
		return "Clock Freqeuncy"
	case GroupBatteryMitigation:
		return "Battery Mitigation"
	case groupCount:
		panic("group count sentinel passed as group")
	}
	panic(fmt.Sprintf("unhandled track group %d", uint8(g)))
}

// InternTrackForGroup returns the anchor track of a group, materializing it
// on first use. Exactly one anchor per group exists per session. Anchors
// carry a single reserved "group" dimension holding their display name,
// which keeps the nine keys distinct from each other, from dimensionless
// global tracks, and from name-keyed legacy counters.
func (t *Tracker) InternTrackForGroup(group Group) tracestore.TrackID {
	if id := t.groupTracks[group]; id.Valid() {
		return id
	}

	nameID := t.storage.InternString(groupName(group))
	dims := t.singleDimension(t.groupKey, tracestore.StringValue(nameID))
	id := t.internTrack(ClassificationUnknown, dims, nameID, nil)
	t.groupTracks[group] = id
	return id
}
