// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracker // import "github.com/tracekit/trackstore/tracker"

import (
	"fmt"

	"github.com/tracekit/trackstore/tracestore"
)

// TrackName describes how a track's display name is derived. Exactly four
// variants exist; new call sites must use AutoName or ExplicitName.
type TrackName interface {
	isTrackName()
}

// AutoName leaves the display name absent; it is derived later from the
// classification and dimensions.
type AutoName struct{}

// LegacyInternedName supplies an already-interned handle directly. Only a
// closed set of classifications may still use it.
type LegacyInternedName struct {
	ID tracestore.StringID
}

// LegacyRawName supplies raw text interned on the spot. Only a closed set
// of classifications may still use it.
type LegacyRawName struct {
	Name string
}

// ExplicitName carries a name taken verbatim from the trace's own event
// data and is always permitted.
type ExplicitName struct {
	ID tracestore.StringID
}

func (AutoName) isTrackName()           {}
func (LegacyInternedName) isTrackName() {}
func (LegacyRawName) isTrackName()      {}
func (ExplicitName) isTrackName()       {}

// NamePolicyError reports a legacy naming variant used with a
// classification outside its allow-list.
type NamePolicyError struct {
	Classification Classification
	Variant        string
}

func (e *NamePolicyError) Error() string {
	return fmt.Sprintf("track naming policy: %s not allowed for classification %q",
		e.Variant, e.Classification)
}

// **DO NOT** add new values here. Use AutoName instead.
func legacyInternedNameAllowed(c Classification) bool {
	return c == ClassificationEnergyEstimationBreakdown ||
		c == ClassificationEnergyEstimationBreakdownPerUid ||
		c == ClassificationUnknown
}

// **DO NOT** add new values here. Use AutoName instead.
func legacyRawNameAllowed(c Classification) bool {
	switch c {
	case ClassificationTrigger,
		ClassificationInterconnect,
		ClassificationLinuxRuntimePowerManagement,
		ClassificationIrqCpu,
		ClassificationSoftirqCpu,
		ClassificationNapiGroCpu,
		ClassificationFuncgraphCpu,
		ClassificationMaliIrqCpu,
		ClassificationPkvmHypervisor,
		ClassificationCpuFrequency,
		ClassificationCpuFrequencyThrottle,
		ClassificationCpuIdle,
		ClassificationUserTime,
		ClassificationSystemModeTime,
		ClassificationCpuIdleTime,
		ClassificationIoWaitTime,
		ClassificationIrqTime,
		ClassificationSoftIrqTime,
		ClassificationIrqCounter,
		ClassificationSoftirqCounter,
		ClassificationCpuUtilization,
		ClassificationCpuCapacity,
		ClassificationCpuNumberRunning,
		ClassificationCpuMaxFrequencyLimit,
		ClassificationCpuMinFrequencyLimit:
		return true
	}
	return false
}
