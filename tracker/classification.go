// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package tracker // import "github.com/tracekit/trackstore/tracker"

import "fmt"

// Classification labels the semantic kind of a track. The set is closed:
// it drives which constructor shape is used, which legacy naming variants
// are permitted, and the label serialized onto the row.
type Classification uint8

const (
	ClassificationUnknown Classification = iota
	ClassificationThread
	ClassificationTrigger
	ClassificationInterconnect
	ClassificationLinuxRuntimePowerManagement
	ClassificationIrqCpu
	ClassificationSoftirqCpu
	ClassificationNapiGroCpu
	ClassificationFuncgraphCpu
	ClassificationMaliIrqCpu
	ClassificationPkvmHypervisor
	ClassificationCpuFrequency
	ClassificationCpuFrequencyThrottle
	ClassificationCpuIdle
	ClassificationCpuIdleState
	ClassificationUserTime
	ClassificationSystemModeTime
	ClassificationCpuIdleTime
	ClassificationIoWaitTime
	ClassificationIrqTime
	ClassificationSoftIrqTime
	ClassificationIrqCounter
	ClassificationSoftirqCounter
	ClassificationCpuUtilization
	ClassificationCpuCapacity
	ClassificationCpuNumberRunning
	ClassificationCpuMaxFrequencyLimit
	ClassificationCpuMinFrequencyLimit
	ClassificationGpuFrequency
	ClassificationEnergyEstimationBreakdown
	ClassificationEnergyEstimationBreakdownPerUid
)

// String returns the label stored on rows. The switch is complete; an
// unhandled value is a code defect.
func (c Classification) String() string {
	switch c {
	case ClassificationUnknown:
		return "unknown"
	case ClassificationThread:
		return "thread"
	case ClassificationTrigger:
		return "trigger"
	case ClassificationInterconnect:
		return "interconnect"
	case ClassificationLinuxRuntimePowerManagement:
		return "linux_rpm"
	case ClassificationIrqCpu:
		return "irq_cpu"
	case ClassificationSoftirqCpu:
		return "softirq_cpu"
	case ClassificationNapiGroCpu:
		return "napi_gro_cpu"
	case ClassificationFuncgraphCpu:
		return "funcgraph_cpu"
	case ClassificationMaliIrqCpu:
		return "mali_irq_cpu"
	case ClassificationPkvmHypervisor:
		return "pkvm_hypervisor"
	case ClassificationCpuFrequency:
		return "cpu_frequency"
	case ClassificationCpuFrequencyThrottle:
		return "cpu_frequency_throttle"
	case ClassificationCpuIdle:
		return "cpu_idle"
	case ClassificationCpuIdleState:
		return "cpu_idle_state"
	case ClassificationUserTime:
		return "user_time"
	case ClassificationSystemModeTime:
		return "system_mode_time"
	case ClassificationCpuIdleTime:
		return "cpu_idle_time"
	case ClassificationIoWaitTime:
		return "io_wait_time"
	case ClassificationIrqTime:
		return "irq_time"
	case ClassificationSoftIrqTime:
		return "soft_irq_time"
	case ClassificationIrqCounter:
		return "irq_counter"
	case ClassificationSoftirqCounter:
		return "softirq_counter"
	case ClassificationCpuUtilization:
		return "cpu_utilization"
	case ClassificationCpuCapacity:
		return "cpu_capacity"
	case ClassificationCpuNumberRunning:
		return "cpu_nr_running"
	case ClassificationCpuMaxFrequencyLimit:
		return "cpu_max_frequency_limit"
	case ClassificationCpuMinFrequencyLimit:
		return "cpu_min_frequency_limit"
	case ClassificationGpuFrequency:
		return "gpu_frequency"
	case ClassificationEnergyEstimationBreakdown:
		return "energy_estimation_breakdown"
	case ClassificationEnergyEstimationBreakdownPerUid:
		return "energy_estimation_breakdown_per_uid"
	}
	panic(fmt.Sprintf("unhandled track classification %d", uint8(c)))
}
