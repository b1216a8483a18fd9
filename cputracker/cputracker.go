// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

// Package cputracker maps raw machine-local CPU numbers to session-stable
// UCpu identifiers. Traces that merge several machines may present the same
// raw CPU number more than once; the (machine, cpu) pair disambiguates.
package cputracker // import "github.com/tracekit/trackstore/cputracker"

import (
	"github.com/tracekit/trackstore/tracestore"
)

type cpuKey struct {
	machineID tracestore.MachineID
	cpu       uint32
}

// CPUTracker resolves raw CPU numbers for one session.
type CPUTracker struct {
	storage   *tracestore.Storage
	machineID tracestore.MachineID
	ucpus     map[cpuKey]tracestore.UCpu
}

func New(storage *tracestore.Storage, machineID tracestore.MachineID) *CPUTracker {
	return &CPUTracker{
		storage:   storage,
		machineID: machineID,
		ucpus:     make(map[cpuKey]tracestore.UCpu),
	}
}

// GetOrCreateCPU returns the session-stable id for a raw CPU number,
// registering a row in the cpu table on first sight.
func (t *CPUTracker) GetOrCreateCPU(cpu uint32) tracestore.UCpu {
	key := cpuKey{machineID: t.machineID, cpu: cpu}
	if ucpu, ok := t.ucpus[key]; ok {
		return ucpu
	}
	ucpu := t.storage.InsertCpu(tracestore.CpuRow{
		Cpu:       cpu,
		MachineID: t.machineID,
	})
	t.ucpus[key] = ucpu
	return ucpu
}
