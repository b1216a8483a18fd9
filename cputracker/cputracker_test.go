// Copyright The TrackStore Authors
// SPDX-License-Identifier: Apache-2.0

package cputracker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracekit/trackstore/tracestore"
)

func TestGetOrCreateCPUStable(t *testing.T) {
	storage := tracestore.NewStorage()
	cpus := New(storage, tracestore.HostMachineID)

	a := cpus.GetOrCreateCPU(2)
	require.Equal(t, a, cpus.GetOrCreateCPU(2))
	require.Equal(t, 1, storage.Cpus.RowCount())

	b := cpus.GetOrCreateCPU(5)
	require.NotEqual(t, a, b)
	require.Equal(t, 2, storage.Cpus.RowCount())
	require.Equal(t, uint32(5), storage.Cpus.Row(int(b)).Cpu)
}

func TestMachinesKeepSeparateCPUs(t *testing.T) {
	storage := tracestore.NewStorage()

	host := New(storage, tracestore.HostMachineID)
	remote := New(storage, 1)

	// The same raw CPU number on different machines must not alias.
	a := host.GetOrCreateCPU(0)
	b := remote.GetOrCreateCPU(0)
	require.NotEqual(t, a, b)
	require.Equal(t, tracestore.MachineID(1), storage.Cpus.Row(int(b)).MachineID)
}
