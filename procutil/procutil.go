// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/process"
)

// Process is the read-only view of an OS process used by the locator.
type Process interface {
	// PID returns the process identifier.
	PID() int32
	// Username returns the name of the user owning the process.
	Username(ctx context.Context) (string, error)
	// Name returns the process name (the executable's short name).
	Name(ctx context.Context) (string, error)
	// Environ returns the process environment as KEY=VALUE entries.
	Environ(ctx context.Context) ([]string, error)
}

// Table enumerates the processes currently running on the host.
type Table interface {
	Processes(ctx context.Context) ([]Process, error)
}

// SystemTable is the host process table.
type SystemTable struct{}

// Processes returns a snapshot of every process on the host.
func (SystemTable) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	result := make([]Process, 0, len(procs))
	for _, p := range procs {
		result = append(result, &systemProcess{proc: p})
	}
	return result, nil
}

// systemProcess adapts a gopsutil process to the Process interface.
type systemProcess struct {
	proc *process.Process
}

func (p *systemProcess) PID() int32 {
	return p.proc.Pid
}

func (p *systemProcess) Username(ctx context.Context) (string, error) {
	return p.proc.UsernameWithContext(ctx)
}

func (p *systemProcess) Name(ctx context.Context) (string, error) {
	return p.proc.NameWithContext(ctx)
}

func (p *systemProcess) Environ(ctx context.Context) ([]string, error) {
	return readEnviron(ctx, p.proc)
}

// FindByPID resolves a single process by its PID.
// The process must exist at the time of the call.
func FindByPID(ctx context.Context, pid int) (Process, error) {
	if pid <= 0 || pid > math.MaxInt32 {
		return nil, fmt.Errorf("invalid PID %d", pid)
	}

	proc, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return nil, fmt.Errorf("error finding process with PID %d: %w", pid, err)
	}
	return &systemProcess{proc: proc}, nil
}

// IsProcessRunning checks if a process with the given PID is running.
// PIDs that do not fit the platform's PID range are never running.
func IsProcessRunning(pid int) bool {
	if pid <= 0 || pid > math.MaxInt32 {
		return false
	}

	exists, err := process.PidExists(int32(pid))
	if err != nil {
		return false
	}
	return exists
}
