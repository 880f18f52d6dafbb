//go:build !freebsd

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

func readEnviron(ctx context.Context, proc *process.Process) ([]string, error) {
	return proc.EnvironWithContext(ctx)
}
