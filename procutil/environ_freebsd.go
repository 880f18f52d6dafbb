//go:build freebsd

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jongio/session-env/cmdutil"
	"github.com/shirou/gopsutil/v4/process"
)

// procstatOutput is the libxo JSON document printed by `procstat --libxo json penv`.
type procstatOutput struct {
	Version  string `json:"__version"`
	Procstat struct {
		Env map[string]struct {
			ProcessID int      `json:"process_id"`
			Command   string   `json:"command"`
			Envp      []string `json:"envp"`
		} `json:"env"`
	} `json:"procstat"`
}

func readEnviron(ctx context.Context, proc *process.Process) ([]string, error) {
	if proc == nil {
		return nil, fmt.Errorf("process is nil")
	}

	pidStr := strconv.Itoa(int(proc.Pid))

	output, err := cmdutil.Output(ctx, "procstat", "--libxo", "json", "penv", pidStr)
	if err != nil {
		return nil, fmt.Errorf("failed to run procstat(1): %w", err)
	}

	return parseProcstat(output, pidStr)
}

func parseProcstat(output []byte, pidStr string) ([]string, error) {
	var result procstatOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("failed to parse procstat(1) output: %w", err)
	}

	procEnv, ok := result.Procstat.Env[pidStr]
	if !ok {
		return nil, fmt.Errorf("no environment variables found for PID %s", pidStr)
	}
	if len(procEnv.Envp) == 0 {
		return nil, fmt.Errorf("empty environment for PID %s", pidStr)
	}

	return procEnv.Envp, nil
}
