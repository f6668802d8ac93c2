// Package probe reads CPU and memory usage of a running process.
package probe

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// Process probes a single operating system process using gopsutil.
type Process struct {
	proc *process.Process

	// gopsutil keeps the previous CPU times on the Process value, so
	// consecutive Percent calls must not interleave.
	mu sync.Mutex

	logicalCPUs int
}

// NewSelf returns a probe for the current process.
func NewSelf() (*Process, error) {
	return NewPid(int32(os.Getpid()))
}

// NewPid returns a probe for the process with the given pid.
func NewPid(pid int32) (*Process, error) {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return nil, fmt.Errorf("failed to open process %d: %w", pid, err)
	}

	return &Process{
		proc:        proc,
		logicalCPUs: logicalCPUCount(),
	}, nil
}

// Percent returns the CPU time the process used since the previous call as a
// percentage of one core. It may exceed 100 on multi-core machines. The first
// call only primes the counter and returns 0.
func (p *Process) Percent(ctx context.Context) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	percent, err := p.proc.PercentWithContext(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to get CPU percent: %w", err)
	}
	return percent, nil
}

// LogicalCPUs returns the number of logical processors of the machine.
func (p *Process) LogicalCPUs() int {
	return p.logicalCPUs
}

// ResidentBytes returns the resident set size of the process.
func (p *Process) ResidentBytes(ctx context.Context) (uint64, error) {
	mem, err := p.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get memory info: %w", err)
	}
	return mem.RSS, nil
}

func logicalCPUCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
