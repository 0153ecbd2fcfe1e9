package models

import (
	"sort"
	"strconv"
)

// Process is one process as seen by a single snapshot.
type Process struct {
	PID            int     `json:"pid"`
	User           string  `json:"user"`
	Command        string  `json:"command"`
	RamKB          int64   `json:"ram_kb"`
	CPUUtilization float64 `json:"cpu_utilization"` // lifetime average, 0-1
	UpTime         int64   `json:"uptime_seconds"`  // seconds since the process started
}

// Ram returns the virtual memory size in whole MB.
func (p Process) Ram() string {
	return strconv.FormatInt(p.RamKB/1024, 10)
}

// Less orders processes by CPU utilization, lowest first.
func (p Process) Less(other Process) bool {
	return p.CPUUtilization < other.CPUUtilization
}

// SortByCPU sorts processes in natural (ascending CPU utilization) order.
// Processes with equal utilization keep their relative order.
func SortByCPU(processes []Process) {
	sort.SliceStable(processes, func(i, j int) bool {
		return processes[i].Less(processes[j])
	})
}

// TopByCPU returns up to limit processes, busiest first. processes must be in
// natural order; it is not modified. limit <= 0 returns all of them.
func TopByCPU(processes []Process, limit int) []Process {
	n := len(processes)
	if limit > 0 && limit < n {
		n = limit
	}
	top := make([]Process, 0, n)
	for i := len(processes) - 1; i >= 0 && len(top) < n; i-- {
		top = append(top, processes[i])
	}
	return top
}
