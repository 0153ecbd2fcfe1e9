package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cpus(processes []Process) []float64 {
	out := make([]float64, 0, len(processes))
	for _, p := range processes {
		out = append(out, p.CPUUtilization)
	}
	return out
}

func TestSortByCPU(t *testing.T) {
	processes := []Process{
		{PID: 1, CPUUtilization: 0.1},
		{PID: 2, CPUUtilization: 0.9},
		{PID: 3, CPUUtilization: 0.5},
	}

	SortByCPU(processes)
	assert.Equal(t, []float64{0.1, 0.5, 0.9}, cpus(processes))
	assert.True(t, processes[0].Less(processes[1]))
	assert.False(t, processes[2].Less(processes[1]))
}

func TestSortByCPUIsStable(t *testing.T) {
	processes := []Process{
		{PID: 7, CPUUtilization: 0.2},
		{PID: 3, CPUUtilization: 0},
		{PID: 5, CPUUtilization: 0.2},
		{PID: 1, CPUUtilization: 0},
	}

	SortByCPU(processes)

	pids := make([]int, 0, len(processes))
	for _, p := range processes {
		pids = append(pids, p.PID)
	}
	assert.Equal(t, []int{3, 1, 7, 5}, pids)
}

func TestTopByCPU(t *testing.T) {
	ascending := []Process{
		{PID: 1, CPUUtilization: 0.1},
		{PID: 3, CPUUtilization: 0.5},
		{PID: 2, CPUUtilization: 0.9},
	}

	tests := []struct {
		name  string
		limit int
		want  []float64
	}{
		{name: "no limit", limit: 0, want: []float64{0.9, 0.5, 0.1}},
		{name: "negative limit", limit: -1, want: []float64{0.9, 0.5, 0.1}},
		{name: "truncated", limit: 2, want: []float64{0.9, 0.5}},
		{name: "limit above length", limit: 10, want: []float64{0.9, 0.5, 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cpus(TopByCPU(ascending, tt.limit)))
		})
	}

	assert.Equal(t, []float64{0.1, 0.5, 0.9}, cpus(ascending), "input is not modified")
	assert.Empty(t, TopByCPU(nil, 10))
}

func TestProcessRam(t *testing.T) {
	assert.Equal(t, "0", Process{}.Ram())
	assert.Equal(t, "1", Process{RamKB: 2047}.Ram())
	assert.Equal(t, "2", Process{RamKB: 2048}.Ram())
}
