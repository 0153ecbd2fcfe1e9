package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessCPUUtilization(t *testing.T) {
	tests := []struct {
		name         string
		systemUptime int64
		start        int64
		active       float64
		want         float64
	}{
		{name: "quarter of lifetime", systemUptime: 1000, start: 600, active: 100, want: 0.25},
		{name: "idle process", systemUptime: 1000, start: 10, active: 0, want: 0},
		{name: "started with the sample", systemUptime: 1000, start: 1000, active: 3, want: 0},
		{name: "started after the sample", systemUptime: 1000, start: 1002, active: 3, want: 0},
		{name: "unknown jiffies", systemUptime: 1000, start: 10, active: UnknownJiffies, want: 0},
		{name: "multi-threaded is clamped", systemUptime: 1000, start: 900, active: 350, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProcessCPUUtilization(tt.systemUptime, tt.start, tt.active)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestProcessAge(t *testing.T) {
	assert.Equal(t, int64(400), ProcessAge(1000, 600))
	assert.Zero(t, ProcessAge(1000, 1000))
	assert.Zero(t, ProcessAge(1000, 1200))
}
