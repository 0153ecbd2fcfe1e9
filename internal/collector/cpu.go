package collector

import (
	"strconv"

	"github.com/pkg/errors"
)

// CPUState indexes the counters of the aggregate "cpu" line of /proc/stat.
// The order is fixed by the kernel.
type CPUState int

const (
	CPUUser CPUState = iota
	CPUNice
	CPUSystem
	CPUIdle
	CPUIOWait
	CPUIRQ
	CPUSoftIRQ
	CPUSteal
	CPUGuest
	CPUGuestNice

	numCPUStates
)

var cpuStateNames = [numCPUStates]string{
	"user", "nice", "system", "idle", "iowait",
	"irq", "softirq", "steal", "guest", "guest_nice",
}

func (s CPUState) String() string {
	if s < 0 || s >= numCPUStates {
		return "CPUState(" + strconv.Itoa(int(s)) + ")"
	}
	return cpuStateNames[s]
}

// CPUSample is one reading of the aggregate CPU counters, in jiffies.
type CPUSample [numCPUStates]uint64

// ParseCPUSample decodes the counters that follow the "cpu" label. All ten
// counters must be present; extra trailing tokens are ignored.
func ParseCPUSample(tokens []string) (CPUSample, error) {
	var sample CPUSample
	if len(tokens) < int(numCPUStates) {
		return sample, errors.Errorf("cpu line has %d counters, want %d", len(tokens), numCPUStates)
	}
	for i := range sample {
		v, err := strconv.ParseUint(tokens[i], 10, 64)
		if err != nil {
			return sample, errors.Wrapf(err, "cpu counter %s", CPUState(i))
		}
		sample[i] = v
	}
	return sample, nil
}

// Get returns the counter for one state.
func (c CPUSample) Get(state CPUState) uint64 {
	return c[state]
}

// Active is the time spent doing work: user, nice, system, irq, softirq and steal.
// Guest time is already folded into user and nice by the kernel.
func (c CPUSample) Active() uint64 {
	return c[CPUUser] + c[CPUNice] + c[CPUSystem] + c[CPUIRQ] + c[CPUSoftIRQ] + c[CPUSteal]
}

// Idle is idle plus iowait.
func (c CPUSample) Idle() uint64 {
	return c[CPUIdle] + c[CPUIOWait]
}

func (c CPUSample) Total() uint64 {
	return c.Active() + c.Idle()
}

// Utilization is the since-boot busy fraction of this sample, 0 when empty.
func (c CPUSample) Utilization() float64 {
	return fraction(float64(c.Active()), float64(c.Total()))
}
