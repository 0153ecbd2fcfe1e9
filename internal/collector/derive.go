package collector

// fraction returns part/whole clamped to [0,1]; a non-positive whole yields 0.
func fraction(part, whole float64) float64 {
	if whole <= 0 || part <= 0 {
		return 0
	}
	if part >= whole {
		return 1
	}
	return part / whole
}

// ProcessCPUUtilization is the lifetime-average CPU fraction of a process:
// active CPU seconds over the seconds it has been alive.
//
// systemUptime and processStart are seconds since boot. active is the value
// of ProcessReader.ActiveJiffies; its negative "unknown" sentinel yields 0, as
// does a process that started at or after the uptime sample was taken.
func ProcessCPUUtilization(systemUptime, processStart int64, active float64) float64 {
	if active < 0 {
		return 0
	}
	alive := systemUptime - processStart
	if alive <= 0 {
		return 0
	}
	return fraction(active, float64(alive))
}

// ProcessAge is the number of seconds a process has been running, never negative.
func ProcessAge(systemUptime, processStart int64) int64 {
	if age := systemUptime - processStart; age > 0 {
		return age
	}
	return 0
}
