package collector

import (
	"github.com/tklauser/go-sysconf"
	"go.uber.org/zap"
)

// userHZ is the tick rate the kernel has exported to userspace on every
// mainstream architecture. It is only used when sysconf cannot answer.
const userHZ = 100

// ClockTicks returns the number of clock ticks per second (sysconf(_SC_CLK_TCK)).
func ClockTicks(logger *zap.Logger) int64 {
	hz, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || hz <= 0 {
		if logger != nil {
			logger.Warn("sysconf(_SC_CLK_TCK) failed, assuming USER_HZ",
				zap.Int64("hz", userHZ), zap.Error(err))
		}
		return userHZ
	}
	return hz
}
