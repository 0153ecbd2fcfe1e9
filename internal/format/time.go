// Package format provides display formatting helpers.
package format

import "fmt"

// ElapsedTime renders seconds as HH:MM:SS. Each field is zero-padded to two
// digits; hours keep growing past 99 instead of wrapping. Negative input is
// treated as 0.
func ElapsedTime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
