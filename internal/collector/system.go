package collector

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SystemReader parses the system-wide pseudo-files. Every method opens, reads
// and closes its file on each call and returns a zero value when the file is
// missing or malformed.
type SystemReader struct {
	source
	procRoot      string
	osReleasePath string
}

func NewSystemReader(fs FileSystem, procRoot, osReleasePath string, logger *zap.Logger) *SystemReader {
	return &SystemReader{
		source:        newSource(fs, logger),
		procRoot:      procRoot,
		osReleasePath: osReleasePath,
	}
}

// OperatingSystem returns PRETTY_NAME from the os-release file, unquoted.
func (r *SystemReader) OperatingSystem() string {
	lines, err := r.readLines(r.osReleasePath, 0)
	if err != nil {
		r.unreadable("os", err)
		return ""
	}
	for _, line := range lines {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found || key != "PRETTY_NAME" {
			continue
		}
		return unquote(value)
	}
	return ""
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// Kernel returns the third token of the version banner ("Linux version 6.1.0 ...").
func (r *SystemReader) Kernel() string {
	line, err := r.firstLine(filepath.Join(r.procRoot, versionFilename))
	if err != nil {
		r.unreadable("kernel", err)
		return ""
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return ""
	}
	return fields[2]
}

// Pids lists the numeric directories of the proc root in enumeration order.
func (r *SystemReader) Pids() []int {
	entries, err := r.fs.Open(r.procRoot)
	if err != nil {
		r.unreadable("pids", err)
		return nil
	}
	defer entries.Close()

	infos, err := entries.Readdir(-1)
	if err != nil {
		r.unreadable("pids", err)
		return nil
	}

	var pids []int
	for _, info := range infos {
		if !info.IsDir() || !isDigits(info.Name()) {
			continue
		}
		pid, err := strconv.Atoi(info.Name())
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MemoryUtilization is (MemTotal - MemFree) / MemTotal, taken from the first
// two lines of meminfo by position.
func (r *SystemReader) MemoryUtilization() float64 {
	total, free, err := r.memTotalFree()
	if err != nil {
		r.unreadable("memory", err)
		return 0
	}
	return fraction(total-free, total)
}

func (r *SystemReader) memTotalFree() (total, free float64, err error) {
	path := filepath.Join(r.procRoot, meminfoFilename)
	lines, err := r.readLines(path, 2)
	if err != nil {
		return 0, 0, err
	}
	if len(lines) < 2 {
		return 0, 0, errors.Errorf("%s: want MemTotal and MemFree lines, got %d lines", path, len(lines))
	}
	values := make([]float64, 2)
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, 0, errors.Errorf("%s line %d: %q", path, i+1, line)
		}
		if values[i], err = strconv.ParseFloat(fields[1], 64); err != nil {
			return 0, 0, errors.Wrapf(err, "%s line %d", path, i+1)
		}
	}
	return values[0], values[1], nil
}

// UpTime returns whole seconds since boot.
func (r *SystemReader) UpTime() int64 {
	line, err := r.firstLine(filepath.Join(r.procRoot, uptimeFilename))
	if err != nil {
		r.unreadable("uptime", err)
		return 0
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0
	}
	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || seconds < 0 {
		r.unreadable("uptime", errors.Errorf("bad uptime %q", fields[0]))
		return 0
	}
	return int64(seconds)
}

// CpuUtilization returns the raw counters of the aggregate cpu line, label
// dropped. It is the source of every CPUSample.
func (r *SystemReader) CpuUtilization() []string {
	line, err := r.firstLine(filepath.Join(r.procRoot, statFilename))
	if err != nil {
		r.unreadable("cpu", err)
		return nil
	}
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != "cpu" {
		return nil
	}
	return fields[1:]
}

// CPUSample parses the current aggregate cpu line. ok is false when the line
// is missing or short; the jiffy accessors then report 0.
func (r *SystemReader) CPUSample() (sample CPUSample, ok bool) {
	sample, err := ParseCPUSample(r.CpuUtilization())
	if err != nil {
		r.unreadable("cpu", err)
		return CPUSample{}, false
	}
	return sample, true
}

func (r *SystemReader) ActiveJiffies() uint64 {
	sample, _ := r.CPUSample()
	return sample.Active()
}

func (r *SystemReader) IdleJiffies() uint64 {
	sample, _ := r.CPUSample()
	return sample.Idle()
}

func (r *SystemReader) Jiffies() uint64 {
	sample, _ := r.CPUSample()
	return sample.Total()
}

// CPUUtilization is the since-boot busy fraction of all CPUs.
func (r *SystemReader) CPUUtilization() float64 {
	sample, _ := r.CPUSample()
	return sample.Utilization()
}

func (r *SystemReader) TotalProcesses() int {
	return r.statCounter("processes")
}

func (r *SystemReader) RunningProcesses() int {
	return r.statCounter("procs_running")
}

func (r *SystemReader) statCounter(key string) int {
	value, ok := r.lookup(key, filepath.Join(r.procRoot, statFilename), key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		r.unreadable(key, errors.Wrapf(err, "parse %s", key))
		return 0
	}
	return n
}
