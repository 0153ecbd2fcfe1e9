package collector

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/prabalesh/proctop/internal/models"
)

// Default locations of the pseudo-files.
const (
	DefaultProcRoot      = "/proc"
	DefaultOSReleasePath = "/etc/os-release"
	DefaultPasswdPath    = "/etc/passwd"
)

// Source is the read-only query interface handed to the display.
type Source interface {
	OperatingSystem() string
	Kernel() string
	MemoryUtilization() float64
	CPUUtilization() float64
	UpTime() int64
	TotalProcesses() int
	RunningProcesses() int
	Processes() []models.Process
	Snapshot() models.SystemSnapshot
}

// Options configures a StatsCollector. Zero values select the host
// filesystem, the default paths and the sysconf clock-tick rate.
type Options struct {
	Fs            FileSystem
	ProcRoot      string
	OSReleasePath string
	PasswdPath    string
	ClockTicks    int64
	Logger        *zap.Logger
}

// StatsCollector derives system and per-process metrics from the proc
// pseudo-filesystem. It keeps no state between calls.
type StatsCollector struct {
	system  *SystemReader
	process *ProcessReader
	logger  *zap.Logger
}

var _ Source = (*StatsCollector)(nil)

func NewStatsCollector(opts Options) *StatsCollector {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.ProcRoot == "" {
		opts.ProcRoot = DefaultProcRoot
	}
	if opts.OSReleasePath == "" {
		opts.OSReleasePath = DefaultOSReleasePath
	}
	if opts.PasswdPath == "" {
		opts.PasswdPath = DefaultPasswdPath
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &StatsCollector{
		system:  NewSystemReader(opts.Fs, opts.ProcRoot, opts.OSReleasePath, opts.Logger),
		process: NewProcessReader(opts.Fs, opts.ProcRoot, opts.PasswdPath, opts.ClockTicks, opts.Logger),
		logger:  opts.Logger,
	}
}

func (s *StatsCollector) System() *SystemReader   { return s.system }
func (s *StatsCollector) Process() *ProcessReader { return s.process }

func (s *StatsCollector) OperatingSystem() string    { return s.system.OperatingSystem() }
func (s *StatsCollector) Kernel() string             { return s.system.Kernel() }
func (s *StatsCollector) MemoryUtilization() float64 { return s.system.MemoryUtilization() }
func (s *StatsCollector) CPUUtilization() float64    { return s.system.CPUUtilization() }
func (s *StatsCollector) UpTime() int64              { return s.system.UpTime() }
func (s *StatsCollector) TotalProcesses() int        { return s.system.TotalProcesses() }
func (s *StatsCollector) RunningProcesses() int      { return s.system.RunningProcesses() }

// ProcessCPUUtilization is the lifetime-average CPU fraction of pid.
func (s *StatsCollector) ProcessCPUUtilization(pid int) float64 {
	return ProcessCPUUtilization(s.system.UpTime(), s.process.UpTime(pid), s.process.ActiveJiffies(pid))
}

// Processes builds a record for every live process, in ascending CPU
// utilization order. Processes that exit while being read are left out.
func (s *StatsCollector) Processes() []models.Process {
	pids := s.system.Pids()
	uptime := s.system.UpTime()

	processes := make([]models.Process, 0, len(pids))
	for _, pid := range pids {
		p, ok := s.newProcess(pid, uptime)
		if !ok {
			continue
		}
		processes = append(processes, p)
	}
	models.SortByCPU(processes)
	return processes
}

func (s *StatsCollector) newProcess(pid int, systemUptime int64) (models.Process, bool) {
	active := s.process.ActiveJiffies(pid)
	if active == UnknownJiffies {
		s.logger.Debug("process vanished", zap.Int("pid", pid))
		return models.Process{}, false
	}
	start := s.process.UpTime(pid)

	return models.Process{
		PID:            pid,
		User:           s.process.User(pid),
		Command:        s.process.Command(pid),
		RamKB:          s.process.RamKB(pid),
		CPUUtilization: ProcessCPUUtilization(systemUptime, start, active),
		UpTime:         ProcessAge(systemUptime, start),
	}, true
}

// Snapshot polls every metric once.
func (s *StatsCollector) Snapshot() models.SystemSnapshot {
	snap := models.SystemSnapshot{
		OperatingSystem:   s.system.OperatingSystem(),
		Kernel:            s.system.Kernel(),
		MemoryUtilization: s.system.MemoryUtilization(),
		CPUUtilization:    s.system.CPUUtilization(),
		UpTime:            s.system.UpTime(),
		TotalProcesses:    s.system.TotalProcesses(),
		RunningProcesses:  s.system.RunningProcesses(),
		Processes:         s.Processes(),
	}
	s.logger.Debug("snapshot collected",
		zap.Int("processes", len(snap.Processes)),
		zap.Float64("mem", snap.MemoryUtilization),
		zap.Float64("cpu", snap.CPUUtilization),
	)
	return snap
}
