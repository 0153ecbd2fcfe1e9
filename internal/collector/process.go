package collector

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// UnknownUser is returned by User when a UID cannot be resolved.
const UnknownUser = "Unknown"

// UnknownJiffies is returned by ActiveJiffies when the stat file is unreadable.
const UnknownJiffies = -1.0

// ProcessReader parses the per-process pseudo-files below the proc root.
type ProcessReader struct {
	source
	procRoot   string
	passwdPath string
	clockTicks int64
}

// NewProcessReader builds a reader. clockTicks is the CLK_TCK value used to
// turn stat tick counts into seconds; values <= 0 are replaced by ClockTicks().
func NewProcessReader(fs FileSystem, procRoot, passwdPath string, clockTicks int64, logger *zap.Logger) *ProcessReader {
	r := &ProcessReader{
		source:     newSource(fs, logger),
		procRoot:   procRoot,
		passwdPath: passwdPath,
		clockTicks: clockTicks,
	}
	if r.clockTicks <= 0 {
		r.clockTicks = ClockTicks(r.logger)
	}
	return r
}

func (r *ProcessReader) path(pid int, name string) string {
	return filepath.Join(r.procRoot, strconv.Itoa(pid), name)
}

// Command returns argv[0]. Kernel threads have an empty cmdline and yield "".
func (r *ProcessReader) Command(pid int) string {
	content, err := r.readFile(r.path(pid, cmdlineFilename))
	if err != nil {
		r.unreadable("command", err)
		return ""
	}
	args := strings.FieldsFunc(content, func(c rune) bool {
		return c == 0 || unicode.IsSpace(c)
	})
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// RamKB returns VmSize in kB, 0 when absent.
func (r *ProcessReader) RamKB(pid int) int64 {
	value, ok := r.lookup("ram", r.path(pid, statusFilename), "VmSize:")
	if !ok {
		return 0
	}
	kb, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		r.unreadable("ram", errors.Wrap(err, "parse VmSize"))
		return 0
	}
	return kb
}

// Ram returns VmSize in whole MB.
func (r *ProcessReader) Ram(pid int) string {
	return strconv.FormatInt(r.RamKB(pid)/1024, 10)
}

// Uid returns the real UID from the status file, "" when absent.
func (r *ProcessReader) Uid(pid int) string {
	value, _ := r.lookup("uid", r.path(pid, statusFilename), "Uid:")
	return value
}

// User resolves Uid(pid) against the password database.
func (r *ProcessReader) User(pid int) string {
	uid := r.Uid(pid)
	if uid == "" {
		return UnknownUser
	}
	return r.lookupUser(uid)
}

func (r *ProcessReader) lookupUser(uid string) string {
	f, err := r.fs.Open(r.passwdPath)
	if err != nil {
		r.unreadable("user", errors.Wrapf(err, "open %s", r.passwdPath))
		return UnknownUser
	}
	defer f.Close()

	scanner := newLineScanner(f)
	for scanner.Scan() {
		// name:password:uid:gid:gecos:home:shell
		fields := strings.SplitN(scanner.Text(), ":", 4)
		if len(fields) < 3 {
			continue
		}
		if fields[2] == uid {
			return fields[0]
		}
	}
	if err := scanner.Err(); err != nil {
		r.unreadable("user", errors.Wrapf(err, "scan %s", r.passwdPath))
	}
	return UnknownUser
}

func (r *ProcessReader) stat(pid int) (procStat, error) {
	content, err := r.readFile(r.path(pid, statFilename))
	if err != nil {
		return procStat{}, err
	}
	return parseProcStat(content)
}

// UpTime returns the process start time in whole seconds since boot.
func (r *ProcessReader) UpTime(pid int) int64 {
	st, err := r.stat(pid)
	if err != nil {
		r.unreadable("process uptime", err)
		return 0
	}
	return int64(st.StartTime) / r.clockTicks
}

// ActiveJiffies returns utime+stime+cutime+cstime converted to seconds, or
// UnknownJiffies when the stat file cannot be read or parsed.
func (r *ProcessReader) ActiveJiffies(pid int) float64 {
	st, err := r.stat(pid)
	if err != nil {
		r.unreadable("process jiffies", err)
		return UnknownJiffies
	}
	return st.ActiveTicks() / float64(r.clockTicks)
}
