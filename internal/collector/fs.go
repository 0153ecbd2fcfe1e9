package collector

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FileSystem is the filesystem the readers parse. Production code uses the
// host filesystem; tests build synthetic proc trees on afero.NewMemMapFs().
type FileSystem = afero.Fs

// pseudo-file names below the proc root
const (
	versionFilename = "version"
	meminfoFilename = "meminfo"
	uptimeFilename  = "uptime"
	statFilename    = "stat"
	cmdlineFilename = "cmdline"
	statusFilename  = "status"
)

// maxLineSize bounds a single pseudo-file line. The intr line of /proc/stat
// carries one counter per IRQ and outgrows bufio's 64 KiB default on large hosts.
const maxLineSize = 16 << 20

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

// source bundles what every reader needs to open a pseudo-file.
type source struct {
	fs     FileSystem
	logger *zap.Logger
}

func newSource(fs FileSystem, logger *zap.Logger) source {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return source{fs: fs, logger: logger}
}

func (s source) readFile(path string) (string, error) {
	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(content), nil
}

// readLines returns at most n lines of path; n <= 0 reads the whole file.
func (s source) readLines(path string, n int) ([]string, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var lines []string
	scanner := newLineScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) == n {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "scan %s", path)
	}
	return lines, nil
}

func (s source) firstLine(path string) (string, error) {
	lines, err := s.readLines(path, 1)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", errors.Errorf("%s is empty", path)
	}
	return lines[0], nil
}

// unreadable logs a swallowed failure; callers then return their sentinel.
func (s source) unreadable(what string, err error) {
	s.logger.Debug("pseudo-file unreadable", zap.String("metric", what), zap.Error(err))
}

// lookup is FindValueByKey with the failure logged.
func (s source) lookup(what, path, key string) (string, bool) {
	value, ok, err := findValueByKey(s.fs, path, key)
	if err != nil {
		s.unreadable(what, err)
	}
	return value, ok
}

// FindValueByKey scans a line-oriented "KEY VALUE [UNIT]" file and returns the
// VALUE of the first line whose KEY equals key exactly, punctuation included
// ("VmSize:" and "VmSize" are different keys). ok is false when the file
// cannot be read or no line carries the key.
func FindValueByKey(fs FileSystem, path, key string) (value string, ok bool) {
	value, ok, _ = findValueByKey(fs, path, key)
	return value, ok
}

func findValueByKey(fs FileSystem, path, key string) (string, bool, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", false, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	scanner := newLineScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		if fields[0] == key {
			return fields[1], true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, errors.Wrapf(err, "scan %s", path)
	}
	return "", false, nil
}
