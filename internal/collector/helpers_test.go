package collector

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	testProcRoot  = "/proc"
	testOSRelease = "/etc/os-release"
	testPasswd    = "/etc/passwd"
	testHZ        = 100
)

// newProcFS writes files (path -> content) into an in-memory filesystem.
func newProcFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

// statLine renders a /proc/<pid>/stat line with the given tick counters.
func statLine(pid int, comm string, utime, stime, cutime, cstime, starttime uint64) string {
	// fields 3-13: state ppid pgrp session tty_nr tpgid flags minflt cminflt majflt cmajflt
	// fields 18-21: priority nice num_threads itrealvalue; then vsize rss
	return fmt.Sprintf("%d (%s) S 1 %d %d 0 -1 4194560 1200 0 3 0 %d %d %d %d 20 0 1 0 %d 1052672 250\n",
		pid, comm, pid, pid, utime, stime, cutime, cstime, starttime)
}
