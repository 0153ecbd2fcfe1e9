package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabalesh/proctop/internal/models"
)

func noEnv(string) string { return "" }

// writeHost lays out a minimal proc tree plus os-release and passwd under a
// temp dir and returns the flags pointing at it.
func writeHost(t *testing.T) []string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"proc/version":   "Linux version 6.1.0-18-amd64 (debian-kernel@lists.debian.org)\n",
		"proc/meminfo":   "MemTotal: 2000 kB\nMemFree: 500 kB\n",
		"proc/uptime":    "1000.50 3000.00\n",
		"proc/stat":      "cpu  30 0 10 50 10 0 0 0 0 0\nprocesses 42\nprocs_running 2\n",
		"proc/1/stat":    "1 (init) S 0 1 1 0 -1 4194560 1200 0 3 0 0 0 0 0 20 0 1 0 0 1052672 250\n",
		"proc/1/status":  "Name:\tinit\nUid:\t0\t0\t0\t0\nVmSize:\t  2048 kB\n",
		"proc/1/cmdline": "/sbin/init\x00",
		"os-release":     "PRETTY_NAME=\"Test Linux\"\n",
		"passwd":         "root:x:0:0:root:/root:/bin/sh\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return []string{
		"-proc", filepath.Join(root, "proc"),
		"-os-release", filepath.Join(root, "os-release"),
		"-passwd", filepath.Join(root, "passwd"),
		"-log-file", filepath.Join(root, "proctop.log"),
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("stdout closed") }

func TestRunJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(append(writeHost(t), "-json"), noEnv, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var snap models.SystemSnapshot
	require.NoError(t, jsoniter.Unmarshal(stdout.Bytes(), &snap))
	assert.Equal(t, "Test Linux", snap.OperatingSystem)
	assert.Equal(t, "6.1.0-18-amd64", snap.Kernel)
	assert.InDelta(t, 0.75, snap.MemoryUtilization, 1e-9)
	assert.InDelta(t, 0.4, snap.CPUUtilization, 1e-9)
	assert.Equal(t, int64(1000), snap.UpTime)
	assert.Equal(t, 42, snap.TotalProcesses)
	assert.Equal(t, 2, snap.RunningProcesses)
	require.Len(t, snap.Processes, 1)
	assert.Equal(t, "root", snap.Processes[0].User)
	assert.Equal(t, "/sbin/init", snap.Processes[0].Command)
}

func TestRunFailureIsLogged(t *testing.T) {
	args := writeHost(t)
	logFile := args[len(args)-1]

	var stderr bytes.Buffer
	code := run(append(args, "-json"), noEnv, brokenWriter{}, &stderr)
	assert.Equal(t, 1, code)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "encode snapshot")
	assert.Contains(t, string(content), "stdout closed")
}

func TestRunBadArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"-bogus"}, noEnv, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "proctop:")
	assert.Empty(t, stdout.String())

	stderr.Reset()
	assert.Equal(t, 0, run([]string{"-h"}, noEnv, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "-interval")
}
