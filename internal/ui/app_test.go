package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabalesh/proctop/internal/models"
)

// fakeSource serves a fixed snapshot.
type fakeSource struct {
	snap models.SystemSnapshot
}

func (f fakeSource) OperatingSystem() string         { return f.snap.OperatingSystem }
func (f fakeSource) Kernel() string                  { return f.snap.Kernel }
func (f fakeSource) MemoryUtilization() float64      { return f.snap.MemoryUtilization }
func (f fakeSource) CPUUtilization() float64         { return f.snap.CPUUtilization }
func (f fakeSource) UpTime() int64                   { return f.snap.UpTime }
func (f fakeSource) TotalProcesses() int             { return f.snap.TotalProcesses }
func (f fakeSource) RunningProcesses() int           { return f.snap.RunningProcesses }
func (f fakeSource) Processes() []models.Process     { return f.snap.Processes }
func (f fakeSource) Snapshot() models.SystemSnapshot { return f.snap }

func testSnapshot() models.SystemSnapshot {
	return models.SystemSnapshot{
		OperatingSystem:   "Debian GNU/Linux 12 (bookworm)",
		Kernel:            "6.1.0-18-amd64",
		MemoryUtilization: 0.75,
		CPUUtilization:    0.4,
		UpTime:            3661,
		TotalProcesses:    2915,
		RunningProcesses:  3,
		Processes: []models.Process{
			{PID: 1, User: "root", Command: "/sbin/init", RamKB: 20480, CPUUtilization: 0.1, UpTime: 100},
			{PID: 300, User: "Unknown", Command: "make", CPUUtilization: 0.5, UpTime: 400},
			{PID: 20, User: "alice", Command: "stress", RamKB: 4096, CPUUtilization: 0.9, UpTime: 200},
		},
	}
}

func newTestApp(t *testing.T, limit int) *App {
	t.Helper()
	app := NewApp(fakeSource{snap: testSnapshot()}, time.Second, limit)

	msg := app.updateStats()()
	require.IsType(t, snapshotMsg{}, msg)
	app.Update(msg)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return app
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewLoading(t *testing.T) {
	app := NewApp(fakeSource{}, time.Second, 10)
	assert.Equal(t, "Loading...", app.View())
}

func TestOverview(t *testing.T) {
	view := newTestApp(t, 10).View()

	assert.Contains(t, view, "Debian GNU/Linux 12 (bookworm)")
	assert.Contains(t, view, "6.1.0-18-amd64")
	assert.Contains(t, view, "Memory: 75.0%")
	assert.Contains(t, view, "CPU: 40.0%")
	assert.Contains(t, view, " 40%", "cpu bar")
	assert.Contains(t, view, " 75%", "memory bar")
	assert.Contains(t, view, "2915")
	assert.Contains(t, view, "01:01:01")
}

func TestProcessTableIsBusiestFirstAndLimited(t *testing.T) {
	app := newTestApp(t, 2)
	require.Len(t, app.top, 2)
	assert.Equal(t, 20, app.top[0].PID)
	assert.Equal(t, 300, app.top[1].PID)

	app.Update(key("right"))
	view := app.View()

	assert.Contains(t, view, "Showing 2 of 3 processes")
	assert.Contains(t, view, "stress")
	assert.Contains(t, view, "make")
	assert.NotContains(t, view, "/sbin/init")
	assert.Contains(t, view, "00:03:20")
}

func TestProcessSelection(t *testing.T) {
	app := newTestApp(t, 0)
	app.Update(key("right"))

	app.Update(key("down"))
	app.Update(key("down"))
	app.Update(key("down"))
	assert.Equal(t, 2, app.selectedRow, "selection stops at the last row")

	app.Update(key("up"))
	assert.Equal(t, 1, app.selectedRow)
}

func TestQuit(t *testing.T) {
	app := newTestApp(t, 10)
	_, cmd := app.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRowStyle(t *testing.T) {
	assert.Equal(t, SelectedRowStyle, rowStyle(1, 1, 0.9), "selection wins over load")
	assert.Equal(t, HotRowStyle, rowStyle(2, 0, hotCPU))
	assert.Equal(t, colorRowEven, rowStyle(2, 0, 0.1).GetForeground())
	assert.Equal(t, colorRowOdd, rowStyle(3, 0, 0.1).GetForeground())
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "abc", truncateString("abcdef", 3))
}
