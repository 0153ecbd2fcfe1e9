package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prabalesh/proctop/internal/collector"
	"github.com/prabalesh/proctop/internal/format"
	"github.com/prabalesh/proctop/internal/models"
)

const (
	tabOverview = iota
	tabProcesses
)

type tickMsg time.Time

type snapshotMsg models.SystemSnapshot

type App struct {
	source   collector.Source
	interval time.Duration
	limit    int

	snapshot models.SystemSnapshot
	top      []models.Process

	activeTab   int
	tabs        []string
	width       int
	height      int
	selectedRow int
	// Vertical scrolling state
	verticalScrollOffset int
	contentHeight        int

	cpuProgress    progress.Model
	memoryProgress progress.Model
}

// NewApp returns the display model. limit caps the process table (0 = all).
func NewApp(source collector.Source, interval time.Duration, limit int) *App {
	return &App{
		source:         source,
		interval:       interval,
		limit:          limit,
		tabs:           []string{"Overview", "Processes"},
		cpuProgress:    newCPUBar(),
		memoryProgress: newMemoryBar(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.updateStats(),
		a.tick(),
	)
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) updateStats() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(a.source.Snapshot())
	}
}

// Get the height available for content (excluding title, tabs and help)
func (a *App) getContentAreaHeight() int {
	reservedHeight := 8
	return max(1, a.height-reservedHeight)
}

func (a *App) getMaxScrollOffset() int {
	availableHeight := a.getContentAreaHeight()
	if a.contentHeight <= availableHeight {
		return 0
	}
	return a.contentHeight - availableHeight
}

func (a *App) clampVerticalScroll() {
	a.verticalScrollOffset = max(0, min(a.verticalScrollOffset, a.getMaxScrollOffset()))
}

func (a *App) applyVerticalScroll(content string) string {
	lines := strings.Split(content, "\n")
	a.contentHeight = len(lines)
	a.clampVerticalScroll()

	availableHeight := a.getContentAreaHeight()
	if len(lines) <= availableHeight {
		return content
	}

	startLine := a.verticalScrollOffset
	endLine := min(startLine+availableHeight, len(lines))
	result := strings.Join(lines[startLine:endLine], "\n")

	if a.verticalScrollOffset > 0 {
		result = ScrollHintStyle.Render("▲ More content above") + "\n" + result
	}
	if a.verticalScrollOffset < a.getMaxScrollOffset() {
		result = result + "\n" + ScrollHintStyle.Render("▼ More content below")
	}
	return result
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		progressWidth := max(10, min(50, a.width-20))
		a.cpuProgress.Width = progressWidth
		a.memoryProgress.Width = progressWidth
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "left", "h":
			if a.activeTab > 0 {
				a.activeTab--
				a.verticalScrollOffset = 0
			}
		case "right", "l", "tab":
			if a.activeTab < len(a.tabs)-1 {
				a.activeTab++
				a.verticalScrollOffset = 0
			}
		case "up", "k":
			if a.activeTab == tabProcesses {
				if a.selectedRow > 0 {
					a.selectedRow--
				}
			} else if a.verticalScrollOffset > 0 {
				a.verticalScrollOffset--
			}
		case "down", "j":
			if a.activeTab == tabProcesses {
				if a.selectedRow < len(a.top)-1 {
					a.selectedRow++
				}
			} else {
				a.verticalScrollOffset++
				a.clampVerticalScroll()
			}
		case "home":
			a.verticalScrollOffset = 0
			a.selectedRow = 0
		case "end":
			a.verticalScrollOffset = a.getMaxScrollOffset()
			a.selectedRow = max(0, len(a.top)-1)
		}

	case tickMsg:
		return a, tea.Batch(a.updateStats(), a.tick())

	case snapshotMsg:
		a.snapshot = models.SystemSnapshot(msg)
		a.top = models.TopByCPU(a.snapshot.Processes, a.limit)
		if a.selectedRow >= len(a.top) {
			a.selectedRow = max(0, len(a.top)-1)
		}
	}

	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	title := TitleStyle.Width(a.width).Render("ProcTop")
	tabs := a.renderTabs()

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverview()
	case tabProcesses:
		content = a.renderProcesses()
	}

	help := HelpStyle.Render("←/→ h/l: tabs • ↑/↓ k/j: scroll • Home/End: top/bottom • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		tabs,
		"",
		a.applyVerticalScroll(content),
		"",
		help,
	)
}

func (a *App) renderTabs() string {
	var tabElements []string
	for i, tab := range a.tabs {
		if i == a.activeTab {
			tabElements = append(tabElements, ActiveTabStyle.Render(tab))
		} else {
			tabElements = append(tabElements, InactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, tabElements...)
}

func (a *App) renderOverview() string {
	snap := a.snapshot

	return BaseStyle.Width(max(20, a.width-4)).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			HeaderStyle.Render("System Overview"),
			"",
			fmt.Sprintf("%s %s", LabelStyle.Render("OS:"), ValueStyle.Render(snap.OperatingSystem)),
			fmt.Sprintf("%s %s", LabelStyle.Render("Kernel:"), ValueStyle.Render(snap.Kernel)),
			"",
			BarLabelStyle.Render(fmt.Sprintf("CPU: %.1f%%", snap.CPUUtilization*100)),
			BarStyle.Render(a.cpuProgress.ViewAs(snap.CPUUtilization)),
			"",
			BarLabelStyle.Render(fmt.Sprintf("Memory: %.1f%%", snap.MemoryUtilization*100)),
			BarStyle.Render(a.memoryProgress.ViewAs(snap.MemoryUtilization)),
			"",
			fmt.Sprintf("%s %d", LabelStyle.Render("Total Processes:"), snap.TotalProcesses),
			fmt.Sprintf("%s %d", LabelStyle.Render("Running Processes:"), snap.RunningProcesses),
			fmt.Sprintf("%s %s", LabelStyle.Render("Up Time:"), ValueStyle.Render(format.ElapsedTime(snap.UpTime))),
		),
	)
}

func (a *App) renderProcesses() string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("Process List"))
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("Showing %d of %d processes", len(a.top), len(a.snapshot.Processes)))
	content.WriteString("\n\n")

	header := fmt.Sprintf("%-8s %-10s %7s %9s %10s %s",
		"PID", "USER", "CPU[%]", "RAM[MB]", "TIME+", "COMMAND")
	content.WriteString(TableHeaderStyle.Render(header))
	content.WriteString("\n")

	usedWidth := 8 + 1 + 10 + 1 + 7 + 1 + 9 + 1 + 10 + 1
	commandWidth := max(10, a.width-usedWidth-4)

	for i, proc := range a.top {
		row := fmt.Sprintf("%-8d %-10s %7.1f %9s %10s %s",
			proc.PID,
			truncateString(proc.User, 10),
			proc.CPUUtilization*100,
			proc.Ram(),
			format.ElapsedTime(proc.UpTime),
			truncateString(proc.Command, commandWidth))

		content.WriteString(rowStyle(i, a.selectedRow, proc.CPUUtilization).Render(row))
		content.WriteString("\n")
	}

	return BaseStyle.Render(content.String())
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
