package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Palette (ANSI 256).
const (
	colorAccent  = lipgloss.Color("39")  // blue
	colorMuted   = lipgloss.Color("244") // grey
	colorBorder  = lipgloss.Color("238")
	colorValue   = lipgloss.Color("229") // pale yellow
	colorRowEven = lipgloss.Color("252")
	colorRowOdd  = lipgloss.Color("246")
	colorHot     = lipgloss.Color("203") // red
)

// Usage bar gradients, low to high.
const (
	cpuBarFrom = "#5FD7AF"
	cpuBarTo   = "#FF5F5F"
	memBarFrom = "#5FAFFF"
	memBarTo   = "#AF87FF"
)

var (
	BaseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(colorAccent).
			Bold(true).
			Align(lipgloss.Center)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	ScrollHintStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Italic(true)

	TabStyle = lipgloss.NewStyle().
			Padding(0, 2)

	ActiveTabStyle = TabStyle.
			Foreground(lipgloss.Color("231")).
			Background(colorBorder).
			Bold(true)

	InactiveTabStyle = TabStyle.
				Foreground(colorMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	ValueStyle = lipgloss.NewStyle().
			Foreground(colorValue)

	// BarLabelStyle titles the CPU and memory bars; BarStyle indents them under it.
	BarLabelStyle = lipgloss.NewStyle().
			Foreground(colorValue).
			Bold(true)

	BarStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true).
				Underline(true).
				PaddingLeft(1)

	TableCellStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	SelectedRowStyle = TableCellStyle.
				Background(colorAccent).
				Foreground(lipgloss.Color("16"))

	// HotRowStyle marks processes using at least hotCPU of one CPU.
	HotRowStyle = TableCellStyle.
			Foreground(colorHot)
)

// hotCPU is the lifetime CPU fraction from which a table row is highlighted.
const hotCPU = 0.5

func newCPUBar() progress.Model {
	return progress.New(progress.WithGradient(cpuBarFrom, cpuBarTo))
}

func newMemoryBar() progress.Model {
	return progress.New(progress.WithGradient(memBarFrom, memBarTo))
}

// rowStyle picks the style of table row i.
func rowStyle(i, selected int, cpu float64) lipgloss.Style {
	switch {
	case i == selected:
		return SelectedRowStyle
	case cpu >= hotCPU:
		return HotRowStyle
	case i%2 == 0:
		return TableCellStyle.Foreground(colorRowEven)
	default:
		return TableCellStyle.Foreground(colorRowOdd)
	}
}
