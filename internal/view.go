package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stopwatch_tui/internal/button"
)

const (
	screenWidth     = 60
	minListHeight   = 5
	reservedRows    = 14
	defaultListRows = 10
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	readyButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("160")).
				Bold(true).
				Padding(0, 2)

	recordingButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("33")).
				Bold(true).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	recordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func (m *Model) mainView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(screenWidth).Render("Stopwatch"))
	sb.WriteString("\n\n")

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		m.readoutView(),
		"  ",
		m.buttonView(),
	))
	sb.WriteString("\n\n")
	sb.WriteString(m.Note.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.recordListView())
	sb.WriteString("\n")

	if m.Err != nil {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("Record/Stop: Enter | Clear: Ctrl+X | Quit: Esc"))

	return sb.String()
}

func (m *Model) readoutView() string {
	text := m.readout.Text()
	if m.Face.Style == button.StyleRecording {
		return boxStyle.Render(timerRunningStyle.Render(text))
	}
	return boxStyle.Render(timerDisplayStyle.Render(text))
}

func (m *Model) buttonView() string {
	if m.Face.Style == button.StyleRecording {
		return recordingButtonStyle.Render(m.Face.Label)
	}
	return readyButtonStyle.Render(m.Face.Label)
}

// listRows is how many records fit under the controls.
func (m *Model) listRows() int {
	if m.height == 0 {
		return defaultListRows
	}
	return max(m.height-reservedRows, minListHeight)
}

// recordListView shows the newest records that fit, oldest first.
func (m *Model) recordListView() string {
	if len(m.Records) == 0 {
		return boxStyle.Width(screenWidth).Render(inactiveStyle.Render("No records yet. Press Enter to start."))
	}

	rows := m.listRows()
	visible := m.Records
	hidden := 0
	if len(visible) > rows {
		hidden = len(visible) - rows
		visible = visible[hidden:]
	}

	var sb strings.Builder
	if hidden > 0 {
		sb.WriteString(inactiveStyle.Render(fmt.Sprintf("… %d earlier", hidden)))
		sb.WriteString("\n")
	}
	for i, r := range visible {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(recordStyle.Render(r))
	}

	return boxStyle.Width(screenWidth).Render(sb.String())
}
