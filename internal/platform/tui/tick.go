// Package tui provides the Bubble Tea integration for Fruit Catch.
// It handles the terminal UI loop, input mapping, and pose delivery.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// PoseMsg carries a zone label from the pose classifier.
type PoseMsg string

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForPose returns a command that blocks for the next label on ch.
// It yields nil once ch is closed, which ends the wait loop.
func waitForPose(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		label, ok := <-ch
		if !ok {
			return nil
		}
		return PoseMsg(label)
	}
}
