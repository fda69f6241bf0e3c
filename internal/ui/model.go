// Package ui holds the transient notification line shown at the bottom of the terminal player.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dotplay-cli/dotplay/style"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// Model holds the current notification, if any.
type Model struct {
	notification string
	id           int
}

// ClearNotificationMsg clears the notification it was scheduled for.
type ClearNotificationMsg struct {
	id int
}

// ClearNotification clears notification id after Lifetime.
func ClearNotification(id int) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{id: id}
	})
}

// Notification returns the text on screen.
func (m *Model) Notification() string {
	return m.notification
}

// Update shows string messages and clears them when their time is up.
// A newer notification is not cleared by an older one's timer.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case string:
		m.id++
		m.notification = msg
		return ClearNotification(m.id)
	case ClearNotificationMsg:
		if msg.id == m.id {
			m.notification = ""
		}
	}
	return nil
}

// View appends the notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
