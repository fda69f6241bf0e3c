package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Init starts loading the source, or lists the history when there is none.
func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{b.waitForEvent(), b.spinnerC.Tick}

	if b.options.Src == "" {
		cmd, err := b.loadHistory()
		if err != nil {
			b.raiseError(fmt.Errorf("history: %w", err))
			return tea.Batch(cmds...)
		}
		b.setState(historyState)
		return tea.Batch(append(cmds, cmd)...)
	}

	return tea.Batch(append(cmds, b.load(b.options.Src, b.options.Seek), b.watch())...)
}
