package tui

import (
	"fmt"
	"math"
	"path/filepath"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dotplay-cli/dotplay/history"
	"github.com/dotplay-cli/dotplay/log"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/samber/lo"
)

// seekStep is how far the seek keys move, in percent.
const seekStep = 5

var speeds = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 2, 3, 4}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd := b.notifier.Update(msg); cmd != nil {
		return b, cmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, nil
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.FocusMsg:
		b.options.Focus.Set(true)
		return b, nil
	case tea.BlurMsg:
		b.options.Focus.Set(false)
		return b, nil
	case eventMsg:
		return b, tea.Batch(b.handleEvent(msg), b.waitForEvent())
	case loadedMsg:
		return b, b.handleLoaded(msg)
	case changedMsg:
		return b, tea.Batch(b.reload(), b.waitForChange(), notify("Reloaded "+filepath.Base(msg.file)))
	case watchErrorMsg:
		log.Warnf("watch: %s", msg.err)
		if b.watcher == nil {
			return b, notify("Watching disabled")
		}
		return b, b.waitForChange()
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case playerState:
		return b.updatePlayer(msg)
	case historyState:
		return b.updateHistory(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) handleEvent(msg eventMsg) tea.Cmd {
	b.session = b.api.Snapshot()

	switch msg.event {
	case player.EventNext, player.EventPrevious:
		if b.session.Count > 1 {
			return notify(fmt.Sprintf("Animation %d / %d", msg.detail.Index+1, b.session.Count))
		}
	case player.EventComplete:
		return notify("Completed")
	}

	return nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.quit) {
			return b, tea.Quit
		}
	}

	return b, nil
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	var cmd tea.Cmd

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return b, tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.togglePlay):
		b.api.TogglePlay()
	case bubblesKey.Matches(keyMsg, b.keymap.stop):
		b.api.Stop()
	case bubblesKey.Matches(keyMsg, b.keymap.next):
		b.api.Next()
	case bubblesKey.Matches(keyMsg, b.keymap.previous):
		b.api.Previous()
	case bubblesKey.Matches(keyMsg, b.keymap.seekForward):
		b.seekBy(seekStep)
	case bubblesKey.Matches(keyMsg, b.keymap.seekBackward):
		b.seekBy(-seekStep)
	case bubblesKey.Matches(keyMsg, b.keymap.faster):
		b.api.SetSpeed(stepSpeed(b.session.Speed, 1))
	case bubblesKey.Matches(keyMsg, b.keymap.slower):
		b.api.SetSpeed(stepSpeed(b.session.Speed, -1))
	case bubblesKey.Matches(keyMsg, b.keymap.reverse):
		b.api.SetDirection(-b.session.Direction)
	case bubblesKey.Matches(keyMsg, b.keymap.toggleLoop):
		b.api.ToggleLoop()
		cmd = notify(fmt.Sprintf("Loop %s", onOff(b.api.Snapshot().Loop)))
	case bubblesKey.Matches(keyMsg, b.keymap.toggleBounce):
		b.api.ToggleBounce()
		cmd = notify(fmt.Sprintf("Bounce %s", onOff(b.api.Snapshot().Mode == playlist.Bounce)))
	case bubblesKey.Matches(keyMsg, b.keymap.hide):
		b.hidden = !b.hidden
		b.options.Visible.Set(!b.hidden)
	case bubblesKey.Matches(keyMsg, b.keymap.reload):
		cmd = b.reload()
	case bubblesKey.Matches(keyMsg, b.keymap.history):
		listCmd, err := b.loadHistory()
		if err != nil {
			b.raiseError(err)
			return b, nil
		}
		b.newState(historyState)
		cmd = listCmd
	case bubblesKey.Matches(keyMsg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	b.session = b.api.Snapshot()
	return b, cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.back):
			if len(b.statesHistory) == 0 {
				return b, tea.Quit
			}
			b.previousState()
			return b, nil
		case bubblesKey.Matches(keyMsg, b.keymap.confirm):
			item, ok := b.historyC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}
			entry := item.internal.(*history.Entry)
			b.options.Src = entry.Src
			b.newState(loadingState)
			return b, tea.Batch(b.spinnerC.Tick, b.load(entry.Src, fmt.Sprintf("%d%%", entry.Seeker)))
		case bubblesKey.Matches(keyMsg, b.keymap.remove):
			item, ok := b.historyC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}
			cmd, err := b.removeHistoryEntry(item.internal.(*history.Entry))
			if err != nil {
				b.raiseError(err)
				return b, nil
			}
			return b, cmd
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.back):
			if len(b.statesHistory) == 0 {
				return b, tea.Quit
			}
			b.previousState()
		case bubblesKey.Matches(keyMsg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	return b, nil
}

// seekBy moves the seeker by delta percent, clamped to the animation.
func (b *statefulBubble) seekBy(delta int) {
	b.api.Seek(fmt.Sprintf("%d%%", lo.Clamp(b.session.Seeker+delta, 0, 100)))
}

// stepSpeed moves to the neighbouring preset speed in the given direction.
func stepSpeed(current float64, step int) float64 {
	nearest := 0
	for i, s := range speeds {
		if math.Abs(s-current) < math.Abs(speeds[nearest]-current) {
			nearest = i
		}
	}
	return speeds[lo.Clamp(nearest+step, 0, len(speeds)-1)]
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
