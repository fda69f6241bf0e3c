package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/history"
	"github.com/dotplay-cli/dotplay/log"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/samber/lo"
)

type (
	eventMsg struct {
		event  player.Event
		detail player.Detail
	}

	loadedMsg struct {
		src  string
		seek string
		err  error
	}

	changedMsg struct {
		file string
	}

	watchErrorMsg struct {
		err error
	}
)

// eventQueue hands player events to the UI loop without ever blocking the
// emitter. Lifecycle events are all kept in order; frame events collapse into
// the latest one, since each carries the full position.
type eventQueue struct {
	mu     sync.Mutex
	events []eventMsg
	frame  *eventMsg
	wake   chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{wake: make(chan struct{}, 1)}
}

func (q *eventQueue) push(msg eventMsg) {
	q.mu.Lock()
	if msg.event == player.EventFrame {
		q.frame = &msg
	} else {
		q.events = append(q.events, msg)
	}
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *eventQueue) pop() (eventMsg, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch {
	case len(q.events) > 0:
		msg := q.events[0]
		q.events = q.events[1:]
		return msg, true
	case q.frame != nil:
		msg := *q.frame
		q.frame = nil
		return msg, true
	default:
		return eventMsg{}, false
	}
}

// forward queues a player event for the UI loop. It runs on whichever
// goroutine emitted the event, including the UI loop itself.
func (b *statefulBubble) forward(ev player.Event, d player.Detail) {
	b.events.push(eventMsg{event: ev, detail: d})
}

func (b *statefulBubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-b.done:
				return nil
			default:
			}

			if msg, ok := b.events.pop(); ok {
				return msg
			}

			select {
			case <-b.events.wake:
			case <-b.done:
				return nil
			}
		}
	}
}

// load fetches src in the background. seek, when set, is applied once the
// animation is ready.
func (b *statefulBubble) load(src, seek string) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{src: src, seek: seek, err: b.api.Load(context.Background(), src)}
	}
}

func (b *statefulBubble) reload() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{src: b.session.Src, err: b.api.Reload(context.Background())}
	}
}

// watch starts watching the source file when it is a local one.
func (b *statefulBubble) watch() tea.Cmd {
	src := b.options.Src
	if !b.options.Watch || src == "" || animation.IsRemote(src) {
		return nil
	}

	w, err := animation.NewWatcher(src)
	if err != nil {
		return func() tea.Msg {
			return watchErrorMsg{err: fmt.Errorf("watch %s: %w", src, err)}
		}
	}

	b.watcher = w
	return b.waitForChange()
}

func (b *statefulBubble) waitForChange() tea.Cmd {
	w := b.watcher
	return func() tea.Msg {
		select {
		case file, ok := <-w.Events:
			if !ok {
				return nil
			}
			return changedMsg{file: file}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrorMsg{err: err}
		}
	}
}

// handleLoaded settles a finished load. Load failures stay in the player
// view, which shows the player's error message.
func (b *statefulBubble) handleLoaded(msg loadedMsg) tea.Cmd {
	if errors.Is(msg.err, player.ErrLoadSuperseded) {
		return nil
	}

	b.statesHistory = nil
	b.setState(playerState)

	if msg.err != nil {
		log.Errorf("load %s: %s", msg.src, msg.err)
	} else if msg.seek != "" {
		b.api.Seek(msg.seek)
	}

	b.session = b.api.Snapshot()
	return nil
}

func (b *statefulBubble) loadHistory() (tea.Cmd, error) {
	entries, err := history.Recent()
	if err != nil {
		return nil, err
	}

	items := lo.Map(entries, func(e *history.Entry, _ int) list.Item {
		return &listItem{internal: e}
	})

	return b.historyC.SetItems(items), nil
}

func (b *statefulBubble) removeHistoryEntry(entry *history.Entry) (tea.Cmd, error) {
	if err := history.Remove(entry); err != nil {
		return nil, err
	}

	cmd, err := b.loadHistory()
	if err != nil {
		return nil, err
	}

	return tea.Batch(cmd, notify(fmt.Sprintf("Removed %s", entry.Title))), nil
}

func notify(text string) tea.Cmd {
	return func() tea.Msg {
		return text
	}
}
