package tui

import (
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/internal/ui"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/dotplay-cli/dotplay/util"
	"github.com/dotplay-cli/dotplay/viewport"
	"github.com/spf13/viper"
)

// statefulBubble holds the terminal player: the current view, its child
// components and the player it drives.
type statefulBubble struct {
	state         state
	statesHistory []state

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	historyC  list.Model
	progressC progress.Model
	helpC     help.Model
	notifier  *ui.Model

	api     player.API
	session player.Session
	hidden  bool

	events  *eventQueue
	done    chan struct{}
	detach  func()
	watcher *animation.Watcher

	lastError error

	width, height int

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState switches to s and remembers the view to go back to.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != loadingState {
		b.statesHistory = append(b.statesHistory, b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if n := len(b.statesHistory); n > 0 {
		s := b.statesHistory[n-1]
		b.statesHistory = b.statesHistory[:n-1]
		b.setState(s)
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.progressC.Width = styledWidth
	if limit := viper.GetInt(key.TUIProgressWidth); limit > 0 {
		b.progressC.Width = util.Min(limit, styledWidth)
	}

	b.width = util.Max(styledWidth, 0)
	b.height = util.Max(styledHeight, 0)
	b.helpC.Width = listWidth
}

// close detaches from the player and stops watching the source.
func (b *statefulBubble) close() {
	select {
	case <-b.done:
		return
	default:
		close(b.done)
	}

	b.detach()
	if b.watcher != nil {
		_ = b.watcher.Close()
	}
}

func newBubble(api player.API, options *Options) *statefulBubble {
	if options.Focus == nil {
		options.Focus = viewport.NewSignal()
	}
	if options.Visible == nil {
		options.Visible = viewport.NewSignal()
	}

	keymap := newStatefulKeymap()
	bubble := &statefulBubble{
		keymap:   keymap,
		api:      api,
		session:  api.Snapshot(),
		events:   newEventQueue(),
		done:     make(chan struct{}),
		notifier: &ui.Model{},
		options:  options,
	}

	bubble.detach = api.Events().OnAny(bubble.forward)

	bubble.helpC = help.New()
	bubble.helpC.ShowAll = viper.GetBool(key.TUIShowHelp)

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(color.HiPurple)

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bubble.progressC.Width = viper.GetInt(key.TUIProgressWidth)

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color.Plum).
		Foreground(color.Plum).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.historyC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.historyC.Title = "History"
	bubble.historyC.KeyMap = keymap.forList()
	bubble.historyC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.historyC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.historyC.SetShowStatusBar(false)
	bubble.historyC.SetFilteringEnabled(false)

	if width, height, err := util.TerminalSize(); err == nil {
		bubble.resize(width, height)
	}

	bubble.setState(loadingState)
	return bubble
}
