package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/icon"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/dotplay-cli/dotplay/style"
	"github.com/dotplay-cli/dotplay/util"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case playerState:
		output = b.viewPlayer()
	case historyState:
		output = b.viewHistory()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + style.Faint(b.options.Src),
		},
	)
}

func (b *statefulBubble) viewPlayer() string {
	s := b.session

	name := style.Bold(util.FileStem(s.Src))
	if s.Count > 1 {
		name += " " + style.Faint(fmt.Sprintf("%d / %d", s.Index+1, s.Count))
	}

	lines := []string{
		style.Title(constant.Dotplay) + " " + style.State(s.State.String()),
		"",
		name,
		"",
	}

	if s.State == player.Error {
		return b.renderLines(true, append(lines,
			icon.Get(icon.Fail)+" "+style.Fg(color.Red)(wrap.String(s.ErrorMessage, b.width)),
		))
	}

	lines = append(lines,
		b.progressC.ViewAs(float64(s.Seeker)/100)+" "+fmt.Sprintf("%3d%%", s.Seeker),
		style.Faint(fmt.Sprintf("frame %.0f / %.0f", s.Frame, s.TotalFrames)),
		"",
		b.viewBadges(),
	)

	return b.renderLines(true, lines)
}

// viewBadges lists the playback settings in effect.
func (b *statefulBubble) viewBadges() string {
	s := b.session

	badges := []string{transportIcon(s.State), fmt.Sprintf("%gx", s.Speed)}

	if s.Direction < 0 {
		badges = append(badges, "reverse")
	}
	if s.Loop {
		badges = append(badges, icon.Get(icon.Loop))
	}
	if s.Mode == playlist.Bounce {
		badges = append(badges, icon.Get(icon.Bounce))
	}
	if s.TargetLoopCount > 0 {
		badges = append(badges, fmt.Sprintf("%.0f / %d", s.LoopCount, s.TargetLoopCount))
	}
	if b.hidden {
		badges = append(badges, style.Faint("hidden"))
	}

	return strings.Join(badges, "  ")
}

func transportIcon(s player.State) string {
	switch s {
	case player.Playing:
		return icon.Get(icon.Play)
	case player.Paused:
		return icon.Get(icon.Pause)
	case player.Frozen:
		return icon.Get(icon.Frozen)
	case player.Completed:
		return icon.Get(icon.Complete)
	default:
		return icon.Get(icon.Stop)
	}
}

func (b *statefulBubble) viewHistory() string {
	return listExtraPaddingStyle.Render(b.historyC.View())
}

func (b *statefulBubble) viewError() string {
	errorMsg := wrap.String(style.Fg(color.Red)(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
