// Package tui is the interactive terminal player.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dotplay-cli/dotplay/history"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/log"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/dotplay-cli/dotplay/viewport"
	"github.com/spf13/viper"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Src is loaded on start. When empty the history list is shown instead.
	Src string
	// Seek is applied once Src has loaded, e.g. "42%" when resuming.
	Seek string
	// Watch reloads Src whenever the file changes on disk.
	Watch bool

	// Focus receives terminal focus reports. Visible is toggled by the hide key.
	Focus   *viewport.Signal
	Visible *viewport.Signal
}

// Run drives p until the user quits, then records where playback stopped.
func Run(p player.API, options *Options) error {
	bubble := newBubble(p, options)
	defer bubble.close()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithReportFocus()).Run()
	if err != nil {
		return err
	}

	remember(p.Snapshot())
	return nil
}

func remember(s player.Session) {
	if !viper.GetBool(key.HistorySave) || s.Src == "" || !s.IsLoaded {
		return
	}

	if err := history.Save(history.FromSession(s)); err != nil {
		log.Warnf("save history: %s", err)
	}
}
