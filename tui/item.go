package tui

import (
	"fmt"
	"strings"

	"github.com/dotplay-cli/dotplay/history"
	"github.com/dotplay-cli/dotplay/style"
)

// listItem implements list.Item for the history view.
type listItem struct {
	internal any
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case *history.Entry:
		if e.Count > 1 {
			return fmt.Sprintf("%s %s", e.Title, style.Faint(fmt.Sprintf("%d / %d", e.Index+1, e.Count)))
		}
		return e.Title
	default:
		return t.FilterValue()
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case *history.Entry:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%d%% ", e.Seeker))
		sb.WriteString(style.Faint(e.PlayedAt.Format("2006-01-02 15:04") + " " + e.Src))
		return sb.String()
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *history.Entry:
		return e.Title
	case string:
		return e
	default:
		return ""
	}
}
