package history

import (
	"fmt"
	"time"

	"github.com/dotplay-cli/dotplay/player"
	"github.com/dotplay-cli/dotplay/util"
)

// Entry is one remembered source with the position it was left at.
type Entry struct {
	Src      string    `json:"src"`
	Title    string    `json:"title"`
	Index    int       `json:"index"`
	Count    int       `json:"count"`
	Seeker   int       `json:"seeker"`
	PlayedAt time.Time `json:"played_at"`
}

func (e *Entry) encode() string {
	return e.Src
}

func (e *Entry) String() string {
	if e.Count > 1 {
		return fmt.Sprintf("%s : %d / %d at %d%%", e.Title, e.Index+1, e.Count, e.Seeker)
	}
	return fmt.Sprintf("%s at %d%%", e.Title, e.Seeker)
}

// FromSession captures where a session currently is.
func FromSession(s player.Session) *Entry {
	return &Entry{
		Src:      s.Src,
		Title:    util.FileStem(s.Src),
		Index:    s.Index,
		Count:    s.Count,
		Seeker:   s.Seeker,
		PlayedAt: time.Now(),
	}
}
