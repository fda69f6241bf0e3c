// Package playlist holds an ordered collection of animations and the rules for moving through it.
package playlist

import "encoding/json"

// Entry is one animation of a playlist.
type Entry struct {
	ID       string
	Data     json.RawMessage
	Manifest Settings
}

// Playlist is an ordered set of entries with a current index.
//
// Settings are supplied by the embedder and are indexed like Entries; they
// may be shorter than Entries.
type Playlist struct {
	Entries  []Entry
	Settings []Settings
	Index    int
}

// New returns a playlist positioned at the first entry.
func New(entries ...Entry) *Playlist {
	return &Playlist{Entries: entries}
}

// Len is the number of entries.
func (p *Playlist) Len() int {
	return len(p.Entries)
}

// Has reports whether i addresses an entry.
func (p *Playlist) Has(i int) bool {
	return i >= 0 && i < len(p.Entries)
}

// Entry returns the entry at i.
func (p *Playlist) Entry(i int) (Entry, bool) {
	if !p.Has(i) {
		return Entry{}, false
	}
	return p.Entries[i], true
}

// Current returns the entry at Index.
func (p *Playlist) Current() (Entry, bool) {
	return p.Entry(p.Index)
}

// SettingsAt returns the embedder settings for i, empty if none were given.
func (p *Playlist) SettingsAt(i int) Settings {
	if i < 0 || i >= len(p.Settings) {
		return Settings{}
	}
	return p.Settings[i]
}

// Resolve returns the effective configuration of entry i.
func (p *Playlist) Resolve(i int, defaults Resolved) Resolved {
	entry, _ := p.Entry(i)
	return Resolve(p.SettingsAt(i), entry.Manifest, defaults)
}

// RequestsAutoplay reports whether entry i asks to start on its own.
// Session defaults are not consulted.
func (p *Playlist) RequestsAutoplay(i int) bool {
	entry, ok := p.Entry(i)
	if !ok {
		return false
	}
	if v, ok := p.SettingsAt(i).Autoplay.Get(); ok {
		return v
	}
	return entry.Manifest.Autoplay.OrElse(false)
}

// IsLast reports whether Index points at the final entry.
func (p *Playlist) IsLast() bool {
	return p.Index == len(p.Entries)-1
}

// NextIndex returns the index after Index. Past the end it wraps to 0 when
// loop is set; otherwise ok is false.
func (p *Playlist) NextIndex(loop bool) (next int, ok bool) {
	switch {
	case len(p.Entries) == 0:
		return 0, false
	case p.Index+1 < len(p.Entries):
		return p.Index + 1, true
	case loop:
		return 0, true
	default:
		return p.Index, false
	}
}

// PreviousIndex returns the index before Index; ok is false at the start.
func (p *Playlist) PreviousIndex() (prev int, ok bool) {
	if p.Index <= 0 || len(p.Entries) == 0 {
		return 0, false
	}
	return p.Index - 1, true
}
