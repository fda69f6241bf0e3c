package animation

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dotplay-cli/dotplay/filesystem"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// fetchConcurrency bounds parallel downloads of a playlist's sources.
const fetchConcurrency = 4

// PlaylistFile is the YAML description of a multi-animation playlist.
type PlaylistFile struct {
	Author      string          `yaml:"author,omitempty" json:"author,omitempty"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Animations  []PlaylistEntry `yaml:"animations" json:"animations" jsonschema:"required,minItems=1"`
}

// PlaylistEntry is one source of a playlist file, with optional overrides.
type PlaylistEntry struct {
	Src       string   `yaml:"src" json:"src" jsonschema:"required"`
	ID        string   `yaml:"id,omitempty" json:"id,omitempty"`
	Autoplay  *bool    `yaml:"autoplay,omitempty" json:"autoplay,omitempty"`
	Loop      *bool    `yaml:"loop,omitempty" json:"loop,omitempty"`
	Mode      *string  `yaml:"mode,omitempty" json:"mode,omitempty" jsonschema:"enum=normal,enum=bounce"`
	Speed     *float64 `yaml:"speed,omitempty" json:"speed,omitempty"`
	Direction *int     `yaml:"direction,omitempty" json:"direction,omitempty" jsonschema:"enum=1,enum=-1"`
}

// IsPlaylistFile reports whether src names a YAML playlist.
func IsPlaylistFile(src string) bool {
	if IsRemote(src) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(src))
	return ext == ".yaml" || ext == ".yml"
}

// ParsePlaylistFile decodes a playlist description.
func ParsePlaylistFile(data []byte) (*PlaylistFile, error) {
	var pf PlaylistFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("decode playlist: %w", err)
	}
	if len(pf.Animations) == 0 {
		return nil, fmt.Errorf("%w: playlist lists no animations", ErrInvalid)
	}
	for i, e := range pf.Animations {
		if e.Src == "" {
			return nil, fmt.Errorf("playlist entry %d has no src", i+1)
		}
	}
	return &pf, nil
}

// LoadPlaylist fetches every source of the playlist file at path and combines
// them into one bundle. Relative sources are resolved against the file's
// directory. Sources are fetched concurrently; the first failure cancels the rest.
func (l *Loader) LoadPlaylist(ctx context.Context, path string) (*Bundle, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	pf, err := ParsePlaylistFile(data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	bundles := make([]*Bundle, len(pf.Animations))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, entry := range pf.Animations {
		src := entry.Src
		if !IsRemote(src) && !filepath.IsAbs(src) {
			src = filepath.Join(dir, src)
		}
		g.Go(func() error {
			b, err := l.loadSingle(ctx, src)
			if err != nil {
				return fmt.Errorf("%s: %w", entry.Src, err)
			}
			bundles[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	additions := make([]Addition, len(bundles))
	for i, b := range bundles {
		additions[i] = Addition{ID: pf.Animations[i].ID, Bundle: b}
		if additions[i].ID == "" {
			additions[i].ID = idFor(pf.Animations[i].Src)
		}
	}

	out, err := Combine(nil, additions...)
	if err != nil {
		return nil, err
	}
	out.Manifest.Author = pf.Author
	out.Manifest.Description = pf.Description

	for i, entry := range pf.Animations {
		applyOverrides(out.Manifest, additions[i].ID, entry)
	}
	return out, nil
}

func (l *Loader) loadSingle(ctx context.Context, src string) (*Bundle, error) {
	data, err := l.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	return Decode(src, data)
}

func applyOverrides(m *Manifest, id string, e PlaylistEntry) {
	for i := range m.Animations {
		a := &m.Animations[i]
		if a.ID != id {
			continue
		}
		if e.Autoplay != nil {
			a.Autoplay = e.Autoplay
		}
		if e.Loop != nil {
			a.Loop = e.Loop
		}
		if e.Mode != nil {
			a.Mode = e.Mode
		}
		if e.Speed != nil {
			a.Speed = e.Speed
		}
		if e.Direction != nil {
			a.Direction = e.Direction
		}
	}
}
