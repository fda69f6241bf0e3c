package animation

import (
	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Manifest is the manifest.json of a dotLottie archive.
type Manifest struct {
	Animations  []ManifestAnimation `json:"animations" jsonschema:"required,minItems=1"`
	Author      string              `json:"author,omitempty"`
	Description string              `json:"description,omitempty"`
	Generator   string              `json:"generator,omitempty"`
	Keywords    string              `json:"keywords,omitempty"`
	Revision    int                 `json:"revision,omitempty"`
	Version     string              `json:"version,omitempty"`
}

// ManifestAnimation holds the playback overrides of one animation.
// Nil fields are unset.
type ManifestAnimation struct {
	ID        string   `json:"id" jsonschema:"required"`
	Autoplay  *bool    `json:"autoplay,omitempty"`
	Loop      *bool    `json:"loop,omitempty"`
	Mode      *string  `json:"mode,omitempty" jsonschema:"enum=normal,enum=bounce"`
	Speed     *float64 `json:"speed,omitempty" jsonschema:"exclusiveMinimum=0"`
	Direction *int     `json:"direction,omitempty" jsonschema:"enum=1,enum=-1"`
}

// Settings converts the entry into playlist overrides. An unknown mode is
// treated as unset.
func (m ManifestAnimation) Settings() playlist.Settings {
	var s playlist.Settings
	if m.Autoplay != nil {
		s.Autoplay = mo.Some(*m.Autoplay)
	}
	if m.Loop != nil {
		s.Loop = mo.Some(*m.Loop)
	}
	if m.Mode != nil {
		if mode, err := playlist.ParseMode(*m.Mode); err == nil {
			s.Mode = mo.Some(mode)
		}
	}
	if m.Speed != nil {
		s.Speed = mo.Some(*m.Speed)
	}
	if m.Direction != nil {
		s.Direction = mo.Some(*m.Direction)
	}
	return s
}

// Find returns the entry with the given id.
func (m *Manifest) Find(id string) (ManifestAnimation, bool) {
	return lo.Find(m.Animations, func(a ManifestAnimation) bool {
		return a.ID == id
	})
}

// IDs lists the animation ids in order.
func (m *Manifest) IDs() []string {
	return lo.Map(m.Animations, func(a ManifestAnimation, _ int) string { return a.ID })
}

// ManifestDefaults seed a synthesized manifest.
type ManifestDefaults struct {
	Autoplay  bool
	Mode      string
	Speed     float64
	Direction int
}

// Synthesize builds a manifest for animations that came without one.
// Animations without an id are given a random one.
func Synthesize(animations []Animation, d ManifestDefaults) *Manifest {
	m := &Manifest{Generator: constant.Generator}
	for i := range animations {
		if animations[i].ID == "" {
			animations[i].ID = NewID()
		}
		m.Animations = append(m.Animations, ManifestAnimation{
			ID:        animations[i].ID,
			Autoplay:  lo.ToPtr(d.Autoplay),
			Mode:      lo.ToPtr(d.Mode),
			Speed:     lo.ToPtr(d.Speed),
			Direction: lo.ToPtr(d.Direction),
		})
	}
	return m
}

// NewID returns a short random animation id.
func NewID() string {
	return uuid.NewString()[:8]
}
