// Package animation reads, validates and writes Lottie animations and dotLottie archives.
//
// Only the fields the player needs are decoded; the animation payload itself
// is kept as raw JSON and handed to the rendering engine untouched.
package animation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ErrInvalid marks payloads that are not Lottie animations.
var ErrInvalid = errors.New("not a lottie animation")

// requiredKeys must all be present at the top level of a Lottie document.
var requiredKeys = []string{"v", "ip", "op", "layers", "fr", "w", "h"}

// Animation is one Lottie document.
type Animation struct {
	ID   string
	Data json.RawMessage
}

// Bundle is what a source resolves to: one animation for plain JSON, one or
// more with a manifest for a dotLottie archive.
type Bundle struct {
	Animations  []Animation
	Manifest    *Manifest
	IsDotLottie bool
}

// Validate reports whether data looks like a Lottie animation.
func Validate(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	missing := lo.Filter(requiredKeys, func(k string, _ int) bool {
		_, ok := doc[k]
		return !ok
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalid, strings.Join(missing, ", "))
	}
	return nil
}

// Validate checks every animation of the bundle.
func (b *Bundle) Validate() error {
	if len(b.Animations) == 0 {
		return fmt.Errorf("%w: no animations", ErrInvalid)
	}
	for _, a := range b.Animations {
		if err := Validate(a.Data); err != nil {
			return fmt.Errorf("animation %q: %w", a.ID, err)
		}
	}
	return nil
}

// Info is the metadata shown by inspect.
type Info struct {
	Version   string  `json:"v"`
	Name      string  `json:"nm"`
	FrameRate float64 `json:"fr"`
	InPoint   float64 `json:"ip"`
	OutPoint  float64 `json:"op"`
	Width     int     `json:"w"`
	Height    int     `json:"h"`
	Layers    []struct {
		Type int `json:"ty"`
	} `json:"layers"`
	Assets []json.RawMessage `json:"assets"`
}

// Frames is the number of frames between the in and out points.
func (i Info) Frames() float64 {
	return i.OutPoint - i.InPoint
}

// Seconds is the running time at normal speed.
func (i Info) Seconds() float64 {
	if i.FrameRate <= 0 {
		return 0
	}
	return i.Frames() / i.FrameRate
}

// Describe decodes the metadata of a.
func (a Animation) Describe() (Info, error) {
	var info Info
	if err := json.Unmarshal(a.Data, &info); err != nil {
		return info, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return info, nil
}
