package player

import (
	"context"
	"time"

	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/dotplay-cli/dotplay/viewport"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Loader resolves a source reference into animations.
type Loader interface {
	Load(ctx context.Context, src string) (*animation.Bundle, error)
}

// Options configure a Player. Engine is required; every other collaborator
// has a default.
type Options struct {
	Src       string
	Container string

	Engine    engine.Engine
	Loader    Loader
	Scheduler Scheduler
	Observer  viewport.Observer
	Focus     viewport.FocusSource
	Emitter   *Emitter

	Autoplay        bool
	Loop            bool
	Mode            playlist.Mode
	Speed           float64
	Direction       int
	Count           int
	Intermission    time.Duration
	Subframe        bool
	AnimateOnScroll bool
	Hover           bool
	Segment         *engine.Segment
	Renderer        engine.Renderer
	ObjectFit       engine.ObjectFit
	Settings        []playlist.Settings
}

// DefaultOptions mirror the defaults of the configuration registry.
func DefaultOptions() Options {
	return Options{
		Autoplay:  true,
		Mode:      playlist.Normal,
		Speed:     1,
		Direction: 1,
		Renderer:  engine.SVG,
		ObjectFit: engine.Contain,
	}
}

// OptionsFromConfig reads the player.* and renderer.* keys.
// Invalid enum values fall back to their defaults.
func OptionsFromConfig() Options {
	opts := DefaultOptions()

	opts.Autoplay = viper.GetBool(key.PlayerAutoplay)
	opts.Loop = viper.GetBool(key.PlayerLoop)
	opts.Speed = viper.GetFloat64(key.PlayerSpeed)
	opts.Direction = viper.GetInt(key.PlayerDirection)
	opts.Count = viper.GetInt(key.PlayerCount)
	opts.Intermission = time.Duration(viper.GetInt(key.PlayerIntermission)) * time.Millisecond
	opts.Subframe = viper.GetBool(key.PlayerSubframe)
	opts.AnimateOnScroll = viper.GetBool(key.PlayerAnimateOnScroll)
	opts.Hover = viper.GetBool(key.PlayerHover)

	if mode, err := playlist.ParseMode(viper.GetString(key.PlayerMode)); err == nil {
		opts.Mode = mode
	}
	if r, err := engine.ParseRenderer(viper.GetString(key.RendererType)); err == nil {
		opts.Renderer = r
	}
	if fit, err := engine.ParseObjectFit(viper.GetString(key.RendererFit)); err == nil {
		opts.ObjectFit = fit
	}

	return opts
}

func (o *Options) fill() {
	if o.Loader == nil {
		o.Loader = animation.NewLoader()
	}
	if o.Scheduler == nil {
		o.Scheduler = Clock{}
	}
	if o.Emitter == nil {
		o.Emitter = NewEmitter()
	}
	if o.Container == "" {
		o.Container = "dotplay-" + uuid.NewString()[:8]
	}
	if o.Mode == "" {
		o.Mode = playlist.Normal
	}
	if o.Speed == 0 {
		o.Speed = 1
	}
	if o.Direction >= 0 {
		o.Direction = 1
	} else {
		o.Direction = -1
	}
	if o.Renderer == "" {
		o.Renderer = engine.SVG
	}
	if o.ObjectFit == "" {
		o.ObjectFit = engine.Contain
	}
}
