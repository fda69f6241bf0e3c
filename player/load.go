package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/log"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/sirupsen/logrus"
)

// Mount marks the container as rendered, starts watching the viewport and
// loads Options.Src when one was given.
func (p *Player) Mount(ctx context.Context) error {
	p.lock()
	if p.destroyed {
		p.unlock()
		return ErrDestroyed
	}
	already := p.mounted
	p.mounted = true
	if !already {
		p.emit(EventRendered, Detail{})
	}
	src := p.opts.Src
	p.unlock()

	if already {
		return nil
	}

	p.view.Start()

	if src == "" {
		return nil
	}
	return p.Load(ctx, src)
}

// Load fetches src and replaces the current animation with it.
//
// Failures move the player to Error and are also returned. When another Load
// starts before this one finishes, this one returns ErrLoadSuperseded and
// leaves the player alone.
func (p *Player) Load(ctx context.Context, src string) error {
	return p.load(ctx, src, false)
}

// Reload fetches the current source again and stays on the current entry.
func (p *Player) Reload(ctx context.Context) error {
	p.lock()
	src := p.session.Src
	p.unlock()

	if src == "" {
		return nil
	}
	return p.load(ctx, src, true)
}

func (p *Player) load(ctx context.Context, src string, keepIndex bool) error {
	if src == "" {
		return nil
	}

	p.lock()
	if p.destroyed {
		p.unlock()
		return ErrDestroyed
	}
	p.loadGen++
	gen := p.loadGen
	p.session.Src = src
	loader := p.loader
	p.unlock()

	log.WithFields(logrus.Fields{"src": src}).Info("player: loading")
	bundle, err := loader.Load(ctx, src)

	p.lock()
	defer p.unlock()

	if p.destroyed {
		return ErrDestroyed
	}
	if gen != p.loadGen {
		return ErrLoadSuperseded
	}

	if err != nil {
		if errors.Is(err, animation.ErrInvalid) {
			err = fmt.Errorf("%w: %w", ErrValidation, err)
		} else {
			err = fmt.Errorf("%w: %w", ErrLoad, err)
		}
		p.fail(err)
		return err
	}

	index := 0
	if keepIndex && p.playlist != nil {
		index = p.playlist.Index
	}

	pl := p.newPlaylist(bundle)
	if !pl.Has(index) {
		index = 0
	}
	pl.Index = index

	if err := p.start(pl); err != nil {
		p.fail(err)
		return err
	}
	return nil
}

// newPlaylist turns a bundle into a playlist. A bundle without a manifest
// gets one built from the session, and a single-entry manifest inherits the
// session's autoplay and loop.
func (p *Player) newPlaylist(b *animation.Bundle) *playlist.Playlist {
	manifest := b.Manifest
	if manifest == nil {
		manifest = animation.Synthesize(b.Animations, animation.ManifestDefaults{
			Autoplay:  p.defaults.Autoplay && !p.session.AnimateOnScroll,
			Mode:      string(p.defaults.Mode),
			Speed:     p.defaults.Speed,
			Direction: p.defaults.Direction,
		})
	} else if len(manifest.Animations) == 1 {
		autoplay, loop := p.defaults.Autoplay, p.defaults.Loop
		manifest.Animations[0].Autoplay = &autoplay
		manifest.Animations[0].Loop = &loop
	}

	entries := make([]playlist.Entry, len(b.Animations))
	for i, a := range b.Animations {
		entries[i] = playlist.Entry{ID: a.ID, Data: a.Data}
		if m, ok := manifest.Find(a.ID); ok {
			entries[i].Manifest = m.Settings()
		}
	}

	pl := playlist.New(entries...)
	pl.Settings = p.settings
	return pl
}

// start creates the handle for the current entry of pl and applies the
// autoplay policy. Must be called with p.mu held.
func (p *Player) start(pl *playlist.Playlist) error {
	p.supersede()
	p.playlist = pl

	entry, _ := pl.Current()
	r := pl.Resolve(pl.Index, p.defaults)
	autoplay := r.Autoplay && !p.session.AnimateOnScroll

	opts, err := p.engineOptions(playlist.Resolved{Autoplay: autoplay, Loop: r.Loop}, entry.Data)
	if err != nil {
		return err
	}

	h, err := p.engine.LoadAnimation(opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngine, err)
	}
	p.attach(h)
	p.apply(h, r)
	p.setState(Stopped)

	if (r.Autoplay || p.session.AnimateOnScroll) && r.Direction == -1 {
		p.seek("99%")
	}
	if autoplay {
		p.play()
	}
	return nil
}

// apply mirrors a resolved entry onto the session and the new handle.
// Must be called with p.mu held.
func (p *Player) apply(h engine.Handle, r playlist.Resolved) {
	p.session.Mode = r.Mode
	p.session.Loop = r.Loop
	p.session.Speed = r.Speed
	p.session.Direction = r.Direction
	p.session.LoopCount = 0
	p.session.Seeker = 0
	p.session.IsLoaded = false
	p.session.ErrorMessage = ""

	h.SetSpeed(r.Speed)
	h.SetDirection(r.Direction)
	h.SetSubframe(p.session.Subframe)
}
