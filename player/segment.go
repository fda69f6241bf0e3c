package player

import (
	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/playlist"
)

// NormalizeSegment converts a user segment, 1-indexed, into the engine's
// 0-indexed form. Any negative bound clears the segment; a zero bound
// leaves it untouched.
func NormalizeSegment(seg *engine.Segment) *engine.Segment {
	if seg == nil {
		return nil
	}
	if seg[0] < 0 || seg[1] < 0 {
		return nil
	}
	if seg[0] > 0 && seg[1] > 0 {
		return &engine.Segment{seg[0] - 1, seg[1] - 1}
	}
	out := *seg
	return &out
}

// engineOptions builds the handle options for data. Must be called with p.mu held.
func (p *Player) engineOptions(r playlist.Resolved, data []byte) (engine.Options, error) {
	if !p.mounted || p.opts.Container == "" {
		return engine.Options{}, ErrContainerNotReady
	}

	return engine.Options{
		Container:        p.opts.Container,
		AnimationData:    data,
		Loop:             r.Loop,
		Autoplay:         r.Autoplay,
		InitialSegment:   NormalizeSegment(p.session.Segment),
		Renderer:         p.session.Renderer,
		RendererSettings: engine.SettingsFor(p.session.Renderer, p.session.ObjectFit),
	}, nil
}
