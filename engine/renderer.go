package engine

import (
	"fmt"

	"github.com/samber/lo"
)

// Renderer selects the engine's drawing backend.
type Renderer string

const (
	SVG    Renderer = "svg"
	Canvas Renderer = "canvas"
	HTML   Renderer = "html"
)

// Renderers lists the supported renderers.
func Renderers() []Renderer {
	return []Renderer{SVG, Canvas, HTML}
}

// ParseRenderer validates a renderer name.
func ParseRenderer(s string) (Renderer, error) {
	r := Renderer(s)
	if !lo.Contains(Renderers(), r) {
		return "", fmt.Errorf("unknown renderer %q, expected one of %v", s, Renderers())
	}
	return r, nil
}

// ObjectFit describes how the animation fills its container.
type ObjectFit string

const (
	Contain   ObjectFit = "contain"
	Cover     ObjectFit = "cover"
	Fill      ObjectFit = "fill"
	None      ObjectFit = "none"
	ScaleDown ObjectFit = "scale-down"
)

// ObjectFits lists the supported fits.
func ObjectFits() []ObjectFit {
	return []ObjectFit{Contain, Cover, Fill, None, ScaleDown}
}

// ParseObjectFit validates an object-fit name.
func ParseObjectFit(s string) (ObjectFit, error) {
	f := ObjectFit(s)
	if !lo.Contains(ObjectFits(), f) {
		return "", fmt.Errorf("unknown object fit %q, expected one of %v", s, ObjectFits())
	}
	return f, nil
}

// AspectRatio maps an object fit onto an SVG preserveAspectRatio value.
func AspectRatio(fit ObjectFit) string {
	switch fit {
	case Cover:
		return "xMidYMid slice"
	case Fill:
		return "none"
	case None:
		return "xMinYMin slice"
	default:
		return "xMidYMid meet"
	}
}

// RendererSettings are passed through to the renderer untouched.
type RendererSettings struct {
	PreserveAspectRatio      string `json:"preserveAspectRatio,omitempty"`
	ImagePreserveAspectRatio string `json:"imagePreserveAspectRatio,omitempty"`
	HideOnTransparent        bool   `json:"hideOnTransparent,omitempty"`
	ProgressiveLoad          bool   `json:"progressiveLoad,omitempty"`
	ClearCanvas              bool   `json:"clearCanvas,omitempty"`
}

// SettingsFor derives the renderer settings for a renderer and fit.
func SettingsFor(r Renderer, fit ObjectFit) RendererSettings {
	ratio := AspectRatio(fit)
	settings := RendererSettings{ImagePreserveAspectRatio: ratio}

	switch r {
	case SVG:
		settings.HideOnTransparent = true
		settings.PreserveAspectRatio = ratio
		settings.ProgressiveLoad = true
	case Canvas:
		settings.ClearCanvas = true
		settings.PreserveAspectRatio = ratio
		settings.ProgressiveLoad = true
	case HTML:
		settings.HideOnTransparent = true
	}

	return settings
}
