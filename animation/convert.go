package animation

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/util"
	"github.com/samber/lo"
)

// ErrDuplicateID is returned by Combine when two animations share an id.
var ErrDuplicateID = errors.New("duplicate id for animation")

// Output is a converted file.
type Output struct {
	Name string
	Data []byte
}

// Convert turns a dotLottie bundle into the JSON of its index-th animation,
// and a plain animation into a dotLottie archive. name is the stem the
// output file name is derived from.
func Convert(b *Bundle, index int, name string) (Output, error) {
	if len(b.Animations) == 0 {
		return Output{}, errors.New("no animation to convert")
	}

	stem := util.SanitizeFilename(util.FileStem(name))
	if stem == "" {
		stem = "converted"
	}

	if b.IsDotLottie {
		if index < 0 || index >= len(b.Animations) {
			return Output{}, fmt.Errorf("animation %d out of range, archive has %s", index+1, util.Quantify(len(b.Animations), "animation", "animations"))
		}
		if len(b.Animations) > 1 {
			stem = fmt.Sprintf("%s-%d", stem, index+1)
		}
		return Output{Name: stem + ".json", Data: b.Animations[index].Data}, nil
	}

	out := &Bundle{Animations: b.Animations, Manifest: b.Manifest, IsDotLottie: true}
	if out.Manifest == nil {
		out.Manifest = Synthesize(out.Animations, ManifestDefaults{Autoplay: true, Mode: "normal", Speed: 1, Direction: 1})
	}
	out.Manifest.Generator = constant.Generator

	var buf bytes.Buffer
	if err := WriteArchive(&buf, out); err != nil {
		return Output{}, err
	}
	return Output{Name: stem + ".lottie", Data: buf.Bytes()}, nil
}

// Addition is a bundle to append under an id. An empty ID gets a random one.
type Addition struct {
	ID     string
	Bundle *Bundle
}

// Combine appends additions to base, which may be nil, and returns a
// dotLottie bundle. Every animation keeps its own manifest entry.
func Combine(base *Bundle, additions ...Addition) (*Bundle, error) {
	out := &Bundle{IsDotLottie: true, Manifest: &Manifest{}}
	if base != nil {
		out.Animations = append(out.Animations, base.Animations...)
		if base.Manifest != nil {
			m := *base.Manifest
			m.Animations = append([]ManifestAnimation(nil), base.Manifest.Animations...)
			out.Manifest = &m
		} else {
			for _, a := range base.Animations {
				out.Manifest.Animations = append(out.Manifest.Animations, ManifestAnimation{ID: a.ID})
			}
		}
	}
	out.Manifest.Generator = constant.Generator

	taken := lo.SliceToMap(out.Manifest.Animations, func(a ManifestAnimation) (string, struct{}) {
		return a.ID, struct{}{}
	})

	for _, add := range additions {
		if add.Bundle == nil || len(add.Bundle.Animations) == 0 {
			return nil, errors.New("no animation loaded")
		}

		id := add.ID
		if id == "" {
			id = NewID()
		}

		for i, a := range add.Bundle.Animations {
			aid := id
			if i > 0 {
				aid = fmt.Sprintf("%s-%d", id, i+1)
			}
			if _, dup := taken[aid]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateID, aid)
			}
			taken[aid] = struct{}{}

			entry := ManifestAnimation{ID: aid}
			if add.Bundle.Manifest != nil {
				if m, ok := add.Bundle.Manifest.Find(a.ID); ok {
					entry = m
					entry.ID = aid
				}
			}
			out.Manifest.Animations = append(out.Manifest.Animations, entry)
			out.Animations = append(out.Animations, Animation{ID: aid, Data: a.Data})
		}
	}

	if len(out.Animations) == 0 {
		return nil, errors.New("nothing to combine")
	}
	return out, nil
}
