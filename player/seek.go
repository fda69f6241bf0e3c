package player

import (
	"math"
	"regexp"
	"strconv"

	"github.com/dotplay-cli/dotplay/util"
	"github.com/samber/lo"
)

var seekPattern = regexp.MustCompile(`^(\d+)(%?)$`)

// Seek moves to a frame ("42") or a percentage of the animation ("50%").
// Anything else is ignored. Playback continues if it was running, or would
// be running but for a freeze.
func (p *Player) Seek(value string) {
	p.lock()
	defer p.unlock()
	p.seek(value)
}

func (p *Player) seek(value string) {
	if p.handle == nil {
		return
	}

	m := seekPattern.FindStringSubmatch(value)
	if m == nil {
		return
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return
	}

	total := p.handle.TotalFrames()
	frame := math.Round(n)
	if m[2] == "%" {
		frame = math.Round(total * n / 100)
	}
	frame = lo.Clamp(frame, 0, total)

	p.supersede()
	p.session.Seeker = util.Percent(frame, total)

	if p.session.State == Playing || (p.session.State == Frozen && p.session.PrevState == Playing) {
		p.handle.GoToAndPlay(frame, true)
		p.transition(Playing, EventPlay)
		return
	}

	p.handle.GoToAndStop(frame, true)
	p.handle.Pause()
}
