package remote

import (
	"github.com/dotplay-cli/dotplay/player"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	events   *prometheus.CounterVec
	requests *prometheus.CounterVec
	seeker   prometheus.Gauge
}

// newMetrics registers the collectors on reg. Each server owns its registry
// so several can coexist in one process.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dotplay_player_events_total",
			Help: "Lifecycle events emitted by the player",
		}, []string{"event"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dotplay_remote_requests_total",
			Help: "Remote control requests by route and status",
		}, []string{"route", "status"}),
		seeker: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dotplay_player_seeker_percent",
			Help: "Playback position of the current animation, in percent",
		}),
	}
}

func (m *metrics) observe(e *player.Emitter) (off func()) {
	return e.OnAny(func(ev player.Event, d player.Detail) {
		m.events.WithLabelValues(string(ev)).Inc()
		if ev == player.EventFrame || ev == player.EventComplete {
			m.seeker.Set(float64(d.Seeker))
		}
	})
}
