// Package remote exposes a player over a small HTTP control API.
//
//	GET   /state     session snapshot
//	POST  /load      {"src": "..."}
//	POST  /reload
//	POST  /play, /pause, /stop, /toggle, /next, /previous
//	POST  /seek      {"to": "50%"}
//	POST  /loop/toggle, /bounce/toggle
//	PATCH /settings  {"loop", "speed", "direction", "count", "subframe", "segment"}
//	GET   /metrics   prometheus exposition
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/log"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Options tune the server.
type Options struct {
	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables limiting.
	RateLimit int
}

// OptionsFromConfig reads the remote.* keys.
func OptionsFromConfig() Options {
	return Options{RateLimit: viper.GetInt(key.RemoteRateLimit)}
}

// Server routes HTTP requests to a player.
type Server struct {
	api      player.API
	registry *prometheus.Registry
	metrics  *metrics
	detach   func()
	router   chi.Router
}

// New wires a server to api and starts counting its events.
func New(api player.API, opts Options) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		api:      api,
		registry: reg,
		metrics:  newMetrics(reg),
	}
	s.detach = s.metrics.observe(api.Events())
	s.router = s.routes(opts)
	return s
}

func (s *Server) routes(opts Options) chi.Router {
	r := chi.NewRouter()

	r.Get("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP)

	r.Group(func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(httprate.Limit(
				opts.RateLimit,
				time.Second,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Retry-After", "1")
					s.fail(w, r, http.StatusTooManyRequests, errors.New("too many requests"))
				}),
			))
		}

		r.Get("/state", s.handleState)
		r.Post("/load", s.handleLoad)
		r.Post("/reload", s.handleReload)
		r.Post("/seek", s.handleSeek)
		r.Patch("/settings", s.handleSettings)

		r.Post("/play", s.command(s.api.Play))
		r.Post("/pause", s.command(s.api.Pause))
		r.Post("/stop", s.command(s.api.Stop))
		r.Post("/toggle", s.command(s.api.TogglePlay))
		r.Post("/next", s.command(s.api.Next))
		r.Post("/previous", s.command(s.api.Previous))
		r.Post("/loop/toggle", s.command(s.api.ToggleLoop))
		r.Post("/bounce/toggle", s.command(s.api.ToggleBounce))
	})

	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": addr}).Info("remote: listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close stops counting events.
func (s *Server) Close() {
	if s.detach != nil {
		s.detach()
	}
}

func (s *Server) command(fn func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn()
		s.respond(w, r, http.StatusOK, s.api.Snapshot())
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, s.api.Snapshot())
}

type loadRequest struct {
	Src string `json:"src"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	if req.Src == "" {
		s.fail(w, r, http.StatusBadRequest, errors.New("src is required"))
		return
	}

	if err := s.api.Load(r.Context(), req.Src); err != nil {
		s.fail(w, r, loadStatus(err), err)
		return
	}
	s.respond(w, r, http.StatusOK, s.api.Snapshot())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.api.Reload(r.Context()); err != nil {
		s.fail(w, r, loadStatus(err), err)
		return
	}
	s.respond(w, r, http.StatusOK, s.api.Snapshot())
}

func loadStatus(err error) int {
	switch {
	case errors.Is(err, player.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, player.ErrLoadSuperseded):
		return http.StatusConflict
	case errors.Is(err, player.ErrDestroyed):
		return http.StatusGone
	default:
		return http.StatusBadGateway
	}
}

type seekRequest struct {
	To json.RawMessage `json:"to"`
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	var req seekRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	// Accept both "50%" and 42.
	var to string
	if err := json.Unmarshal(req.To, &to); err != nil {
		var frame float64
		if err := json.Unmarshal(req.To, &frame); err != nil {
			s.fail(w, r, http.StatusBadRequest, fmt.Errorf("to must be a frame or a percentage"))
			return
		}
		to = strconv.Itoa(int(frame))
	}

	s.api.Seek(to)
	s.respond(w, r, http.StatusOK, s.api.Snapshot())
}

type settingsRequest struct {
	Loop      *bool           `json:"loop"`
	Speed     *float64        `json:"speed"`
	Direction *int            `json:"direction"`
	Count     *int            `json:"count"`
	Subframe  *bool           `json:"subframe"`
	Segment   *engine.Segment `json:"segment"`
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	if req.Speed != nil && *req.Speed <= 0 {
		s.fail(w, r, http.StatusBadRequest, errors.New("speed must be positive"))
		return
	}

	if req.Loop != nil {
		s.api.SetLoop(*req.Loop)
	}
	if req.Speed != nil {
		s.api.SetSpeed(*req.Speed)
	}
	if req.Direction != nil {
		s.api.SetDirection(*req.Direction)
	}
	if req.Count != nil {
		s.api.SetCount(*req.Count)
	}
	if req.Subframe != nil {
		s.api.SetSubframe(*req.Subframe)
	}
	if req.Segment != nil {
		s.api.SetSegment(req.Segment)
	}

	s.respond(w, r, http.StatusOK, s.api.Snapshot())
}

func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	s.metrics.requests.WithLabelValues(route(r), strconv.Itoa(status)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithFields(logrus.Fields{"route": route(r)}).Warn("remote: write response: ", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	log.WithFields(logrus.Fields{"route": route(r), "status": status}).Debug("remote: ", err)
	s.respond(w, r, status, errorResponse{Error: err.Error()})
}

func route(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
