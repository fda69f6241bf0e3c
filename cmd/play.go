package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/config"
	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/engine/sim"
	"github.com/dotplay-cli/dotplay/history"
	"github.com/dotplay-cli/dotplay/hook"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/log"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/dotplay-cli/dotplay/remote"
	"github.com/dotplay-cli/dotplay/tui"
	"github.com/dotplay-cli/dotplay/util"
	"github.com/dotplay-cli/dotplay/viewport"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func completeOptions(k string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.Default[k].Options, cobra.ShellCompDirectiveNoFileComp
	}
}

func init() {
	rootCmd.AddCommand(playCmd)

	flags := playCmd.Flags()

	flags.Bool("autoplay", true, "Start playback as soon as the animation is loaded")
	lo.Must0(viper.BindPFlag(key.PlayerAutoplay, flags.Lookup("autoplay")))

	flags.BoolP("loop", "l", false, "Loop the animation, and wrap around the playlist")
	lo.Must0(viper.BindPFlag(key.PlayerLoop, flags.Lookup("loop")))

	flags.Float64P("speed", "s", 1, "Playback speed multiplier")
	lo.Must0(viper.BindPFlag(key.PlayerSpeed, flags.Lookup("speed")))

	flags.IntP("direction", "d", 1, "Play direction, 1 or -1")
	lo.Must0(viper.BindPFlag(key.PlayerDirection, flags.Lookup("direction")))

	flags.StringP("mode", "m", string(playlist.Normal), "Play mode, normal or bounce")
	lo.Must0(playCmd.RegisterFlagCompletionFunc("mode", completeOptions(key.PlayerMode)))
	lo.Must0(viper.BindPFlag(key.PlayerMode, flags.Lookup("mode")))

	flags.IntP("count", "n", 0, "Number of loops before playback completes")
	lo.Must0(viper.BindPFlag(key.PlayerCount, flags.Lookup("count")))

	flags.Int("intermission", 0, "Pause between loops, in milliseconds")
	lo.Must0(viper.BindPFlag(key.PlayerIntermission, flags.Lookup("intermission")))

	flags.Bool("subframe", false, "Render in-between frames")
	lo.Must0(viper.BindPFlag(key.PlayerSubframe, flags.Lookup("subframe")))

	flags.String("renderer", string(engine.SVG), "Renderer requested from the engine")
	lo.Must0(playCmd.RegisterFlagCompletionFunc("renderer", completeOptions(key.RendererType)))
	lo.Must0(viper.BindPFlag(key.RendererType, flags.Lookup("renderer")))

	flags.String("fit", string(engine.Contain), "How the animation fits its container")
	lo.Must0(playCmd.RegisterFlagCompletionFunc("fit", completeOptions(key.RendererFit)))
	lo.Must0(viper.BindPFlag(key.RendererFit, flags.Lookup("fit")))

	flags.String("hook", "", "Lua script receiving every lifecycle event")
	lo.Must0(viper.BindPFlag(key.HooksScript, flags.Lookup("hook")))

	flags.String("remote", "", "Serve the remote control API on this address")
	lo.Must0(viper.BindPFlag(key.RemoteAddr, flags.Lookup("remote")))

	flags.Bool("impersonate", false, "Fetch remote sources with a browser TLS fingerprint")
	lo.Must0(viper.BindPFlag(key.NetworkImpersonateBrowser, flags.Lookup("impersonate")))

	flags.Float64Slice("segment", nil, "Play only frames in..out, 1-based, e.g. --segment 5,10")
	flags.String("seek", "", "Start at a frame (42) or a percentage (50%)")
	flags.BoolP("watch", "w", false, "Reload the source whenever the file changes")
	flags.BoolP("continue", "c", false, "Resume the most recently played source")
	flags.Bool("headless", false, "Play without the terminal interface and print events as JSON lines.\nImplied when stdout is not a terminal")
}

var playCmd = &cobra.Command{
	Use:   "play [source]",
	Short: "Play a Lottie JSON file, a dotLottie archive, a YAML playlist or a URL",
	Example: "  dotplay play loader.json\n" +
		"  dotplay play https://example.com/confetti.lottie --loop --mode bounce\n" +
		"  dotplay play playlist.yaml --remote 127.0.0.1:7878",
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		suggestions, err := history.Suggest(toComplete)
		if err != nil {
			return nil, cobra.ShellCompDirectiveDefault
		}
		return suggestions, cobra.ShellCompDirectiveDefault
	},
	Run: func(cmd *cobra.Command, args []string) {
		options := playOptions{
			seek:     lo.Must(cmd.Flags().GetString("seek")),
			watch:    lo.Must(cmd.Flags().GetBool("watch")),
			headless: lo.Must(cmd.Flags().GetBool("headless")),
		}

		if len(args) > 0 {
			options.src = args[0]
		} else if lo.Must(cmd.Flags().GetBool("continue")) {
			handleErr(options.resume())
		}

		if cmd.Flags().Changed("segment") {
			seg := lo.Must(cmd.Flags().GetFloat64Slice("segment"))
			if len(seg) != 2 {
				handleErr(errors.New("segment takes two frames, e.g. --segment 5,10"))
			}
			options.segment = &engine.Segment{seg[0], seg[1]}
		}

		handleErr(play(options))
	},
}

type playOptions struct {
	src      string
	seek     string
	segment  *engine.Segment
	watch    bool
	headless bool
}

// resume continues from the most recent history entry.
func (o *playOptions) resume() error {
	last, err := history.Last()
	if err != nil {
		return err
	}

	entry, ok := last.Get()
	if !ok {
		return errors.New("nothing to continue, the history is empty")
	}

	o.src = entry.Src
	if o.seek == "" {
		o.seek = fmt.Sprintf("%d%%", entry.Seeker)
	}
	return nil
}

// play wires a player to the hook, the remote control and the chosen front end.
func play(options playOptions) error {
	// flags are bound after config.Setup checked the file and environment
	if err := config.Validate(); err != nil {
		return err
	}

	visible := viewport.NewSignal()
	visible.Set(true)
	focus := viewport.NewSignal()

	opts := player.OptionsFromConfig()
	opts.Engine = sim.New()
	opts.Observer = visible
	opts.Focus = focus
	opts.Segment = options.segment

	p := player.New(opts)
	defer p.Destroy()

	h, err := hook.FromConfig()
	if err != nil {
		return err
	}
	if h != nil {
		defer h.Close()
		defer h.Attach(p.Events())()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if addr := viper.GetString(key.RemoteAddr); addr != "" {
		srv := remote.New(p, remote.OptionsFromConfig())
		defer srv.Close()

		go func() {
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				log.WithFields(logrus.Fields{"addr": addr}).Error("remote: ", err)
			}
		}()
	}

	if err := p.Mount(ctx); err != nil {
		return err
	}

	if options.headless || !util.IsTerminal() {
		return playHeadless(ctx, p, options, os.Stdout)
	}

	return tui.Run(p, &tui.Options{
		Src:     options.src,
		Seek:    options.seek,
		Watch:   options.watch,
		Focus:   focus,
		Visible: visible,
	})
}

type headlessEvent struct {
	Event player.Event `json:"event"`
	player.Detail
}

// playHeadless prints lifecycle events to out until playback completes,
// the player fails, or ctx is cancelled. With watch on, a failure waits for
// the next change of the file instead of ending the command.
func playHeadless(ctx context.Context, p *player.Player, options playOptions, out io.Writer) error {
	if options.src == "" {
		return errors.New("a source is required without the terminal interface")
	}

	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}

	watching := options.watch && !animation.IsRemote(options.src)
	encoder := json.NewEncoder(out)

	off := p.Events().OnAny(func(ev player.Event, d player.Detail) {
		if ev == player.EventFrame {
			return
		}
		_ = encoder.Encode(headlessEvent{Event: ev, Detail: d})

		switch {
		case ev == player.EventError && !watching:
			finish(errors.New(d.Error))
		case ev == player.EventComplete && !p.Snapshot().Loop:
			finish(nil)
		}
	})
	defer off()

	if err := p.Load(ctx, options.src); err != nil && !watching {
		return err
	}
	if options.seek != "" {
		p.Seek(options.seek)
	}

	var (
		watchEvents <-chan string
		watchErrors <-chan error
	)
	if watching {
		w, err := animation.NewWatcher(options.src)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		watchEvents, watchErrors = w.Events, w.Errors
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-done:
			return err
		case <-watchEvents:
			if err := p.Reload(ctx); err != nil && !errors.Is(err, player.ErrLoadSuperseded) {
				log.Errorf("reload %s: %s", options.src, err)
			}
		case err := <-watchErrors:
			if err != nil {
				log.Warnf("watch: %s", err)
			}
		}
	}
}
