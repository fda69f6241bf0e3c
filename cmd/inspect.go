package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/style"
	"github.com/dotplay-cli/dotplay/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	inspectCmd.SetOut(os.Stdout)
}

type inspected struct {
	ID       string                       `json:"id"`
	Info     animation.Info               `json:"info"`
	Frames   float64                      `json:"frames"`
	Seconds  float64                      `json:"seconds"`
	Settings *animation.ManifestAnimation `json:"settings,omitempty"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <source>",
	Short: "Show the frames, size and playback settings of every animation in a source",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// inspecting never changes anything on disk
		filesystem.SetReadOnly()

		bundle, err := animation.NewLoader().Load(context.Background(), args[0])
		handleErr(err)

		items := make([]inspected, 0, len(bundle.Animations))
		for _, a := range bundle.Animations {
			info, err := a.Describe()
			handleErr(err)

			item := inspected{ID: a.ID, Info: info, Frames: info.Frames(), Seconds: info.Seconds()}
			if bundle.Manifest != nil {
				if entry, ok := bundle.Manifest.Find(a.ID); ok {
					item.Settings = &entry
				}
			}
			items = append(items, item)
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(struct {
				Manifest   *animation.Manifest `json:"manifest,omitempty"`
				Animations []inspected         `json:"animations"`
			}{bundle.Manifest, items}))
			return
		}

		var (
			header = style.New().Bold(true).Foreground(color.HiPurple).Render
			label  = style.Fg(color.Blue)
		)

		kind := "Lottie JSON"
		if bundle.IsDotLottie {
			kind = "dotLottie archive"
		}
		cmd.Printf("%s %s\n", style.Title(kind), style.Faint(util.Quantify(len(items), "animation", "animations")))

		if m := bundle.Manifest; m != nil && bundle.IsDotLottie {
			for _, field := range [][2]string{{"Author", m.Author}, {"Generator", m.Generator}, {"Version", m.Version}} {
				if field[1] != "" {
					cmd.Printf("%s %s\n", label(field[0]+":"), field[1])
				}
			}
		}

		for _, item := range items {
			cmd.Println()
			cmd.Println(header(item.ID))
			if item.Info.Name != "" {
				cmd.Printf("  %s     %s\n", label("Name:"), item.Info.Name)
			}
			cmd.Printf("  %s   %.0f at %g fps (%.2fs)\n", label("Frames:"), item.Frames, item.Info.FrameRate, item.Seconds)
			cmd.Printf("  %s     %dx%d\n", label("Size:"), item.Info.Width, item.Info.Height)
			cmd.Printf("  %s   %d, %s\n", label("Layers:"), len(item.Info.Layers), util.Quantify(len(item.Info.Assets), "asset", "assets"))
			cmd.Printf("  %s  %s\n", label("Lottie:"), item.Info.Version)

			if item.Settings != nil {
				if settings := describeSettings(*item.Settings); settings != "" {
					cmd.Printf("  %s %s\n", label("Settings:"), settings)
				}
			}
		}
	},
}

func describeSettings(m animation.ManifestAnimation) string {
	var parts []string
	if m.Autoplay != nil {
		parts = append(parts, fmt.Sprintf("autoplay=%t", *m.Autoplay))
	}
	if m.Loop != nil {
		parts = append(parts, fmt.Sprintf("loop=%t", *m.Loop))
	}
	if m.Mode != nil {
		parts = append(parts, "mode="+*m.Mode)
	}
	if m.Speed != nil {
		parts = append(parts, fmt.Sprintf("speed=%g", *m.Speed))
	}
	if m.Direction != nil {
		parts = append(parts, fmt.Sprintf("direction=%d", *m.Direction))
	}
	return strings.Join(parts, " ")
}
