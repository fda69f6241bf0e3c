package cmd

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/icon"
	"github.com/dotplay-cli/dotplay/style"
	"github.com/dotplay-cli/dotplay/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(combineCmd)
	combineCmd.Flags().StringP("output", "o", "combined.lottie", "Archive to write")
	combineCmd.Flags().StringSlice("id", nil, "Ids of the added animations, in order. Missing ids are generated")
	combineCmd.SetOut(os.Stdout)
}

var combineCmd = &cobra.Command{
	Use:     "combine <base> <source>...",
	Short:   "Append animations to a dotLottie archive",
	Example: "  dotplay combine intro.lottie loop.json outro.json -o show.lottie --id loop,outro",
	Args:    cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			loader = animation.NewLoader()
			ids    = lo.Must(cmd.Flags().GetStringSlice("id"))
			output = lo.Must(cmd.Flags().GetString("output"))
		)

		base, err := loader.Load(context.Background(), args[0])
		handleErr(err)

		additions := make([]animation.Addition, 0, len(args)-1)
		for i, src := range args[1:] {
			bundle, err := loader.Load(context.Background(), src)
			handleErr(err)

			addition := animation.Addition{Bundle: bundle}
			if i < len(ids) {
				addition.ID = strings.TrimSpace(ids[i])
			}
			additions = append(additions, addition)
		}

		combined, err := animation.Combine(base, additions...)
		handleErr(err)

		var buf bytes.Buffer
		handleErr(animation.WriteArchive(&buf, combined))
		handleErr(writeOutput(output, buf.Bytes()))

		cmd.Printf(
			"%s wrote %s with %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(output),
			util.Quantify(len(combined.Animations), "animation", "animations"),
		)
	},
}
