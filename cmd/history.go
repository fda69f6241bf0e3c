package cmd

import (
	"encoding/json"
	"os"

	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/history"
	"github.com/dotplay-cli/dotplay/icon"
	"github.com/dotplay-cli/dotplay/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyCmd.Flags().StringP("suggest", "s", "", "Only list sources matching this fuzzy query")
	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently played sources and where they were left",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := history.Recent()
		handleErr(err)

		if cmd.Flags().Changed("suggest") {
			matches, err := history.Suggest(lo.Must(cmd.Flags().GetString("suggest")))
			handleErr(err)
			entries = lo.Filter(entries, func(e *history.Entry, _ int) bool {
				return lo.Contains(matches, e.Src)
			})
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		for _, e := range entries {
			cmd.Printf("%s %s\n", e.String(), style.Faint(e.Src))
		}
	},
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <source>...",
	Short: "Forget sources",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		suggestions, err := history.Suggest(toComplete)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return suggestions, cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := history.Get()
		handleErr(err)

		for _, src := range args {
			entry, ok := entries[src]
			if !ok {
				cmd.Printf("%s %s is not in the history\n", icon.Get(icon.Fail), style.Fg(color.Yellow)(src))
				continue
			}
			handleErr(history.Remove(entry))
			cmd.Printf("%s forgot %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(src))
		}
	},
}
