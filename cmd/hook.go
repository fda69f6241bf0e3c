package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/hook"
	"github.com/dotplay-cli/dotplay/icon"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/dotplay-cli/dotplay/style"
	"github.com/dotplay-cli/dotplay/util"
	"github.com/dotplay-cli/dotplay/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const hookExtension = ".lua"

func init() {
	rootCmd.AddCommand(hookCmd)
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage Lua scripts that receive player lifecycle events",
}

func completionHookNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	names, err := hookNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func hookNames() ([]string, error) {
	files, err := filesystem.API().ReadDir(where.Hooks())
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(files, func(item os.FileInfo, _ int) (string, bool) {
		name := item.Name()
		if item.IsDir() || !strings.HasSuffix(name, hookExtension) {
			return "", false
		}
		return util.FileStem(name), true
	}), nil
}

func init() {
	hookCmd.AddCommand(hookListCmd)
	hookListCmd.Flags().BoolP("path", "p", false, "Print full paths instead of names")
	hookListCmd.SetOut(os.Stdout)
}

var hookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scripts in the hooks directory",
	Run: func(cmd *cobra.Command, args []string) {
		names, err := hookNames()
		handleErr(err)

		full := lo.Must(cmd.Flags().GetBool("path"))
		for _, name := range names {
			if full {
				cmd.Println(filepath.Join(where.Hooks(), name+hookExtension))
			} else {
				cmd.Println(name)
			}
		}
	},
}

func init() {
	hookCmd.AddCommand(hookNewCmd)
	hookNewCmd.Flags().StringP("author", "a", "", "Author written into the script header")
	hookNewCmd.SetOut(os.Stdout)
}

var hookNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new hook script",
	Long: `Generate a Lua script with an on_event handler in the hooks directory.
Point hooks.script at it to have it called for every lifecycle event.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		author := lo.Must(cmd.Flags().GetString("author"))
		if author == "" {
			author = hook.Author()
		}

		path, err := hook.New(args[0], author)
		handleErr(err)
		cmd.Println(path)
	},
}

func init() {
	hookCmd.AddCommand(hookRemoveCmd)
}

var hookRemoveCmd = &cobra.Command{
	Use:               "remove <name>...",
	Short:             "Delete hook scripts",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionHookNames,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			path := filepath.Join(where.Hooks(), name+hookExtension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	hookCmd.AddCommand(hookRunCmd)
	hookRunCmd.Flags().StringP("event", "e", string(player.EventComplete), "Event to deliver")
	hookRunCmd.Flags().Float64("frame", 0, "Frame carried by the event")
	hookRunCmd.Flags().Int("seeker", 0, "Seeker carried by the event")
	lo.Must0(hookRunCmd.RegisterFlagCompletionFunc("event", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(player.Events(), func(e player.Event, _ int) string { return string(e) }), cobra.ShellCompDirectiveNoFileComp
	}))
}

var hookRunCmd = &cobra.Command{
	Use:     "run <file>",
	Short:   "Deliver a single event to a hook script",
	Long:    `Load a hook script and call its on_event handler once. Useful while writing hooks.`,
	Args:    cobra.ExactArgs(1),
	Example: "  dotplay hook run ./notify.lua --event loop --frame 59",
	Run: func(cmd *cobra.Command, args []string) {
		h, err := hook.Load(args[0])
		handleErr(err)
		defer h.Close()

		event := player.Event(lo.Must(cmd.Flags().GetString("event")))
		if !lo.Contains(player.Events(), event) {
			handleErr(fmt.Errorf("unknown event %s", event))
		}

		handleErr(h.Call(event, player.Detail{
			Frame:  lo.Must(cmd.Flags().GetFloat64("frame")),
			Seeker: lo.Must(cmd.Flags().GetInt("seeker")),
			State:  player.Playing,
		}))

		fmt.Printf("%s %s handled %s\n", style.Fg(color.Green)(icon.Get(icon.Lua)), h.Name, style.Fg(color.Purple)(string(event)))
	},
}
