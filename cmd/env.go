package cmd

import (
	"os"
	"strings"

	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/config"
	"github.com/dotplay-cli/dotplay/style"
	"github.com/dotplay-cli/dotplay/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

type envVar struct {
	name, description string
}

// envVars lists every variable dotplay reads, sorted by name.
func envVars() []envVar {
	vars := lo.Map(config.EnvExposed, func(k string, _ int) envVar {
		field := config.Default[k]
		return envVar{name: field.Env(), description: strings.SplitN(field.Description, "\n", 2)[0]}
	})
	vars = append(vars, envVar{name: where.EnvConfigPath, description: "Directory holding the config file, hooks and logs"})

	slices.SortFunc(vars, func(a, b envVar) int {
		return strings.Compare(a.name, b.name)
	})
	return vars
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only list variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only list variables that are not set")
	envCmd.Flags().BoolP("export", "e", false, "Print set variables as shell export lines")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.MarkFlagsMutuallyExclusive("export", "unset-only")
	envCmd.SetOut(os.Stdout)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables dotplay reads",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			export    = lo.Must(cmd.Flags().GetBool("export"))
			nameStyle = style.New().Bold(true).Foreground(color.Purple).Render
		)

		for _, v := range envVars() {
			value, present := os.LookupEnv(v.name)

			switch {
			case export:
				if present {
					cmd.Printf("export %s=%q\n", v.name, value)
				}
				continue
			case setOnly && !present, unsetOnly && present:
				continue
			}

			shown := style.Fg(color.Red)("unset")
			if present {
				shown = style.Fg(color.Green)(value)
			}

			cmd.Printf("%s=%s %s\n", nameStyle(v.name), shown, style.Faint("# "+v.description))
		}
	},
}
