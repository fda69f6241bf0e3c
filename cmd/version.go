package cmd

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/engine/sim"
	"github.com/dotplay-cli/dotplay/style"
	"github.com/dotplay-cli/dotplay/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type buildInfo struct {
	App      string `json:"app"`
	Version  string `json:"version"`
	Engine   string `json:"engine"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"built_at"`
	BuiltBy  string `json:"built_by"`
	Platform string `json:"platform"`
	Go       string `json:"go"`
}

func currentBuild() buildInfo {
	return buildInfo{
		App:      constant.Dotplay,
		Version:  constant.Version,
		Engine:   sim.Name,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Go:       runtime.Version(),
	}
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"purple": style.Fg(color.Purple),
}).Parse(`{{ purple "▇▇▇" }} {{ purple .App }}

  {{ faint "Version" }}     {{ bold .Version }}
  {{ faint "Engine" }}      {{ bold .Engine }}
  {{ faint "Revision" }}    {{ bold .Revision }}
  {{ faint "Built" }}       {{ bold .BuiltAt }} by {{ bold .BuiltBy }}
  {{ faint "Platform" }}    {{ bold .Platform }} ({{ .Go }})
`))

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
	versionCmd.Flags().BoolP("json", "j", false, "Print build metadata as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		info := currentBuild()

		switch {
		case lo.Must(cmd.Flags().GetBool("short")):
			cmd.Println(info.Version)
		case lo.Must(cmd.Flags().GetBool("json")):
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
		default:
			handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
			version.Notify()
		}
	},
}
