package cmd

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("playlist", "p", false, "Generate the JSON Schema of YAML playlist files")
	schemaCmd.Flags().BoolP("session", "s", false, "Generate the JSON Schema of the remote control's player state")
	schemaCmd.MarkFlagsMutuallyExclusive("playlist", "session")
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON Schema of dotLottie manifests, playlist files or the player state",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return t.Name()
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("playlist")):
			schema = reflector.Reflect(&animation.PlaylistFile{})
		case lo.Must(cmd.Flags().GetBool("session")):
			schema = reflector.Reflect(&player.Session{})
		default:
			schema = reflector.Reflect(&animation.Manifest{})
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
