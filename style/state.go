package style

import "github.com/dotplay-cli/dotplay/color"

// State renders a player state name as a colored tag.
func State(name string) string {
	return Tag(color.Ink, color.ForState(name))(name)
}
