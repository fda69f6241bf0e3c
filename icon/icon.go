// Package icon renders transport and status symbols in the variant the user configured.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/dotplay-cli/dotplay/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Play Icon = iota
	Pause
	Stop
	Next
	Previous
	Loop
	Bounce
	Frozen
	Complete
	Success
	Fail
	Progress
	Lua
	Remote
)

var icons = map[Icon]*iconDef{
	Play:     {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(ﾉ◕ヮ◕)ﾉ", squares: "▶"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(－_－) zzZ", squares: "▮▮"},
	Stop:     {emoji: "⏹️", nerd: "", plain: "[]", kaomoji: "(¬_¬)", squares: "■"},
	Next:     {emoji: "⏭️", nerd: "", plain: ">>", kaomoji: "(☞ﾟヮﾟ)☞", squares: "▶▮"},
	Previous: {emoji: "⏮️", nerd: "", plain: "<<", kaomoji: "☜(ﾟヮﾟ☜)", squares: "▮◀"},
	Loop:     {emoji: "🔁", nerd: "", plain: "loop", kaomoji: "(づ｡◕‿‿◕｡)づ", squares: "↻"},
	Bounce:   {emoji: "🔀", nerd: "", plain: "bounce", kaomoji: "ヽ(°〇°)ﾉ", squares: "⇄"},
	Frozen:   {emoji: "🧊", nerd: "", plain: "*", kaomoji: "(＊￣▽￣)b", squares: "◇"},
	Complete: {emoji: "🏁", nerd: "", plain: "done", kaomoji: "٩(◕‿◕｡)۶", squares: "▣"},
	Success:  {emoji: "🎉", nerd: "", plain: "+", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Fail:     {emoji: "💥", nerd: "", plain: "!", kaomoji: "(╯°□°）╯︵ ┻━┻", squares: "🟥"},
	Progress: {emoji: "⏳", nerd: "", plain: "~", kaomoji: "(・_・ヾ", squares: "🟦"},
	Lua:      {emoji: "🌙", nerd: "", plain: "lua", kaomoji: "( ˘▽˘)っ♨", squares: "🟪"},
	Remote:   {emoji: "📡", nerd: "", plain: "@", kaomoji: "(っ˘ڡ˘ς)", squares: "🟨"},
}

// Get returns the rendered string for an icon in the configured variant.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.Get()
}
