// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/dotplay-cli/dotplay/color"
	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string

	// Options lists the accepted values of enumerated string or int fields.
	Options []string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Dotplay + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Options     []string `json:"options,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Options:     f.Options,
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string, options ...string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc, Options: options}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerAutoplay, true, "Start playback as soon as the animation is loaded")
	register(key.PlayerLoop, false, "Loop the animation.\nWith a playlist, also wraps from the last animation to the first")
	register(key.PlayerSpeed, 1.0, "Playback speed multiplier")
	register(key.PlayerDirection, 1, "Play direction, 1 for forward and -1 for reverse", "1", "-1")
	register(key.PlayerMode, "normal", "Play mode", "normal", "bounce")
	register(key.PlayerCount, 0, "Number of loops before playback completes.\n0 loops forever")
	register(key.PlayerIntermission, 0, "Pause between loops, in milliseconds")
	register(key.PlayerSubframe, false, "Render in-between frames instead of snapping to whole frames")
	register(key.PlayerAnimateOnScroll, false, "Drive the frame position by scrolling instead of playing")
	register(key.PlayerHover, false, "Play while the pointer is over the player, stop when it leaves")
	register(key.RendererType, "svg", "Renderer requested from the engine", "svg", "canvas", "html")
	register(key.RendererFit, "contain", "How the animation fits its container", "contain", "cover", "fill", "none", "scale-down")
	register(key.TUIShowHelp, true, "Show key bindings under the player")
	register(key.TUIProgressWidth, 48, "Width of the seeker bar, in cells")
	register(key.NetworkTimeout, 60, "Timeout for remote sources, in seconds")
	register(key.NetworkImpersonateBrowser, false, "Fetch remote sources with a browser TLS fingerprint.\nSome CDNs reject plain Go clients")
	register(key.CacheLifetimeHours, 72, "How long downloaded animations are kept in the cache, in hours")
	register(key.HistorySave, true, "Remember played sources and their last position")
	register(key.HooksScript, "", "Lua script receiving every lifecycle event.\nType \"dotplay hook new\" to scaffold one")
	register(key.RemoteAddr, "", "Listen address of the remote control API, e.g. 127.0.0.1:7878.\nEmpty disables it")
	register(key.RemoteRateLimit, 20, "Remote control requests allowed per second and client")
	register(key.IconsVariant, "plain", "Icons variant, nerd requires a nerd font", "emoji", "kaomoji", "plain", "squares", "nerd")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Log level, from less to most verbose", "panic", "fatal", "error", "warn", "info", "debug", "trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when help is shown")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"join":     strings.Join,
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}{{ if .Options }}
{{ blue "Options:" }} {{ join .Options ", " }}{{ end }}`))
