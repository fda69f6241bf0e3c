// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback defaults - applied to every session unless a manifest or playlist entry overrides them.
const (
	PlayerAutoplay        = "player.autoplay"
	PlayerLoop            = "player.loop"
	PlayerSpeed           = "player.speed"
	PlayerDirection       = "player.direction"
	PlayerMode            = "player.mode"
	PlayerCount           = "player.count"
	PlayerIntermission    = "player.intermission"
	PlayerSubframe        = "player.subframe"
	PlayerAnimateOnScroll = "player.animate_on_scroll"
	PlayerHover           = "player.hover"
)

// Rendering - passed through to the rendering engine when a handle is created.
const (
	RendererType = "renderer.type"
	RendererFit  = "renderer.object_fit"
)

// Terminal User Interface (TUI) - these keys define the interactive player's layout.
const (
	TUIShowHelp      = "tui.show_help"
	TUIProgressWidth = "tui.progress_width"
)

// Network - these keys tune how remote animation sources are fetched.
const (
	NetworkTimeout            = "network.timeout"
	NetworkImpersonateBrowser = "network.impersonate_browser"
)

// Caching - remote sources are kept on disk for this long.
const (
	CacheLifetimeHours = "cache.lifetime_hours"
)

// History Tracking - these keys configure the persistence of recently played sources.
const (
	HistorySave = "history.save"
)

// Hooks - lifecycle events can be forwarded to a Lua script.
const (
	HooksScript = "hooks.script"
)

// Remote control - these keys configure the optional HTTP control surface.
const (
	RemoteAddr      = "remote.addr"
	RemoteRateLimit = "remote.rate_limit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
