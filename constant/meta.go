// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Dotplay is the canonical application identifier used for filesystem paths and CLI branding.
	Dotplay = "dotplay"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is sent with every remote animation request.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Generator is written into every manifest produced by convert and combine.
	Generator = "dotplay " + Version
)

// Build metadata, injected through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
