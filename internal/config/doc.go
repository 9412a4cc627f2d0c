// Package config loads the viewer's TOML configuration.
//
// The default location is ~/.config/logterm/config.toml. A missing file is
// not an error: Load returns Default so the viewer works without any setup.
// Command-line flags override individual values after loading.
//
// # TOML Format
//
//	max_lines = 2000     # lines kept per channel, fixed at startup
//	page_size = 10       # page-up/page-down step
//	level = "debug"      # minimum slog level shown
//	theme = "Slate"      # initial theme, overridden by saved prefs
//	log_output = ""      # optional file mirroring the viewer's own log
//
//	[route]
//	split_by = "attr"    # attr, attr_prefix or group
//	key = "component"    # attribute that names the channel
//	separator = "."      # attr_prefix cut point
//	allow = []           # show only these channels
//	deny = []            # hide these channels
//	color = false        # keep ANSI color in formatted records
//
// Values that cannot be used are reported as *ValidationError; unreadable
// or malformed files are wrapped errors from Load.
package config
