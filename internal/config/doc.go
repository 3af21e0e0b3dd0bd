// Package config loads the shelf client configuration.
//
// The file lives at ~/.config/shelf/config.toml unless -config points
// elsewhere. A missing file is not an error: every field has a default.
//
//	api_url      = "http://127.0.0.1:8000"   # catalog service base URL
//	backend      = "rest"                    # rest or odata
//	language     = "en"                      # initial UI language
//	poll_seconds = 5                         # refresh cadence
//	log_file     = "~/.local/state/shelf/shelf.log"
//
// Blank values fall back to their defaults and paths starting with ~ are
// expanded against the user's home directory. An unknown backend or a poll
// interval outside 1..600 seconds fails Load.
package config
