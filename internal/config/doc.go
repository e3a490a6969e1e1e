// Package config loads RecipeMama's runtime configuration.
//
// # Resolution
//
// Load starts from Default, overlays ~/.config/recipemama/config.toml (or an
// explicit path), then applies environment overrides and validates:
//
//  1. A missing file is not an error; defaults are used.
//  2. Blank string values in the file keep their defaults.
//  3. RECIPEMAMA_API_URL replaces api_url when set.
//  4. The result must have an http(s) api_url, a request_timeout of at least
//     one second and a known log_level.
//
// # TOML Format
//
//	api_url = "https://dummyjson.com"
//	request_timeout = "10s"
//	log_file = "~/.local/share/recipemama/recipemama.log"
//	log_level = "info"
//	circuit_breaker = true
//	discard_stale = false
//
// Every key is optional. Tilde expansion is applied to the config path and
// to log_file.
package config
