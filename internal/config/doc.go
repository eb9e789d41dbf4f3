// Package config handles loading and parsing the sous configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/sous/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. SOUS_API_KEY and SOUS_API_BASE override whatever the file said
//
// # Default Values
//
//   - Config file: ~/.config/sous/config.toml
//   - API base: https://api.spoonacular.com
//   - Request timeout: 10s
//   - Autocomplete limit: 10
//   - Single-ingredient lookup limit: 10
//   - Search limit: 0 (API default)
//   - Log file: ~/.local/state/sous/sous.log
//
// # TOML Format
//
//	api_base = "https://api.spoonacular.com"
//	api_key = "..."
//	request_timeout = "10s"
//	autocomplete_limit = 10
//	search_limit = 0
//	ingredient_limit = 10
//	log_path = "~/.local/state/sous/sous.log"
//	rich_text = false
//
// # API Key
//
// There is no built-in key. Load does not fail when the key is missing so
// that help and completion commands work; callers that talk to the API
// call Validate first.
//
// # Error Handling
//
// Load returns errors for:
//   - Invalid path (e.g., empty after trimming)
//   - Home directory resolution failure (when path contains ~)
//   - File read errors (permissions, I/O errors)
//   - TOML parsing errors, including an unparseable request_timeout
//
// Missing config files are NOT an error; defaults are returned instead.
package config
