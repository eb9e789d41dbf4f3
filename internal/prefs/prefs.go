// Package prefs persists how the sous UI looks between runs.
//
// The file lives at ~/.config/sous/prefs.toml. It only records UI choices;
// queries and results are never written to disk.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultPrefsPath = "~/.config/sous/prefs.toml"
	defaultTheme     = "Dracula"
)

// Prefs are the persisted UI choices.
type Prefs struct {
	Theme    string `toml:"theme"`
	RichText *bool  `toml:"rich_text,omitempty"` // nil defers to config
}

// DefaultPath returns the preferences path used when none is given.
func DefaultPath() string {
	return defaultPrefsPath
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// Load reads the preferences at path. A missing, unreadable or malformed
// file yields defaults.
func Load(path string) Prefs {
	p := Prefs{Theme: defaultTheme}

	file, err := resolve(path)
	if err != nil {
		return p
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return p
	}

	var stored Prefs
	if err := toml.Unmarshal(data, &stored); err != nil {
		return p
	}
	if theme := strings.TrimSpace(stored.Theme); theme != "" {
		p.Theme = theme
	}
	p.RichText = stored.RichText
	return p
}

// Save writes p to path through a temporary file in the same directory,
// so a partial write never replaces a good file.
func Save(path string, p Prefs) error {
	file, err := resolve(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// resolve expands a leading ~ and makes path absolute. An empty path means
// the default location.
func resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
