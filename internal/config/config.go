package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"texrepo/internal/layout"
)

//go:embed sample_config.toml
var sampleConfig string

// ConfigFileName is the repository configuration file, kept at the root.
const ConfigFileName = ".texrepo.toml"

// RootMarkerName marks a repository root that carries no configuration.
const RootMarkerName = ".paperrepo"

// Repository pins the structural shape of the repository.
type Repository struct {
	// Layout names the variant ("world-first" or "staged"); empty means
	// detect from disk.
	Layout string `toml:"layout"`
	// BookDir overrides the book directory implied by the layout.
	BookDir string `toml:"book_dir"`
}

// Report controls human-facing output.
type Report struct {
	Color string `toml:"color"` // auto, always, never
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// Config encapsulates every knob the CLI needs.
type Config struct {
	Repository Repository `toml:"repository"`
	Report     Report     `toml:"report"`
	Logging    Logging    `toml:"logging"`
}

// Load parses and validates a configuration file. An empty path means the
// file at the repository root discovered from the working directory. The
// boolean reports whether a file was actually found; absence is not an
// error.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		absolute, err := filepath.Abs(path)
		if err != nil {
			return "", false, fmt.Errorf("resolve config path: %w", err)
		}
		if _, err := os.Stat(absolute); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return absolute, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return absolute, true, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("resolve working directory: %w", err)
	}
	if root, ok := FindRoot(cwd); ok {
		candidate := filepath.Join(root, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		return candidate, false, nil
	}
	return filepath.Join(cwd, ConfigFileName), false, nil
}

// FindRoot walks upward from start looking for a configuration file or a
// root marker.
func FindRoot(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range []string{ConfigFileName, RootMarkerName} {
			if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Layout resolves the effective layout for a repository root: the pinned
// variant when configured, detection otherwise. A configured book_dir
// overrides the variant's default book location.
func (c *Config) Layout(root string) layout.Layout {
	l := layout.Detect(root)
	if c.Repository.Layout != "" {
		if pinned, ok := layout.FromName(c.Repository.Layout); ok {
			l = pinned
		}
	}
	if c.Repository.BookDir != "" {
		l = l.WithBookDir(c.Repository.BookDir)
	}
	return l
}

// CreateSample writes the annotated sample configuration to path. It
// refuses to overwrite an existing file.
func CreateSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
