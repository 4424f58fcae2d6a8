package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"texrepo/internal/config"
	"texrepo/internal/faults"
	"texrepo/internal/layout"
	"texrepo/internal/logging"
)

type commandContext struct {
	configFlag *string
	repoFlag   *string

	once      sync.Once
	cfg       *config.Config
	root      string
	lay       layout.Layout
	logger    *slog.Logger
	resolveErr error
}

func newCommandContext(configFlag, repoFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		repoFlag:   repoFlag,
	}
}

// resolve loads configuration, finds the repository root, and pins the
// layout. It runs once; every accessor below shares the result.
func (c *commandContext) resolve() error {
	c.once.Do(func() {
		root, err := c.findRoot()
		if err != nil {
			c.resolveErr = err
			return
		}

		var configPath string
		if c.configFlag != nil {
			configPath = strings.TrimSpace(*c.configFlag)
		}
		if configPath == "" {
			configPath = filepath.Join(root, config.ConfigFileName)
		}
		cfg, _, _, err := config.Load(configPath)
		if err != nil {
			c.resolveErr = err
			return
		}

		logger, err := logging.New(os.Stderr, logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.resolveErr = err
			return
		}

		c.cfg = cfg
		c.root = root
		c.lay = cfg.Layout(root)
		c.logger = logger
	})
	return c.resolveErr
}

func (c *commandContext) findRoot() (string, error) {
	if c.repoFlag != nil && strings.TrimSpace(*c.repoFlag) != "" {
		return strings.TrimSpace(*c.repoFlag), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, ok := config.FindRoot(cwd); ok {
		return root, nil
	}
	// No marker anywhere above: treat the working directory as the root.
	// Validation will say plainly when it is not a repository.
	return cwd, nil
}

func (c *commandContext) repoRoot() (string, error) {
	if err := c.resolve(); err != nil {
		return "", err
	}
	return c.root, nil
}

func (c *commandContext) layoutValue() (layout.Layout, error) {
	if err := c.resolve(); err != nil {
		return layout.Layout{}, err
	}
	return c.lay, nil
}

func (c *commandContext) configValue() (*config.Config, error) {
	if err := c.resolve(); err != nil {
		return nil, err
	}
	return c.cfg, nil
}

func (c *commandContext) log() *slog.Logger {
	if err := c.resolve(); err != nil || c.logger == nil {
		return logging.NewNop()
	}
	return c.logger
}

// requireBook fails early for commands that only make sense with a book.
func (c *commandContext) requireBook() error {
	lay, err := c.layoutValue()
	if err != nil {
		return err
	}
	if !lay.HasBook() {
		return faults.Wrap(faults.ErrConfiguration, "cli", "layout",
			"this layout has no book; nothing to generate", nil)
	}
	return nil
}
