package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rook-computer/shelf/internal/buttons"
	"github.com/rook-computer/shelf/internal/fsutil"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath     = "SHELF_CONFIG"
	DefaultConfigPath = "/etc/shelf/config.yaml"
)

// Config is the device configuration file.
type Config struct {
	// LibraryRoot is the directory shown as "/" in the file browser.
	LibraryRoot string `yaml:"library_root"`

	// CacheDir holds generated cover thumbnails.
	CacheDir string `yaml:"cache_dir"`

	// RecentBooksFile persists the recent-books list.
	RecentBooksFile string `yaml:"recent_books_file"`

	// OPDSURL enables the OPDS entry on the home screen when set.
	OPDSURL string `yaml:"opds_url"`

	// FrontButtons is "back-confirm-left-right" (default) or "left-right-back-confirm".
	FrontButtons string `yaml:"front_buttons"`

	// Framebuffer is the display device.
	Framebuffer string `yaml:"framebuffer"`

	// InputDevices is a glob of evdev devices to read buttons from.
	InputDevices string `yaml:"input_devices"`

	// ReaderCommand is run with the host path of a book when one is opened.
	ReaderCommand string `yaml:"reader_command,omitempty"`

	// ActivityCommands runs "opds", "file-transfer" and "settings" as external programs.
	ActivityCommands map[string]string `yaml:"activity_commands,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		LibraryRoot:     "/mnt/sd",
		CacheDir:        "/mnt/sd/.shelf/cache",
		RecentBooksFile: "/mnt/sd/.shelf/recent.yaml",
		FrontButtons:    buttons.LayoutBackConfirmLeftRight.String(),
		Framebuffer:     "/dev/fb0",
		InputDevices:    "/dev/input/event*",
	}
}

// Normalize fills in missing values with defaults so partially-filled files still work.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.LibraryRoot == "" {
		c.LibraryRoot = def.LibraryRoot
	}
	if c.CacheDir == "" {
		c.CacheDir = filepath.Join(c.LibraryRoot, ".shelf", "cache")
	}
	if c.RecentBooksFile == "" {
		c.RecentBooksFile = filepath.Join(c.LibraryRoot, ".shelf", "recent.yaml")
	}
	if _, err := buttons.ParseFrontLayout(c.FrontButtons); err != nil || c.FrontButtons == "" {
		c.FrontButtons = def.FrontButtons
	}
	if c.Framebuffer == "" {
		c.Framebuffer = def.Framebuffer
	}
	if c.InputDevices == "" {
		c.InputDevices = def.InputDevices
	}
}

// FrontLayout returns the parsed front-button layout.
func (c *Config) FrontLayout() buttons.FrontLayout {
	layout, _ := buttons.ParseFrontLayout(c.FrontButtons)
	return layout
}

// PathFromEnv returns the config path from SHELF_CONFIG, or the default.
func PathFromEnv() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}

// Load reads the yaml file at path. On first run the file does not exist yet; a default
// file is written and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Still usable; the caller decides whether a read-only config dir matters.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg atomically (temp file + rename).
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}
