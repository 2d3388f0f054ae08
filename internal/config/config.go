package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/janekbaraniewski/ctxline/internal/core"
	"github.com/janekbaraniewski/ctxline/internal/widgets"
)

const appName = "ctxline"

type Config struct {
	Settings core.Settings   `json:"settings"`
	Item     core.WidgetItem `json:"item"`
}

func DefaultItem() core.WidgetItem {
	item := core.WidgetItem{
		ID:   "1",
		Type: widgets.TypeContextPercentageUsable,
	}
	return widgets.Options{}.Apply(item)
}

func DefaultConfig() Config {
	return Config{
		Settings: core.Settings{Colors: true},
		Item:     DefaultItem(),
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigPath honours CTXLINE_CONFIG before falling back to the per-user
// config directory.
func ConfigPath() string {
	if p := os.Getenv("CTXLINE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// Start from an empty item so persisted metadata is not merged into the
	// default map.
	cfg.Item = core.WidgetItem{}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Item.Type == "" {
		cfg.Item.Type = widgets.TypeContextPercentageUsable
	}
	if cfg.Item.ID == "" {
		cfg.Item.ID = DefaultItem().ID
	}
	if cfg.Settings.MaxWidth < 0 {
		cfg.Settings.MaxWidth = 0
	}

	return cfg, nil
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveItem persists the widget item into the config file (read-modify-write),
// leaving the render settings as they are on disk.
func SaveItem(item core.WidgetItem) error {
	return SaveItemTo(ConfigPath(), item)
}

func SaveItemTo(path string, item core.WidgetItem) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := LoadFrom(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.Item = item
	return SaveTo(path, cfg)
}
