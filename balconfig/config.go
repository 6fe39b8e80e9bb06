package balconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds Ballistic's CLI-facing settings: engine sizing, logging
// verbosity, a decode table path, and a guest entry offset.
type Config struct {
	Engine struct {
		InstructionCapacity int `toml:"instruction_capacity"`
		ConstantCapacity    int `toml:"constant_capacity"`
		SourceVarCapacity   int `toml:"source_variable_capacity"`
		ArenaAlignment      int `toml:"arena_alignment"`
	} `toml:"engine"`

	Logging struct {
		MinLevel    string `toml:"min_level"`
		OutputFile  string `toml:"output_file"`
		IncludeFile bool   `toml:"include_file"`
	} `toml:"logging"`

	Decoder struct {
		TablePath string `toml:"table_path"`
	} `toml:"decoder"`

	Guest struct {
		EntryOffset uint64 `toml:"entry_offset"`
	} `toml:"guest"`
}

// DefaultConfig returns a Config with Ballistic's built-in defaults, the
// same values balengine and ballog use when no config file is present.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Engine.InstructionCapacity = 65536
	cfg.Engine.ConstantCapacity = 65536
	cfg.Engine.SourceVarCapacity = 128
	cfg.Engine.ArenaAlignment = 64

	cfg.Logging.MinLevel = "INFO"
	cfg.Logging.OutputFile = ""
	cfg.Logging.IncludeFile = true

	cfg.Decoder.TablePath = ""

	cfg.Guest.EntryOffset = 0

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "ballistic")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "ballistic.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "ballistic")

	default:
		return "ballistic.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "ballistic.toml"
	}

	return filepath.Join(configDir, "ballistic.toml")
}

// Load loads configuration from the default config file, falling back to
// DefaultConfig if it does not exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, falling back to DefaultConfig if
// path does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
