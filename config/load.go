package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Format is a config file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SYNAPSE_"

// FormatFromPath picks the encoding from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// ParseFormat accepts a format name as given on the command line
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Load reads path over the defaults, applies environment overrides and validates
// An empty or missing path yields defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		format, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := Decode(data, format, cfg); err != nil {
				return nil, fmt.Errorf("decode config %s: %w", path, err)
			}
		}
	}

	if err := ApplyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays data onto cfg, rejecting unknown keys
func Decode(data []byte, format Format, cfg *Config) error {
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
		}
		return nil

	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Encode writes cfg in the given format
func Encode(w io.Writer, cfg *Config, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the environment
// Variables already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg from SYNAPSE_* variables read through getenv
// Malformed values are reported rather than silently ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	var errs []error
	lookup := func(name string) (string, bool) {
		v := strings.TrimSpace(getenv(EnvPrefix + name))
		return v, v != ""
	}
	setBool := func(name string, dst *bool) {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s%s=%q", ErrInvalid, EnvPrefix, name, v))
				return
			}
			*dst = b
		}
	}
	setInt := func(name string, dst *int) {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s%s=%q", ErrInvalid, EnvPrefix, name, v))
				return
			}
			*dst = n
		}
	}

	if v, ok := lookup("LAYOUT"); ok {
		cfg.Layout.Name = strings.ToLower(v)
	}
	if v, ok := lookup("SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %sSEED=%q", ErrInvalid, EnvPrefix, v))
		} else {
			cfg.Simulation.Seed = seed
		}
	}
	setBool("AUTO_FIRE", &cfg.Simulation.AutoFire)
	setBool("POINTER_FIRE", &cfg.Simulation.PointerFire)
	setInt("MAX_SIGNALS", &cfg.Simulation.MaxSignals)
	setInt("FPS", &cfg.Sandbox.FPS)
	setInt("SCALE", &cfg.Sandbox.Scale)
	setBool("HUD", &cfg.Sandbox.HUD)
	setBool("AUDIO_ENABLED", &cfg.Audio.Enabled)

	// Volume is given as 0-100 like a mixer slider
	volume := -1
	setInt("VOLUME", &volume)
	if volume >= 0 {
		cfg.Audio.Volume = float64(min(volume, 100)) / 100
	}

	return errors.Join(errs...)
}

// EnvKeys lists the recognized override variables
func EnvKeys() []string {
	keys := []string{
		"LAYOUT", "SEED", "AUTO_FIRE", "POINTER_FIRE", "MAX_SIGNALS",
		"FPS", "SCALE", "HUD", "AUDIO_ENABLED", "VOLUME",
	}
	for i, k := range keys {
		keys[i] = EnvPrefix + k
	}
	slices.Sort(keys)
	return keys
}
