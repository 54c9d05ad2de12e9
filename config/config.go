package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Sheet describes the printed question grid.
type Sheet struct {
	Questions int `toml:"questions"`
	Options   int `toml:"options"`
}

// Preprocess contains the image normalization settings.
type Preprocess struct {
	// Zone is [min_x, min_y, max_x, max_y] as fractions of the frame.
	Zone           []float64 `toml:"zone"`
	CanonicalWidth int       `toml:"canonical_width"`
	Backend        string    `toml:"backend"`
	BlockSize      int       `toml:"block_size"`
	Bias           float64   `toml:"bias"`
	Deskew         bool      `toml:"deskew"`
}

// Detector contains the bubble shape filter.
type Detector struct {
	MinSize      int     `toml:"min_size"`
	MaxSize      int     `toml:"max_size"`
	MinAspect    float64 `toml:"min_aspect"`
	MaxAspect    float64 `toml:"max_aspect"`
	ExternalOnly bool    `toml:"external_only"`
}

// Layout contains the column and row grouping thresholds.
type Layout struct {
	ColumnThreshold     int `toml:"column_threshold"`
	RowTolerance        int `toml:"row_tolerance"`
	MinOptions          int `toml:"min_options"`
	LeftColumnQuestions int `toml:"left_column_questions"`
}

// Scoring selects the mark decision policy.
type Scoring struct {
	Policy    string  `toml:"policy"`
	Threshold int     `toml:"threshold"`
	Ratio     float64 `toml:"ratio"`
}

// Identifier controls how the sheet identifier is read.
type Identifier struct {
	OCRFallback bool `toml:"ocr_fallback"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is one sheet profile.
//
// Configuration sections by stage:
//   - Sheet: expected questions and options per question
//   - Preprocess: blanked zone, working width, binarizer and deskew
//   - Detector: bubble size and aspect bounds
//   - Layout: column split and row grouping
//   - Scoring: mark decision policy
//   - Identifier: printed-text fallback
//   - Logging: log format and level
type Config struct {
	Sheet      Sheet      `toml:"sheet"`
	Preprocess Preprocess `toml:"preprocess"`
	Detector   Detector   `toml:"detector"`
	Layout     Layout     `toml:"layout"`
	Scoring    Scoring    `toml:"scoring"`
	Identifier Identifier `toml:"identifier"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the default profile location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/omr/profile.toml")
}

// Load locates, parses, and validates a profile. A missing file yields the
// defaults. It returns the resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open profile: %w", err)
		}
		defer file.Close()

		if err := decode(file, &cfg); err != nil {
			return nil, "", false, err
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Parse decodes a profile from TOML text on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := decode(bytes.NewReader(data), &cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat profile: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("profile %q is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("omr.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// Sample returns the annotated sample profile.
func Sample() string {
	return sampleConfig
}

// CreateSample writes the sample profile to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample profile: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
