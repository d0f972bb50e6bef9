// Package paths resolves the configuration directory and provisions the
// category-partitioned output tree.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// CWD-relative default directory names.
const (
	DefaultConfigDirName = ".sampleatlas"
	DefaultOutputDirName = "sampleatlas_output"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SAMPLEATLAS_CONFIG_DIR"
	EnvOutputDir = "SAMPLEATLAS_OUTPUT_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/sampleatlas (fallback ~/.config/sampleatlas)
// macOS:   ~/Library/Application Support/sampleatlas
// Windows: %APPDATA%/sampleatlas
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "sampleatlas"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "sampleatlas"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "sampleatlas"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SAMPLEATLAS_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveOutputDir returns the output directory following the precedence
// chain: flag > config.yaml value > SAMPLEATLAS_OUTPUT_DIR env > CWD default.
func ResolveOutputDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvOutputDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultOutputDirName), nil
}

// Layout is the output directory tree for one analysis run.
type Layout struct {
	Root string
}

// Stage directories.
func (l Layout) MetadataDir() string       { return filepath.Join(l.Root, "metadata") }
func (l Layout) ClassificationDir() string { return filepath.Join(l.Root, "classification") }
func (l Layout) FastqDir() string          { return filepath.Join(l.Root, "fastq_downloads") }
func (l Layout) LogsDir() string           { return filepath.Join(l.Root, "logs") }

// CategoryDir returns the partition directory for a category name.
func (l Layout) CategoryDir(category string) string {
	return filepath.Join(l.FastqDir(), category)
}

// CategoryRawDir returns the raw download directory for a category.
func (l Layout) CategoryRawDir(category string) string {
	return filepath.Join(l.CategoryDir(category), "raw")
}

// CategoryLogsDir returns the per-run log directory for a category.
func (l Layout) CategoryLogsDir(category string) string {
	return filepath.Join(l.CategoryDir(category), "logs")
}

// Provision creates the full output tree: stage directories plus
// raw/processed/logs under every category partition.
func (l Layout) Provision() error {
	dirs := []string{
		l.MetadataDir(),
		l.ClassificationDir(),
		l.FastqDir(),
		l.LogsDir(),
	}
	for _, cat := range types.Categories {
		dirs = append(dirs,
			l.CategoryRawDir(cat),
			filepath.Join(l.CategoryDir(cat), "processed"),
			l.CategoryLogsDir(cat),
		)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}
