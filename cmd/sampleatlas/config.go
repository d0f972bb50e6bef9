// Config loading for the sampleatlas CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyCellLineRef  = "cell_line_ref"
	cfgKeyOutputDir    = "output_dir"
	cfgKeyFetchWorkers = "fetch_workers"
	cfgKeyENABaseURL   = "ena_base_url"
	cfgKeyMaxResults   = "max_results"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# sampleatlas configuration

# Cell line reference database (CSV or SQLite). Optional; when absent the
# classifier falls back to generic cell-line keyword detection.
# cell_line_ref:

# Output directory (optional; overridable by --output flags)
# output_dir:

# Parallel FASTQ download workers
fetch_workers: 4

# ENA portal search endpoint
ena_base_url: https://www.ebi.ac.uk/ena/portal/api/search

# Maximum run accessions collected per search
max_results: 1000
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper, creating the directory and a default config.yaml on first run. A
// missing config.yaml is not an error.
func loadConfig(configDir string) (types.Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyFetchWorkers, types.DefaultFetchWorkers)
	v.SetDefault(cfgKeyENABaseURL, types.DefaultENABaseURL)
	v.SetDefault(cfgKeyMaxResults, types.DefaultMaxResults)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		CellLineRef:  v.GetString(cfgKeyCellLineRef),
		OutputDir:    v.GetString(cfgKeyOutputDir),
		FetchWorkers: v.GetInt(cfgKeyFetchWorkers),
		ENABaseURL:   v.GetString(cfgKeyENABaseURL),
		MaxResults:   v.GetInt(cfgKeyMaxResults),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
