package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/todos/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeySlotKey  = "slot_key"
	cfgKeyLogLevel = "log_level"

	defaultLogLevel = "warn"
	envPrefix       = "TODOS"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	SlotKey  string `yaml:"slot_key"`
	LogLevel string `yaml:"log_level"`
}

// defaultConfigFile returns the values written on first run.
func defaultConfigFile() configFile {
	return configFile{
		Backend:  types.BackendFile,
		SlotKey:  types.DefaultSlotKey,
		LogLevel: defaultLogLevel,
	}
}

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. TODOS_BACKEND and TODOS_LOG_LEVEL override the
// file; a non-nil backendFlag that was set overrides both.
func loadConfig(configDir string, backendFlag *pflag.Flag) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), defaultConfigFile()); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	v := viper.New()
	defaults := defaultConfigFile()
	v.SetDefault(cfgKeyBackend, defaults.Backend)
	v.SetDefault(cfgKeySlotKey, defaults.SlotKey)
	v.SetDefault(cfgKeyLogLevel, defaults.LogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	if err := v.BindEnv(cfgKeyBackend); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv(cfgKeyLogLevel); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	if backendFlag != nil {
		if err := v.BindPFlag(cfgKeyBackend, backendFlag); err != nil {
			return nil, fmt.Errorf("bind flag: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// writeConfigIfMissing writes cfg to path unless the file already exists.
func writeConfigIfMissing(path string, cfg configFile) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
