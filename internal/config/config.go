// Package config loads reader defaults using Viper, the same
// config-file-plus-environment-plus-defaults layering used elsewhere in
// this codebase for device configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the reader's tunable defaults.
type Config struct {
	// DebugLevel is the configured debug_level value. No command reads it:
	// volume open prints nothing extra and diag output is the same at
	// every level.
	DebugLevel int `mapstructure:"debug_level"`

	// VMFSBase is the default offset, in bytes, of a volume's descriptors
	// within the backing image, used when a command does not pass
	// --vmfs-base explicitly. 0x100000 (where VolumeInfo sits) for a volume
	// that starts at the beginning of the image.
	VMFSBase int64 `mapstructure:"vmfs_base"`
}

// Load reads vmfsreader.yaml from the working directory, ./config,
// $HOME/.vmfsreader, or /etc/vmfsreader, falling back to defaults when no
// config file is present.
func Load() (*Config, error) {
	viper.SetConfigName("vmfsreader")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.vmfsreader")
	viper.AddConfigPath("/etc/vmfsreader")

	viper.SetDefault("debug_level", 0)
	viper.SetDefault("vmfs_base", 0x100000)

	viper.SetEnvPrefix("VMFSREADER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
