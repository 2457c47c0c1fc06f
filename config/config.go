package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// DefaultFile is the configuration file looked up when none is given
const DefaultFile = "ddlgen.yaml"

// DefaultFileName is the base name of generated files
const DefaultFileName = "ddl"

// Config is the whole configuration file
type Config struct {
	LineEnding  string       `mapstructure:"lineEnding"`
	Definitions []Definition `mapstructure:"ddl"`
}

// Definition describes one schema file to compile and where to write it
type Definition struct {
	Yaml       string `mapstructure:"yaml"`
	OutDir     string `mapstructure:"outDir"`
	FileName   string `mapstructure:"fileName"`
	Schema     string `mapstructure:"schema"`
	ExistCheck bool   `mapstructure:"existCheck"`
	Truncate   bool   `mapstructure:"truncate"`
	LowerAll   bool   `mapstructure:"lowerAll"`
}

// Complete reports whether both the input and the output target are set
func (d Definition) Complete() bool {
	return strings.TrimSpace(d.Yaml) != "" && strings.TrimSpace(d.OutDir) != ""
}

// BaseName returns the configured file name, or DefaultFileName when blank
func (d Definition) BaseName() string {
	if strings.TrimSpace(d.FileName) == "" {
		return DefaultFileName
	}
	return d.FileName
}

// Load reads the configuration file. Values can be overridden through
// DDLGEN_* environment variables, e.g. DDLGEN_LINEENDING=linux.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path == "" {
		path = DefaultFile
	}
	v.SetConfigFile(path)
	v.SetEnvPrefix("ddlgen")
	v.AutomaticEnv()
	v.SetDefault("lineEnding", "platform")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return &cfg, nil
}
