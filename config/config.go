package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
)

const (
	// EnvPrefix is the prefix of environment variables overriding configuration values
	EnvPrefix = "VULNISSIMO_"
	// appDir is the directory under the user configuration directory holding the config file
	appDir = "vulnissimo"
	// fileName is the name of the default configuration file
	fileName = "config.yaml"
)

// Config holds the vulnissimo CLI configuration
type Config struct {
	// API contains settings for the Vulnissimo API client
	API API `json:"api" koanf:"api"`
	// Poll contains settings for polling running scans
	Poll Poll `json:"poll" koanf:"poll"`
	// Output contains the default rendering of scan results
	Output Output `json:"output" koanf:"output"`
	// Notify contains settings for scan completion notifications
	Notify Notify `json:"notify" koanf:"notify"`
}

// API contains settings for the Vulnissimo API client
type API struct {
	// BaseURL is the root endpoint of the Vulnissimo API
	BaseURL string `json:"baseurl" koanf:"baseurl" default:"https://api.vulnissimo.io"`
	// RequestTimeout bounds a single API request
	RequestTimeout time.Duration `json:"requesttimeout" koanf:"requesttimeout" default:"30s"`
}

// Poll contains settings for polling running scans
type Poll struct {
	// Interval is the wait between two fetches of a running scan
	Interval time.Duration `json:"interval" koanf:"interval" default:"2s"`
}

// Output contains the default rendering of scan results
type Output struct {
	// Type is the output format, json or pretty
	Type string `json:"type" koanf:"type" default:"json"`
	// Indent is the JSON indentation width, negative for compact output
	Indent int `json:"indent" koanf:"indent" default:"2"`
}

// Notify contains settings for scan completion notifications
type Notify struct {
	// SlackWebhookURL enables a Slack message when a scan started by run finishes
	SlackWebhookURL string `json:"slackwebhookurl" koanf:"slackwebhookurl" sensitive:"true"`
	// RequestTimeout bounds the webhook request
	RequestTimeout time.Duration `json:"requesttimeout" koanf:"requesttimeout" default:"10s"`
}

// DefaultFile returns the configuration file read when none is given,
// or an empty string when the user configuration directory is unknown
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, appDir, fileName)
}

// Load builds the configuration from defaults, the YAML file at cfgFile and
// VULNISSIMO_ environment variables, in increasing order of precedence.
// A nil or empty cfgFile reads DefaultFile when it exists.
func Load(cfgFile *string) (*Config, error) {
	k := koanf.New(".")

	conf := &Config{}
	defaults.SetDefaults(conf)

	path, explicit := DefaultFile(), false
	if cfgFile != nil && *cfgFile != "" {
		path, explicit = *cfgFile, true
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			switch {
			case errors.Is(err, fs.ErrNotExist) && !explicit:
			case errors.Is(err, fs.ErrNotExist):
				return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
			default:
				return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
	}

	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return conf, nil
}

// envKey maps VULNISSIMO_API_BASEURL to api.baseurl
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}
