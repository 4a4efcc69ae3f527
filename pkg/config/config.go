/*
Package config contains project configuration loaded from the alephium.yml
file.
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Version is the version of the SDK, it's set at build time.
var Version = "0.1.0-dev"

// Default configuration values.
const (
	DefaultConfigPath       = "alephium.yml"
	DefaultNodeURL          = "http://127.0.0.1:22973"
	DefaultSourceDir        = "contracts"
	DefaultArtifactDir      = "artifacts"
	DefaultGroups           = 4
	DefaultCompileCacheSize = 128
	DefaultRequestTimeout   = 10 * time.Second
	DefaultLogLevel         = "info"
)

// Config is the top level project configuration.
type Config struct {
	NodeURL          string        `yaml:"NodeURL"`
	SourceDir        string        `yaml:"SourceDir"`
	ArtifactDir      string        `yaml:"ArtifactDir"`
	Groups           int           `yaml:"Groups"`
	CompileCacheSize int           `yaml:"CompileCacheSize"`
	RequestTimeout   time.Duration `yaml:"RequestTimeout"`
	LogLevel         string        `yaml:"LogLevel"`
	LogPath          string        `yaml:"LogPath"`
	Deployer         Deployer      `yaml:"Deployer"`
	Prometheus       BasicService  `yaml:"Prometheus"`
	Pprof            BasicService  `yaml:"Pprof"`
}

// Deployer describes the account used to deploy contracts, it's either a
// private key or a node wallet.
type Deployer struct {
	PrivateKey     string `yaml:"PrivateKey"`
	WalletName     string `yaml:"WalletName"`
	WalletPassword string `yaml:"WalletPassword"`
}

// BasicService is used as a simple base for services like Prometheus
// exposition.
type BasicService struct {
	Enabled bool `yaml:"Enabled"`
	// Address is the listen address in host:port form.
	Address string `yaml:"Address"`
}

// Default returns the configuration with all defaults set.
func Default() Config {
	return Config{
		NodeURL:          DefaultNodeURL,
		SourceDir:        DefaultSourceDir,
		ArtifactDir:      DefaultArtifactDir,
		Groups:           DefaultGroups,
		CompileCacheSize: DefaultCompileCacheSize,
		RequestTimeout:   DefaultRequestTimeout,
		LogLevel:         DefaultLogLevel,
	}
}

// LoadFile loads the configuration from the given file, unset values get
// their defaults.
func LoadFile(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config '%s' doesn't exist", configPath)
	}
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Load(configData)
}

// Load parses the YAML configuration, unknown fields are an error.
func Load(configData []byte) (Config, error) {
	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(configData))
	decoder.KnownFields(true)
	err := decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	u, err := url.Parse(c.NodeURL)
	if err != nil {
		return fmt.Errorf("invalid NodeURL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid NodeURL scheme: %q", u.Scheme)
	}
	if c.Groups <= 0 {
		return fmt.Errorf("invalid number of groups: %d", c.Groups)
	}
	if c.CompileCacheSize < 0 {
		return fmt.Errorf("negative CompileCacheSize: %d", c.CompileCacheSize)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("negative RequestTimeout: %s", c.RequestTimeout)
	}
	if c.Deployer.PrivateKey != "" && c.Deployer.WalletName != "" {
		return errors.New("both PrivateKey and WalletName are set for Deployer")
	}
	if c.Prometheus.Enabled && c.Prometheus.Address == "" {
		return errors.New("prometheus service is enabled, but no Address is set")
	}
	if c.Pprof.Enabled && c.Pprof.Address == "" {
		return errors.New("pprof service is enabled, but no Address is set")
	}
	return nil
}
