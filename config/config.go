package config

import (
	"os"
	"path/filepath"

	"github.com/commonpot/commonpot-go-node/cmd/utils"
)

const (
	// LogFormatPlain is a format for colored text
	LogFormatPlain = "plain"
	// LogFormatJSON is a format for json output
	LogFormatJSON = "json"

	defaultConfigDir = "config"
	defaultDataDir   = "data"

	defaultConfigFileName  = "config.toml"
	defaultGenesisJSONName = "genesis.json"
)

var (
	defaultConfigFilePath  = filepath.Join(defaultConfigDir, defaultConfigFileName)
	defaultGenesisJSONPath = filepath.Join(defaultConfigDir, defaultGenesisJSONName)
)

// Config defines the top level configuration for a commonpot node
type Config struct {
	BaseConfig `mapstructure:",squash"`
}

// BaseConfig defines the base configuration for a commonpot node
type BaseConfig struct {
	// The root directory for all data.
	// This should be set in viper so it can unmarshal into this struct
	RootDir string `mapstructure:"home"`

	// Path to the JSON file containing the initial app state
	Genesis string `mapstructure:"genesis_file"`

	// A custom human readable name for this node
	Moniker string `mapstructure:"moniker"`

	// Output level for logging
	LogLevel string `mapstructure:"log_level"`

	// Output format: 'plain' (colored text) or 'json'
	LogFormat string `mapstructure:"log_format"`

	// Path to file for logs, "stdout" by default
	LogPath string `mapstructure:"log_path"`

	// Database backend: goleveldb | memdb
	DBBackend string `mapstructure:"db_backend"`

	// Database directory
	DBPath string `mapstructure:"db_dir"`

	// TCP or UNIX socket address for the ABCI server to listen on
	ABCIListenAddress string `mapstructure:"abci_listen_addr"`

	// Address to listen for API connections
	APIListenAddress string `mapstructure:"api_listen_addr"`

	// Sets node to be in validator mode. Disables API and events
	ValidatorMode bool `mapstructure:"validator_mode"`

	KeepLastStates int64 `mapstructure:"keep_last_states"`

	StateCacheSize int `mapstructure:"state_cache_size"`

	HaltHeight int `mapstructure:"halt_height"`
}

// DefaultConfig returns a default configuration for a commonpot node
func DefaultConfig() *Config {
	return &Config{
		BaseConfig: BaseConfig{
			Genesis:           defaultGenesisJSONPath,
			Moniker:           defaultMoniker,
			LogLevel:          "info",
			LogFormat:         LogFormatPlain,
			LogPath:           "stdout",
			DBBackend:         "goleveldb",
			DBPath:            defaultDataDir,
			ABCIListenAddress: "tcp://0.0.0.0:26658",
			APIListenAddress:  ":8841",
			ValidatorMode:     false,
			KeepLastStates:    120,
			StateCacheSize:    1000000,
		},
	}
}

func GetConfig() *Config {
	cfg := DefaultConfig()

	cfg.SetRoot(utils.GetCommonPotHome())
	EnsureRoot(utils.GetCommonPotHome())

	return cfg
}

// SetRoot sets the RootDir for all Config structs
func (cfg *Config) SetRoot(root string) *Config {
	cfg.BaseConfig.RootDir = root
	return cfg
}

// GenesisFile returns the full path to the genesis.json file
func (cfg BaseConfig) GenesisFile() string {
	return rootify(cfg.Genesis, cfg.RootDir)
}

// DBDir returns the full path to the database directory
func (cfg BaseConfig) DBDir() string {
	return rootify(cfg.DBPath, cfg.RootDir)
}

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

var defaultMoniker = getDefaultMoniker()

// getDefaultMoniker returns a default moniker, which is the host name. If runtime
// fails to get the host name, "anonymous" will be returned.
func getDefaultMoniker() string {
	moniker, err := os.Hostname()
	if err != nil {
		moniker = "anonymous"
	}
	return moniker
}
