package config

import (
	"path/filepath"
	"time"

	"github.com/coschain/cos-sdk-go/common/constants"
	"github.com/coschain/cos-sdk-go/mylog"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

const (
	DefaultConfigName = "config"
	DefaultLogAge     = 7

	// DefaultHTTPTimeout of zero leaves deadlines to the caller's context.
	DefaultHTTPTimeout time.Duration = 0
)

type Config struct {
	DataDir string

	// Endpoint is the JSON-RPC URL of the node.
	Endpoint    string
	ChainID     int64
	HTTPTimeout time.Duration
	Headers     map[string]string

	// ModulePath is a crypto plugin, empty selects the built-in module.
	ModulePath string
	ScryptN    int
	ScryptP    int

	// LogDir empty disables the rotating log file.
	LogDir   string
	LogLevel string
	LogAge   uint32
}

// DefaultConfig contains reasonable default settings.
func DefaultConfig() *Config {
	dataDir := DefaultDataDir()
	logDir := ""
	if dataDir != "" {
		logDir = filepath.Join(dataDir, "logs")
	}
	return &Config{
		DataDir:     dataDir,
		Endpoint:    constants.DefaultEndpoint,
		ChainID:     constants.DefaultChainID,
		HTTPTimeout: DefaultHTTPTimeout,
		Headers:     map[string]string{},
		ScryptN:     constants.StandardScryptN,
		ScryptP:     constants.StandardScryptP,
		LogDir:      logDir,
		LogLevel:    mylog.InfoLevel,
		LogAge:      DefaultLogAge,
	}
}

func DefaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".cossdk")
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("config: empty endpoint")
	}
	if c.ChainID <= 0 {
		return errors.Errorf("config: chain id %d must be positive", c.ChainID)
	}
	if c.ScryptN <= 1 || c.ScryptN&(c.ScryptN-1) != 0 {
		return errors.Errorf("config: scrypt N %d must be a power of two", c.ScryptN)
	}
	if c.ScryptP <= 0 {
		return errors.Errorf("config: scrypt P %d must be positive", c.ScryptP)
	}
	if c.HTTPTimeout < 0 {
		return errors.New("config: negative http timeout")
	}
	return nil
}
