package config

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. COSSDK_ENDPOINT.
const EnvPrefix = "COSSDK"

const DefaultConfigTemplate = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

DataDir = {{ printf "%q" .DataDir }}

Endpoint = {{ printf "%q" .Endpoint }}
ChainID = {{ .ChainID }}
HTTPTimeout = "{{ .HTTPTimeout }}"

ModulePath = {{ printf "%q" .ModulePath }}
ScryptN = {{ .ScryptN }}
ScryptP = {{ .ScryptP }}

LogDir = {{ printf "%q" .LogDir }}
LogLevel = {{ printf "%q" .LogLevel }}
LogAge = {{ .LogAge }}

[Headers]
{{ range $k, $v := .Headers }}{{ $k }} = {{ printf "%q" $v }}
{{ end }}`

var configTemplate = template.Must(template.New("configFileTemplate").Parse(DefaultConfigTemplate))

func WriteConfigFile(configDirPath string, configName string, cfg *Config, mode os.FileMode) error {
	var buffer bytes.Buffer
	if err := configTemplate.Execute(&buffer, cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(configDirPath, 0700); err != nil {
		return err
	}
	configPath := filepath.Join(configDirPath, configName)
	return ioutil.WriteFile(configPath, buffer.Bytes(), mode)
}

// LoadConfig reads <dir>/config.toml over the defaults, a missing file is not
// an error. COSSDK_* environment variables override both.
func LoadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()
	if dir != "" {
		cfg.DataDir = dir
	}

	v := viper.New()
	v.SetConfigName(DefaultConfigName)
	v.SetConfigType("toml")
	v.AddConfigPath(cfg.DataDir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config")
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("DataDir", cfg.DataDir)
	v.SetDefault("Endpoint", cfg.Endpoint)
	v.SetDefault("ChainID", cfg.ChainID)
	v.SetDefault("HTTPTimeout", cfg.HTTPTimeout)
	v.SetDefault("Headers", cfg.Headers)
	v.SetDefault("ModulePath", cfg.ModulePath)
	v.SetDefault("ScryptN", cfg.ScryptN)
	v.SetDefault("ScryptP", cfg.ScryptP)
	v.SetDefault("LogDir", cfg.LogDir)
	v.SetDefault("LogLevel", cfg.LogLevel)
	v.SetDefault("LogAge", cfg.LogAge)
}
