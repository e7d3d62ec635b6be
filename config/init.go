package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"
)

// Init writes the config file at Path. With an empty sourcePath the
// defaults are written; otherwise sourcePath is copied over them. A
// missing auth secret is generated.
func Init(sourcePath string) error {
	conf := defaultConfig()
	if sourcePath != "" {
		var err error
		conf, err = readConfigFile(sourcePath)
		if err != nil {
			return err
		}
	}
	if conf.Auth.Secret == "" {
		conf.Auth.Secret = uuid.New().String()
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	return writeConfigFile(configPath, conf)
}

// readConfigFile reads the config from `filename` over the defaults.
func readConfigFile(filename string) (*Config, error) {
	conf := defaultConfig()

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(conf); err != nil {
		return nil, fmt.Errorf("failure to decode config: %s", err)
	}
	return conf, nil
}

// writeConfigFile writes `cfg` into `path`, replacing any existing file.
func writeConfigFile(path string, cfg *Config) error {
	err := os.MkdirAll(filepath.Dir(path), 0775)
	if err != nil {
		return err
	}

	if fileExists(path) {
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return encode(f, cfg)
}

// encode configuration with YAML
func encode(w io.Writer, value interface{}) error {
	buf, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

func fileExists(filename string) bool {
	fi, err := os.Lstat(filename)
	if fi != nil || (err != nil && !os.IsNotExist(err)) {
		return true
	}
	return false
}
