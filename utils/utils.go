package utils

import (
	"bytes"
	"ens-api/config"
	"ens-api/types"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ReadConfig will process a configuration. An empty path loads the embedded default config.
// Values of the form projects/<p>/secrets/<s>/versions/<v> are replaced by the secret's payload.
func ReadConfig(cfg *types.Config, path string) error {
	var err error
	if path == "" {
		err = readConfigBytes(cfg, []byte(config.DefaultConfigYml), "default")
	} else {
		err = readConfigFile(cfg, path)
	}
	if err != nil {
		return err
	}

	err = readConfigEnv(cfg)
	if err != nil {
		return err
	}

	err = readConfigSecrets(cfg)
	if err != nil {
		return err
	}

	if cfg.LogLevel != "" {
		lvl, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %v: %w", cfg.LogLevel, err)
		}
		logrus.SetLevel(lvl)
	}
	return nil
}

func readConfigFile(cfg *types.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error opening config file %v: %v", path, err)
	}
	return readConfigBytes(cfg, data, path)
}

func readConfigBytes(cfg *types.Config, data []byte, source string) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	err := decoder.Decode(cfg)
	if err != nil {
		return fmt.Errorf("error decoding config file %v: %v", source, err)
	}
	return nil
}

func readConfigEnv(cfg *types.Config) error {
	return envconfig.Process("", cfg)
}

// WaitForCtrlC will block/wait until a control-c or a SIGTERM is received
func WaitForCtrlC() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
