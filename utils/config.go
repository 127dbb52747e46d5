/*
Copyright © 2024 Mahmoud Mousa <m.mousa@hey.com>

Licensed under the GNU GPL License, Version 3.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
https://www.gnu.org/licenses/gpl-3.0.en.html

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type RuntimeConfig struct {
	Binary       string
	Driver       string
	ProbeTimeout time.Duration
}

type PortsConfig struct {
	Host    string
	Timeout time.Duration
}

type Config struct {
	Runtime      RuntimeConfig
	Ports        PortsConfig
	LogLevel     string
	InitServices []string
	Plain        bool
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("runtime.binary", "docker")
	v.SetDefault("runtime.driver", "cli")
	v.SetDefault("runtime.probe_timeout", 10*time.Second)
	v.SetDefault("ports.host", "127.0.0.1")
	v.SetDefault("ports.timeout", time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("init.services", []string{})
	v.SetDefault("ui.plain", false)
}

// ConfigDir is where the user config file lives.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sonnet"), nil
}

// ViperInit wires defaults, SONNET_* env vars and the config file into v.
// An explicit configFile must exist; the default one is optional.
func ViperInit(v *viper.Viper, configFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix("sonnet")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", configFile, err)
		}
		return nil
	}

	if dir, err := ConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.SetConfigType("yaml")
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func LoadConfig(v *viper.Viper) Config {
	return Config{
		Runtime: RuntimeConfig{
			Binary:       v.GetString("runtime.binary"),
			Driver:       v.GetString("runtime.driver"),
			ProbeTimeout: v.GetDuration("runtime.probe_timeout"),
		},
		Ports: PortsConfig{
			Host:    v.GetString("ports.host"),
			Timeout: v.GetDuration("ports.timeout"),
		},
		LogLevel:     v.GetString("log.level"),
		InitServices: SplitList(v.GetStringSlice("init.services")),
		Plain:        v.GetBool("ui.plain"),
	}
}
