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
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/sonnet-scripts/sonnet-cli/engine"
	"github.com/sonnet-scripts/sonnet-cli/render"
	"github.com/sonnet-scripts/sonnet-cli/services"
	"github.com/sonnet-scripts/sonnet-cli/stack"
	"github.com/sonnet-scripts/sonnet-cli/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "sonnet",
	Version:       version,
	Short:         "Create and manage local Modern Data Stack environments.",
	Long:          `Sonnet scaffolds a docker compose project with PostgreSQL + DuckDB, admin UIs, object storage and data tooling, then starts, stops and inspects it for you.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := utils.ViperInit(viper.GetViper(), cfgFile); err != nil {
			return err
		}
		level := viper.GetString("log.level")
		if verbose {
			level = "debug"
		}
		return render.SetLogLevel(level)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

// newManager builds a stack manager from the loaded configuration. Tests replace it.
var newManager = func() (*stack.Manager, error) {
	cfg := utils.LoadConfig(viper.GetViper())

	eng, err := engine.New(engine.Options{Driver: cfg.Runtime.Driver, Binary: cfg.Runtime.Binary})
	if err != nil {
		return nil, err
	}

	reg := services.Default()
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("service catalog: %w", err)
	}

	mgr := stack.NewManager(eng, reg)
	mgr.Logger = render.GetLogger(log.Options{Prefix: "Stack"})
	mgr.Validator.Logger = render.GetLogger(log.Options{Prefix: "Preflight"})
	mgr.Validator.ProbeTimeout = cfg.Runtime.ProbeTimeout
	mgr.Validator.PortHost = cfg.Ports.Host
	mgr.Validator.PortTimeout = cfg.Ports.Timeout
	return mgr, nil
}

// interactiveUI is false when output is piped or ui.plain is set.
func interactiveUI() bool {
	return !viper.GetBool("ui.plain") && utils.IsInteractive()
}

func init() {
	rootCmd.SetVersionTemplate(`{{println .Version}}`)
	rootCmd.Flags().BoolP("version", "v", false, "Show the version and exit")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/sonnet/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Show debug output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(servicesCmd)
}
