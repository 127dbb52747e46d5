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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sonnet-scripts/sonnet-cli/checks"
	"github.com/sonnet-scripts/sonnet-cli/render"
	"github.com/sonnet-scripts/sonnet-cli/stack"
	"github.com/sonnet-scripts/sonnet-cli/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultProjectName = "sonnet-project"

var errNoTTY = errors.New("interactive mode needs a terminal")

var (
	targetDir     string
	interactive   bool
	force         bool
	serviceValues []string
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a new data stack project",
	Long: `Create a new project directory with a docker-compose.yml, .env, README and database bootstrap script.

Without --services the project gets the default services. With --interactive you
are asked about every optional service, with the --services ones pre-checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if interactive && !utils.IsInteractive() {
			return errNoTTY
		}
		mgr, err := newManager()
		if err != nil {
			return err
		}
		if interactiveUI() {
			render.RenderSonnetBig()
		}

		name := defaultProjectName
		if len(args) > 0 {
			name = args[0]
		} else if interactive {
			name, err = render.AskText("Project name", defaultProjectName, "directory created under the target dir", stack.ValidateName)
			if err != nil {
				return err
			}
		}

		flagServices := utils.SplitList(serviceValues)
		requested, err := resolveServices(mgr.Registry, flagServices, utils.LoadConfig(viper.GetViper()).InitServices)
		if err != nil {
			return err
		}
		if interactive {
			if requested, err = selectServices(mgr.Registry, flagServices); err != nil {
				return err
			}
		}

		target := targetDir
		if target == "" {
			if target, err = os.Getwd(); err != nil {
				return err
			}
		}

		opts := stack.CreateOptions{
			Name:      name,
			TargetDir: target,
			Services:  requested,
			Force:     force,
		}

		var res *stack.CreateResult
		if interactiveUI() {
			res, err = createWithProgress(cmd.Context(), mgr, opts)
		} else {
			res, err = createPlain(cmd.Context(), mgr, opts)
		}
		if err != nil {
			return err
		}

		printCreateSummary(mgr, res)
		return nil
	},
}

func createPlain(ctx context.Context, mgr *stack.Manager, opts stack.CreateOptions) (*stack.CreateResult, error) {
	logger := render.GetLogger(log.Options{Prefix: "Init"})
	opts.OnStep = func(s stack.Step) {
		switch s {
		case stack.StepRuntime:
			logger.Info("Checking container runtime")
		case stack.StepPreflight:
			logger.Info("Checking images and ports")
		case stack.StepWrite:
			logger.Info("Writing project files")
		}
	}
	return mgr.Create(ctx, opts)
}

func createWithProgress(ctx context.Context, mgr *stack.Manager, opts stack.CreateOptions) (*stack.CreateResult, error) {
	steps := []render.Step{
		render.NewStep("Checking container runtime", "Container runtime is running"),
		render.NewStep("Checking images and ports", "Pre-flight checks done"),
		render.NewStep("Writing project files", "Project files written"),
	}
	p := tea.NewProgram(render.NewProgressModel(fmt.Sprintf("Creating %s 🎼", opts.Name), steps))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var res *stack.CreateResult
	var createErr error
	done := make(chan struct{})

	opts.OnStep = func(s stack.Step) {
		if s != stack.StepRuntime {
			p.Send(render.AdvanceMsg{})
		}
	}

	go func() {
		defer close(done)
		start := time.Now()
		res, createErr = mgr.Create(ctx, opts)
		if createErr != nil {
			msg, _ := describeError(createErr)
			p.Send(render.FailedMsg{Reason: msg})
			return
		}
		p.Send(render.FinishedMsg{Elapsed: time.Since(start), Summary: "Project created"})
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return nil, err
	}
	if m, ok := final.(render.ProgressModel); ok && m.Cancelled() {
		cancel()
	}
	<-done
	return res, createErr
}

func printCreateSummary(mgr *stack.Manager, res *stack.CreateResult) {
	if res.ImageErr != nil {
		render.GetLogger(log.Options{Prefix: "Images"}).Warn("Could not list local images", "err", res.ImageErr)
	}
	if len(res.MissingImages) > 0 {
		render.WarningBox("Missing images", checks.BuildInstructions(mgr.Registry, res.MissingImages))
	}
	if len(res.PortConflicts) > 0 {
		render.WarningBox("Port conflicts", checks.PortConflictMessage(res.PortConflicts))
	}

	render.Success("Created project at %s", res.ProjectPath)
	render.Header("Services:")
	for _, name := range res.Services {
		def, _ := mgr.Registry.Lookup(name)
		fmt.Printf("  - %s: %s\n", name, def.Description)
	}

	render.Header("Next steps:")
	rel := res.ProjectPath
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, res.ProjectPath); err == nil {
			rel = r
		}
	}
	fmt.Printf("  cd %s\n", rel)
	fmt.Println("  sonnet up")

	render.ConnectionInfo(endpointsFor(mgr, res.Services))
}

func init() {
	initCmd.Flags().StringVarP(&targetDir, "target-dir", "d", "", "Directory to create the project in (default: current directory)")
	initCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Choose services interactively")
	initCmd.Flags().BoolVar(&force, "force", false, "Replace an existing sonnet project directory")
	initCmd.Flags().StringSliceVar(&serviceValues, "services", nil, "Comma separated services to include (see 'sonnet services')")
}
