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
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"github.com/sonnet-scripts/sonnet-cli/checks"
	"github.com/sonnet-scripts/sonnet-cli/render"
	"github.com/sonnet-scripts/sonnet-cli/services"
	"github.com/sonnet-scripts/sonnet-cli/stack"
	"github.com/spf13/cobra"
)

var upProjectDir string

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start all services of a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}

		var res *stack.UpResult
		action := func() {
			res, err = mgr.Up(cmd.Context(), upProjectDir)
		}
		if interactiveUI() {
			if spinErr := spinner.New().Title("Starting services...").Action(action).Run(); spinErr != nil {
				return spinErr
			}
		} else {
			render.GetLogger(log.Options{Prefix: "Up"}).Info("Starting services")
			action()
		}
		if err != nil {
			return err
		}

		if res.ManifestErr != nil {
			render.GetLogger(log.Options{Prefix: "Manifest"}).Warn("Could not read services from docker-compose.yml", "err", res.ManifestErr)
		}
		if len(res.MissingImages) > 0 {
			render.WarningBox("Missing images", checks.BuildInstructions(mgr.Registry, res.MissingImages))
		}

		render.Success("Services started")
		for _, name := range res.ServicesStarted {
			fmt.Printf("  - %s\n", name)
		}
		render.ConnectionInfo(endpointsFor(mgr, res.ServicesStarted))
		return nil
	},
}

// endpointsFor returns the connection info of the given services, in catalog order.
func endpointsFor(mgr *stack.Manager, names []string) []services.Endpoint {
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	out := []services.Endpoint{}
	for _, e := range mgr.Registry.ConnectionInfo() {
		if want[e.Service] {
			out = append(out, e)
		}
	}
	return out
}

func init() {
	upCmd.Flags().StringVarP(&upProjectDir, "project-dir", "d", ".", "Project directory")
}
