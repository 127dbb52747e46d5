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
	"github.com/sonnet-scripts/sonnet-cli/render"
	"github.com/sonnet-scripts/sonnet-cli/stack"
	"github.com/spf13/cobra"
)

var downProjectDir string

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop all services of a project",
	Long:  "Stop and remove the project's containers. Data stays in the named volumes.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}

		var res *stack.DownResult
		action := func() {
			res, err = mgr.Down(cmd.Context(), downProjectDir)
		}
		if interactiveUI() {
			if spinErr := spinner.New().Title("Stopping services...").Action(action).Run(); spinErr != nil {
				return spinErr
			}
		} else {
			render.GetLogger(log.Options{Prefix: "Down"}).Info("Stopping services")
			action()
		}
		if err != nil {
			return err
		}

		render.Success("Services stopped")
		for _, name := range res.ServicesStopped {
			fmt.Printf("  - %s\n", name)
		}
		render.Hint("Data is preserved in volumes. To remove volumes: docker compose down -v")
		return nil
	},
}

func init() {
	downCmd.Flags().StringVarP(&downProjectDir, "project-dir", "d", ".", "Project directory")
}
