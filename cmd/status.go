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

	"github.com/charmbracelet/log"
	"github.com/sonnet-scripts/sonnet-cli/render"
	"github.com/spf13/cobra"
)

var statusProjectDir string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of a project's services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}

		res, err := mgr.Status(cmd.Context(), statusProjectDir)
		if err != nil {
			return err
		}

		if res.ParseErr != nil {
			render.GetLogger(log.Options{Prefix: "Status"}).Debug("Could not read container status", "err", res.ParseErr)
		}

		if len(res.Services) == 0 {
			render.Info("No services are running. Start them with 'sonnet up'.")
			return nil
		}

		render.Header("Services:")
		fmt.Println(render.StatusTable(res.Services))

		if res.Running() > 0 {
			render.ConnectionInfo(res.ConnectionInfo)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusProjectDir, "project-dir", "d", ".", "Project directory")
}
