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
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/sonnet-scripts/sonnet-cli/render"
	"github.com/sonnet-scripts/sonnet-cli/services"
)

// resolveServices picks the requested selection: the --services flag wins over
// the configured init.services list. Unknown names are rejected. An empty
// result means the registry defaults.
func resolveServices(reg *services.Registry, flagValues []string, configured []string) ([]string, error) {
	requested := flagValues
	if len(requested) == 0 {
		requested = configured
	}
	if unknown := reg.Unknown(requested); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", errUnknownService, strings.Join(unknown, ", "))
	}
	return requested, nil
}

// confirmDefault is the pre-filled answer for an optional service in the
// interactive flow. Services passed with --services are pre-checked. Without
// them it is yes for members of the default selection and no otherwise.
func confirmDefault(reg *services.Registry, name string, preselected []string) bool {
	if len(preselected) > 0 {
		return slices.Contains(preselected, name)
	}
	return reg.IsDefault(name)
}

func confirmDescription(def services.ServiceDefinition) string {
	ports := def.HostPorts()
	if len(ports) == 0 {
		return def.Description
	}
	return fmt.Sprintf("%s (port %d)", def.Description, ports[0])
}

// selectServices asks about every optional service. Required services are always included.
func selectServices(reg *services.Registry, preselected []string) ([]string, error) {
	selection := []string{}
	for _, name := range reg.Required() {
		def, _ := reg.Lookup(name)
		render.Info("%s (%s) is always included", name, def.Description)
		selection = append(selection, name)
	}

	for _, def := range reg.Definitions() {
		if def.Required {
			continue
		}
		include := confirmDefault(reg, def.Name, preselected)
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Include %s?", def.Name)).
			Description(confirmDescription(def)).
			Affirmative("Yes").
			Negative("No").
			Value(&include).
			Run()
		if err != nil {
			return nil, err
		}
		if include {
			selection = append(selection, def.Name)
		}
	}
	return selection, nil
}
