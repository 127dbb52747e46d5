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
package checks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sonnet-scripts/sonnet-cli/services"
)

// BuildInstructions explains how to build the images of the missing local
// services. It returns "" when nothing is missing.
func BuildInstructions(reg *services.Registry, missing []string) string {
	if len(missing) == 0 {
		return ""
	}

	lines := []string{
		"",
		"The following services require locally-built images that were not found:",
	}
	for _, name := range missing {
		image := name
		if def, ok := reg.Lookup(name); ok {
			image = def.Image
		}
		lines = append(lines, fmt.Sprintf("  - %s (image: %s)", name, image))
	}
	lines = append(lines,
		"",
		"To build these images, run the following in the sonnet-scripts repository:",
		"",
		"    cd /path/to/sonnet-scripts",
		"    make setup",
		"",
		"This will build all required base images (linuxbase -> pythonbase -> services).",
	)
	return strings.Join(lines, "\n")
}

// PortConflictMessage lists every busy port and how to resolve it. Services
// are listed in name order since map order is random.
func PortConflictMessage(conflicts map[string][]int) string {
	if len(conflicts) == 0 {
		return ""
	}

	names := make([]string, 0, len(conflicts))
	for name := range conflicts {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := []string{"Port conflicts detected:", ""}
	for _, name := range names {
		for _, port := range conflicts[name] {
			lines = append(lines, fmt.Sprintf("  - Port %d (%s) is already in use", port, name))
		}
	}
	lines = append(lines,
		"",
		"To resolve:",
		"  1. Stop the application using these ports, OR",
		"  2. Edit the generated docker-compose.yml to use different ports",
	)
	return strings.Join(lines, "\n")
}
