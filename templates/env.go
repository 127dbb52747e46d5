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
package templates

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
)

// Env renders the .env file with one block per selected service that
// declares environment variables.
func Env(in Input) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Environment for %s\n", in.ProjectName)
	fmt.Fprintf(&b, "# Development credentials only, do not reuse in production.\n")

	for _, def := range in.definitions() {
		if len(def.Environment) == 0 {
			continue
		}
		vars := make(map[string]string, len(def.Environment))
		for _, env := range def.Environment {
			vars[env.Key] = env.Value
		}
		block, err := godotenv.Marshal(vars)
		if err != nil {
			return nil, fmt.Errorf("marshalling env for %s: %w", def.Name, err)
		}
		fmt.Fprintf(&b, "\n# %s\n%s\n", def.Name, block)
	}

	return []byte(b.String()), nil
}
