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
package stack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/compose-spec/compose-go/v2/cli"
	"github.com/sonnet-scripts/sonnet-cli/templates"
	"gopkg.in/yaml.v3"
)

// ReadServiceNames extracts the service names declared in a project's
// manifest, sorted, including services behind a profile. The compose loader
// is tried first; a raw YAML read is the fallback for files it rejects.
func ReadServiceNames(ctx context.Context, dir string) ([]string, error) {
	path := filepath.Join(dir, templates.ManifestFile)

	opts, err := cli.NewProjectOptions(
		[]string{path},
		cli.WithWorkingDirectory(dir),
		cli.WithDotEnv,
		cli.WithInterpolation(false),
		cli.WithProfiles([]string{"*"}),
	)
	if err == nil {
		project, loadErr := cli.ProjectFromOptions(ctx, opts)
		if loadErr == nil {
			names := append(project.ServiceNames(), project.DisabledServiceNames()...)
			sort.Strings(names)
			return names, nil
		}
	}

	return readServiceNamesFallback(path)
}

func readServiceNamesFallback(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yaml parse: %s is not a mapping", path)
	}

	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "services" {
			continue
		}
		servicesNode := root.Content[i+1]
		if servicesNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("yaml parse: services is not a mapping")
		}
		names := []string{}
		for j := 0; j+1 < len(servicesNode.Content); j += 2 {
			names = append(names, servicesNode.Content[j].Value)
		}
		sort.Strings(names)
		return names, nil
	}
	return []string{}, nil
}
