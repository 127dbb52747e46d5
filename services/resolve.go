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
package services

// Resolve computes the dependency edges for a selection. Each selected service
// maps to the subset of its declared dependencies that is also selected, kept in
// declaration order. Services left with no dependency are omitted from the map.
// Unknown names contribute nothing.
func (r *Registry) Resolve(selection []string) map[string][]string {
	selected := make(map[string]bool, len(selection))
	for _, name := range selection {
		selected[name] = true
	}

	edges := map[string][]string{}
	for _, name := range selection {
		def, ok := r.Lookup(name)
		if !ok {
			continue
		}
		deps := []string{}
		for _, dep := range def.DependsOn {
			if selected[dep] {
				deps = append(deps, dep)
			}
		}
		if len(deps) > 0 {
			edges[name] = deps
		}
	}
	return edges
}
