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
	"bytes"
	"fmt"
	"strings"

	"github.com/sonnet-scripts/sonnet-cli/services"
	"gopkg.in/yaml.v3"
)

type ComposeHealthCheck struct {
	Test     []string `yaml:"test"`
	Interval string   `yaml:"interval,omitempty"`
	Timeout  string   `yaml:"timeout,omitempty"`
	Retries  int      `yaml:"retries,omitempty"`
}

type ComposeService struct {
	Image       string              `yaml:"image"`
	Command     []string            `yaml:"command,omitempty"`
	Ports       []string            `yaml:"ports,omitempty"`
	Environment []string            `yaml:"environment,omitempty"`
	Volumes     []string            `yaml:"volumes,omitempty"`
	HealthCheck *ComposeHealthCheck `yaml:"healthcheck,omitempty"`
	DependsOn   []string            `yaml:"depends_on,omitempty"`
	Restart     string              `yaml:"restart,omitempty"`
}

type ComposeVolume struct {
	Driver string `yaml:"driver,omitempty"`
}

type NamedService struct {
	Name    string
	Service ComposeService
}

// ServiceList keeps services in selection order when marshalled.
type ServiceList []NamedService

func (s ServiceList) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, svc := range s {
		var value yaml.Node
		if err := value.Encode(svc.Service); err != nil {
			return nil, fmt.Errorf("encoding service %s: %w", svc.Name, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: svc.Name}, &value)
	}
	return node, nil
}

// UnmarshalYAML decodes a services mapping in document order. It only
// understands the shapes written by Manifest.
func (s *ServiceList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("services: expected a mapping, got %v", node.Tag)
	}
	list := ServiceList{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var svc ComposeService
		if err := node.Content[i+1].Decode(&svc); err != nil {
			return fmt.Errorf("decoding service %s: %w", node.Content[i].Value, err)
		}
		list = append(list, NamedService{Name: node.Content[i].Value, Service: svc})
	}
	*s = list
	return nil
}

func (s ServiceList) Names() []string {
	names := make([]string, 0, len(s))
	for _, svc := range s {
		names = append(names, svc.Name)
	}
	return names
}

func (s ServiceList) Get(name string) (ComposeService, bool) {
	for _, svc := range s {
		if svc.Name == name {
			return svc.Service, true
		}
	}
	return ComposeService{}, false
}

type ComposeFile struct {
	Name     string                   `yaml:"name,omitempty"`
	Services ServiceList              `yaml:"services"`
	Volumes  map[string]ComposeVolume `yaml:"volumes,omitempty"`
}

// Input is everything the renderers need to produce a project.
type Input struct {
	ProjectName string
	Services    []string
	Registry    *services.Registry
	Edges       map[string][]string
}

func (in Input) selected(name string) bool {
	for _, s := range in.Services {
		if s == name {
			return true
		}
	}
	return false
}

// definitions returns the registry entries of the selection, skipping unknown names.
func (in Input) definitions() []services.ServiceDefinition {
	defs := []services.ServiceDefinition{}
	for _, name := range in.Services {
		if def, ok := in.Registry.Lookup(name); ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// ComposeProjectName turns a project name into a valid compose project name.
func ComposeProjectName(name string) string {
	return strings.ToLower(name)
}

// BuildCompose assembles the compose document for the selection.
func BuildCompose(in Input) ComposeFile {
	file := ComposeFile{
		Name:     ComposeProjectName(in.ProjectName),
		Services: ServiceList{},
		Volumes:  map[string]ComposeVolume{},
	}

	for _, def := range in.definitions() {
		svc := ComposeService{
			Image:     def.Image,
			Command:   def.Command,
			Volumes:   def.Volumes,
			DependsOn: in.Edges[def.Name],
			Restart:   "unless-stopped",
		}
		for _, p := range def.Ports {
			svc.Ports = append(svc.Ports, p.String())
		}
		for _, env := range def.Environment {
			svc.Environment = append(svc.Environment, fmt.Sprintf("%s=${%s}", env.Key, env.Key))
		}
		if def.HealthCheck != nil {
			svc.HealthCheck = &ComposeHealthCheck{
				Test:     def.HealthCheck.Test,
				Interval: "10s",
				Timeout:  "5s",
				Retries:  def.HealthCheck.Retries,
			}
		}
		for _, v := range def.NamedVolumes() {
			file.Volumes[v] = ComposeVolume{}
		}
		file.Services = append(file.Services, NamedService{Name: def.Name, Service: svc})
	}

	return file
}

// Manifest renders docker-compose.yml.
func Manifest(in Input) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(BuildCompose(in)); err != nil {
		return nil, fmt.Errorf("encoding compose file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
