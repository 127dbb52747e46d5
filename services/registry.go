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

// Package services holds the catalog of containers a project can be built from,
// and the dependency edges between them.
package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/docker/go-connections/nat"
)

// Provenance tells where a service image comes from.
type Provenance string

const (
	// Prebuilt images are pulled from a registry by the runtime on demand.
	Prebuilt Provenance = "prebuilt"
	// Local images are produced by an external build pipeline and are only ever discovered here.
	Local Provenance = "local"
)

type PortMapping struct {
	Host      int
	Container int
}

func (p PortMapping) String() string {
	return fmt.Sprintf("%d:%d", p.Host, p.Container)
}

type EnvVar struct {
	Key   string
	Value string
}

type HealthCheck struct {
	Test    []string
	Retries int
}

// ServiceDefinition describes one container of the stack. Definitions are
// declared once in the catalog and never mutated afterwards.
type ServiceDefinition struct {
	Name                string
	Image               string
	Provenance          Provenance
	Ports               []PortMapping
	Required            bool
	DependsOn           []string
	Environment         []EnvVar
	Volumes             []string
	Command             []string
	HealthCheck         *HealthCheck
	Description         string
	ConnectionString    string
	URL                 string
	RequiresConfigFiles bool
}

func (s ServiceDefinition) clone() ServiceDefinition {
	c := s
	c.Ports = slices.Clone(s.Ports)
	c.DependsOn = slices.Clone(s.DependsOn)
	c.Environment = slices.Clone(s.Environment)
	c.Volumes = slices.Clone(s.Volumes)
	c.Command = slices.Clone(s.Command)
	if s.HealthCheck != nil {
		hc := *s.HealthCheck
		hc.Test = slices.Clone(s.HealthCheck.Test)
		c.HealthCheck = &hc
	}
	return c
}

// HostPorts returns the host side of every port mapping, in declaration order.
func (s ServiceDefinition) HostPorts() []int {
	ports := make([]int, 0, len(s.Ports))
	for _, p := range s.Ports {
		ports = append(ports, p.Host)
	}
	return ports
}

// Endpoint returns the connection string when one is declared, otherwise the URL.
func (s ServiceDefinition) Endpoint() string {
	if s.ConnectionString != "" {
		return s.ConnectionString
	}
	return s.URL
}

// NamedVolumes returns the volume names referenced by the service's mounts.
// Bind mounts (sources starting with "." or "/") are skipped.
func (s ServiceDefinition) NamedVolumes() []string {
	names := []string{}
	for _, v := range s.Volumes {
		source, _, found := strings.Cut(v, ":")
		if !found || source == "" {
			continue
		}
		if strings.HasPrefix(source, ".") || strings.HasPrefix(source, "/") {
			continue
		}
		names = append(names, source)
	}
	return names
}

type Endpoint struct {
	Service string
	Address string
}

// Registry is an ordered, read-only catalog of service definitions.
type Registry struct {
	defs     []ServiceDefinition
	index    map[string]int
	defaults []string
}

// NewRegistry builds a registry from definitions in declaration order. The
// defaults list is the selection used when the caller does not pick services.
func NewRegistry(defs []ServiceDefinition, defaults []string) *Registry {
	r := &Registry{
		defs:     make([]ServiceDefinition, 0, len(defs)),
		index:    make(map[string]int, len(defs)),
		defaults: append([]string(nil), defaults...),
	}
	for _, d := range defs {
		if _, dup := r.index[d.Name]; dup {
			continue
		}
		r.index[d.Name] = len(r.defs)
		r.defs = append(r.defs, d.clone())
	}
	return r
}

// Lookup returns a copy of the named definition.
func (r *Registry) Lookup(name string) (ServiceDefinition, bool) {
	i, ok := r.index[name]
	if !ok {
		return ServiceDefinition{}, false
	}
	return r.defs[i].clone(), true
}

func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Names lists every service in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for _, d := range r.defs {
		names = append(names, d.Name)
	}
	return names
}

func (r *Registry) Definitions() []ServiceDefinition {
	defs := make([]ServiceDefinition, 0, len(r.defs))
	for _, d := range r.defs {
		defs = append(defs, d.clone())
	}
	return defs
}

func (r *Registry) ByProvenance(kind Provenance) []string {
	names := []string{}
	for _, d := range r.defs {
		if d.Provenance == kind {
			names = append(names, d.Name)
		}
	}
	return names
}

func (r *Registry) Defaults() []string {
	return append([]string(nil), r.defaults...)
}

func (r *Registry) IsDefault(name string) bool {
	for _, d := range r.defaults {
		if d == name {
			return true
		}
	}
	return false
}

func (r *Registry) Required() []string {
	names := []string{}
	for _, d := range r.defs {
		if d.Required {
			names = append(names, d.Name)
		}
	}
	return names
}

// ConnectionInfo returns an endpoint for every service that declares a
// connection string or URL, in declaration order.
func (r *Registry) ConnectionInfo() []Endpoint {
	endpoints := []Endpoint{}
	for _, d := range r.defs {
		if addr := d.Endpoint(); addr != "" {
			endpoints = append(endpoints, Endpoint{Service: d.Name, Address: addr})
		}
	}
	return endpoints
}

// Normalize turns a requested list into a selection: unknown names are dropped,
// duplicates removed and required services prepended when absent.
func (r *Registry) Normalize(requested []string) []string {
	seen := map[string]bool{}
	selection := []string{}
	add := func(name string) {
		if seen[name] || !r.Has(name) {
			return
		}
		seen[name] = true
		selection = append(selection, name)
	}
	for _, name := range r.Required() {
		add(name)
	}
	for _, name := range requested {
		add(strings.TrimSpace(name))
	}
	return selection
}

// Unknown returns the requested names that are not in the registry.
func (r *Registry) Unknown(requested []string) []string {
	unknown := []string{}
	for _, name := range requested {
		if !r.Has(strings.TrimSpace(name)) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// Validate checks the catalog for dangling dependencies, malformed port
// mappings and defaults that point nowhere.
func (r *Registry) Validate() error {
	var errs []error
	for _, d := range r.defs {
		if d.Image == "" {
			errs = append(errs, fmt.Errorf("service %q has no image", d.Name))
		}
		if d.Provenance != Prebuilt && d.Provenance != Local {
			errs = append(errs, fmt.Errorf("service %q has unknown provenance %q", d.Name, d.Provenance))
		}
		for _, dep := range d.DependsOn {
			if !r.Has(dep) {
				errs = append(errs, fmt.Errorf("service %q depends on unknown service %q", d.Name, dep))
			}
			if dep == d.Name {
				errs = append(errs, fmt.Errorf("service %q depends on itself", d.Name))
			}
		}
		for _, p := range d.Ports {
			if _, err := nat.ParsePortSpec(p.String()); err != nil {
				errs = append(errs, fmt.Errorf("service %q: invalid port mapping %s: %w", d.Name, p, err))
			}
		}
	}
	for _, name := range r.defaults {
		if !r.Has(name) {
			errs = append(errs, fmt.Errorf("default service %q is not registered", name))
		}
	}
	return errors.Join(errs...)
}
