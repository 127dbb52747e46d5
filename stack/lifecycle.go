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
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sonnet-scripts/sonnet-cli/services"
)

type UpResult struct {
	ProjectPath     string
	ServicesStarted []string
	MissingImages   []string
	// ManifestErr is set when the service list could not be read from the
	// manifest. The stack is still started.
	ManifestErr error
	ImageErr    error
}

type DownResult struct {
	ProjectPath     string
	ServicesStopped []string
	ManifestErr     error
}

type ServiceState struct {
	Name    string
	Service string
	State   string
	Health  string
	Ports   string
}

type StatusResult struct {
	ProjectPath    string
	Services       []ServiceState
	ConnectionInfo []services.Endpoint
	// ParseErr is set when the process listing failed or could not be
	// decoded. Services is empty in that case.
	ParseErr error
}

func (r *StatusResult) Running() int {
	n := 0
	for _, s := range r.Services {
		if s.State == "running" {
			n++
		}
	}
	return n
}

func (m *Manager) projectDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving project path: %w", err)
	}
	if !IsProject(abs) {
		return "", ErrNotAProject
	}
	return abs, nil
}

func (m *Manager) serviceNames(ctx context.Context, dir string) ([]string, error) {
	names, err := ReadServiceNames(ctx, dir)
	if err != nil {
		m.logger().Warn("could not read services from manifest", "err", err)
		return []string{}, err
	}
	return names, nil
}

// Up brings the project's services up in the background.
func (m *Manager) Up(ctx context.Context, dir string) (*UpResult, error) {
	dir, err := m.projectDir(dir)
	if err != nil {
		return nil, err
	}
	if !m.Validator.RuntimeAvailable(ctx) {
		return nil, ErrRuntimeUnavailable
	}

	names, manifestErr := m.serviceNames(ctx, dir)
	_, missing, imageErr := m.Validator.CheckImages(ctx, names)

	res, err := m.Engine.Compose(ctx, dir, "up", "-d")
	if err != nil || !res.Success() {
		return nil, newComposeError("up", res, err)
	}

	return &UpResult{
		ProjectPath:     dir,
		ServicesStarted: names,
		MissingImages:   missing,
		ManifestErr:     manifestErr,
		ImageErr:        imageErr,
	}, nil
}

// Down stops and removes the project's containers. Named volumes are kept.
func (m *Manager) Down(ctx context.Context, dir string) (*DownResult, error) {
	dir, err := m.projectDir(dir)
	if err != nil {
		return nil, err
	}

	names, manifestErr := m.serviceNames(ctx, dir)

	res, err := m.Engine.Compose(ctx, dir, "down")
	if err != nil || !res.Success() {
		return nil, newComposeError("down", res, err)
	}

	return &DownResult{
		ProjectPath:     dir,
		ServicesStopped: names,
		ManifestErr:     manifestErr,
	}, nil
}

// Status lists the project's containers as reported by the runtime, along
// with the connection info of every known service.
func (m *Manager) Status(ctx context.Context, dir string) (*StatusResult, error) {
	dir, err := m.projectDir(dir)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		ProjectPath:    dir,
		Services:       []ServiceState{},
		ConnectionInfo: m.Registry.ConnectionInfo(),
	}

	res, err := m.Engine.Compose(ctx, dir, "ps", "--format", "json")
	if err != nil || !res.Success() {
		result.ParseErr = newComposeError("ps", res, err)
		m.logger().Debug("process listing failed", "err", result.ParseErr)
		return result, nil
	}

	states, err := ParseProcessList(res.Stdout)
	if err != nil {
		result.ParseErr = err
		m.logger().Debug("could not decode process listing", "err", err)
		return result, nil
	}
	result.Services = states
	return result, nil
}

type psEntry struct {
	Name       string `json:"Name"`
	Service    string `json:"Service"`
	State      string `json:"State"`
	Health     string `json:"Health"`
	Ports      string `json:"Ports"`
	Publishers []struct {
		URL           string `json:"URL"`
		TargetPort    int    `json:"TargetPort"`
		PublishedPort int    `json:"PublishedPort"`
		Protocol      string `json:"Protocol"`
	} `json:"Publishers"`
}

// publishedPorts describes the Publishers list of releases that leave Ports
// empty. A binding published on both IPv4 and IPv6 is listed once.
func publishedPorts(e psEntry) string {
	published := []string{}
	for _, p := range e.Publishers {
		if p.PublishedPort == 0 {
			continue
		}
		binding := fmt.Sprintf("%d->%d/%s", p.PublishedPort, p.TargetPort, p.Protocol)
		if !slices.Contains(published, binding) {
			published = append(published, binding)
		}
	}
	return strings.Join(published, ", ")
}

// ParseProcessList decodes "compose ps --format json" output, which is a JSON
// array on older releases and one object per line on newer ones. The Ports
// text is kept verbatim when present.
func ParseProcessList(out string) ([]ServiceState, error) {
	out = strings.TrimSpace(out)
	states := []ServiceState{}
	if out == "" {
		return states, nil
	}

	var entries []psEntry
	if strings.HasPrefix(out, "[") {
		if err := json.Unmarshal([]byte(out), &entries); err != nil {
			return []ServiceState{}, fmt.Errorf("decoding process list: %w", err)
		}
	} else {
		for _, line := range strings.Split(out, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			var e psEntry
			if err := json.Unmarshal([]byte(line), &e); err != nil {
				return []ServiceState{}, fmt.Errorf("decoding process list: %w", err)
			}
			entries = append(entries, e)
		}
	}

	for _, e := range entries {
		state := e.State
		if state == "" {
			state = "unknown"
		}
		ports := e.Ports
		if ports == "" {
			ports = publishedPorts(e)
		}
		states = append(states, ServiceState{
			Name:    e.Name,
			Service: e.Service,
			State:   state,
			Health:  e.Health,
			Ports:   ports,
		})
	}
	return states, nil
}
