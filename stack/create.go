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

	"github.com/sonnet-scripts/sonnet-cli/templates"
)

// Step identifies a phase of project creation, reported in order.
type Step int

const (
	StepRuntime Step = iota
	StepPreflight
	StepWrite
)

type CreateOptions struct {
	Name      string
	TargetDir string
	// Services is the requested selection. Empty means the registry defaults.
	Services []string
	Force    bool
	// OnStep is called when a step starts. May be nil.
	OnStep func(Step)
}

type CreateResult struct {
	ProjectPath   string
	Services      []string
	MissingImages []string
	PortConflicts map[string][]int
	ImageErr      error
	FilesCreated  []string
}

// Create scaffolds a new project. Missing images and busy ports are reported
// in the result, they do not stop creation. Force only replaces a directory
// that already holds a project. A failure or cancellation while writing
// leaves the partially written directory in place.
func (m *Manager) Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	step := func(s Step) {
		if opts.OnStep != nil {
			opts.OnStep(s)
		}
	}

	if err := ValidateName(opts.Name); err != nil {
		return nil, err
	}
	target := opts.TargetDir
	if target == "" {
		target = "."
	}
	projectPath, err := filepath.Abs(filepath.Join(target, opts.Name))
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}

	step(StepRuntime)
	if !m.Validator.RuntimeAvailable(ctx) {
		return nil, ErrRuntimeUnavailable
	}

	replace := false
	if _, err := os.Stat(projectPath); err == nil {
		if !opts.Force || !IsProject(projectPath) {
			return nil, &ProjectExistsError{Path: projectPath, Forced: opts.Force}
		}
		replace = true
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking %s: %w", projectPath, err)
	}

	requested := opts.Services
	if len(requested) == 0 {
		requested = m.Registry.Defaults()
	}
	selection := m.Registry.Normalize(requested)

	step(StepPreflight)
	report := m.Validator.Run(ctx, selection)

	result := &CreateResult{
		ProjectPath:   projectPath,
		Services:      selection,
		MissingImages: report.Missing,
		PortConflicts: report.PortConflicts,
		ImageErr:      report.ImageErr,
		FilesCreated:  []string{},
	}

	step(StepWrite)
	files, err := templates.Render(templates.Input{
		ProjectName: opts.Name,
		Services:    selection,
		Registry:    m.Registry,
		Edges:       m.Registry.Resolve(selection),
	})
	if err != nil {
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if replace {
		m.logger().Warn("replacing existing project", "path", projectPath)
		if err := os.RemoveAll(projectPath); err != nil {
			return result, fmt.Errorf("removing %s: %w", projectPath, err)
		}
	}
	if err := os.MkdirAll(projectPath, 0755); err != nil {
		return result, fmt.Errorf("creating %s: %w", projectPath, err)
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		path := filepath.Join(projectPath, f.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return result, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, f.Content, f.Mode); err != nil {
			return result, fmt.Errorf("writing %s: %w", path, err)
		}
		m.logger().Debug("wrote file", "path", path)
		result.FilesCreated = append(result.FilesCreated, f.Path)
	}

	return result, nil
}
