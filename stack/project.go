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

// Package stack creates projects on disk and drives their lifecycle through
// the container runtime.
package stack

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/sonnet-scripts/sonnet-cli/checks"
	"github.com/sonnet-scripts/sonnet-cli/engine"
	"github.com/sonnet-scripts/sonnet-cli/services"
	"github.com/sonnet-scripts/sonnet-cli/templates"
	"github.com/sonnet-scripts/sonnet-cli/utils"
)

type State string

const (
	Absent     State = "absent"
	Scaffolded State = "scaffolded"
)

var projectNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

func ValidateName(name string) error {
	if !projectNamePattern.MatchString(name) {
		return fmt.Errorf("%w %q: use letters, digits, '-' and '_', starting with a letter or digit", ErrInvalidProjectName, name)
	}
	return nil
}

// IsProject reports whether dir holds a generated manifest.
func IsProject(dir string) bool {
	return utils.FileExists(filepath.Join(dir, templates.ManifestFile))
}

// Inspect returns the on-disk state of dir. Running and stopped are runtime
// states and are only known by asking the runtime.
func Inspect(dir string) State {
	if IsProject(dir) {
		return Scaffolded
	}
	return Absent
}

// Manager runs project operations against one runtime and catalog.
type Manager struct {
	Engine    engine.Engine
	Registry  *services.Registry
	Validator *checks.Validator
	Logger    *log.Logger
}

func NewManager(e engine.Engine, reg *services.Registry) *Manager {
	return &Manager{
		Engine:    e,
		Registry:  reg,
		Validator: checks.NewValidator(e, reg),
		Logger:    log.Default(),
	}
}

func (m *Manager) logger() *log.Logger {
	if m.Logger == nil {
		return log.Default()
	}
	return m.Logger
}
