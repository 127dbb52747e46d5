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
	"errors"
	"fmt"

	"github.com/sonnet-scripts/sonnet-cli/engine"
)

var (
	ErrRuntimeUnavailable = errors.New("container runtime is not running")
	ErrProjectExists      = errors.New("project directory already exists")
	ErrNotAProject        = errors.New("not a sonnet project: no docker-compose.yml found")
	ErrInvalidProjectName = errors.New("invalid project name")
)

// ProjectExistsError reports an existing target directory. Forced is set when
// replacement was requested but the directory is not a project.
type ProjectExistsError struct {
	Path   string
	Forced bool
}

func (e *ProjectExistsError) Error() string {
	if e.Forced {
		return fmt.Sprintf("directory %s already exists and is not a sonnet project", e.Path)
	}
	return fmt.Sprintf("directory %s already exists", e.Path)
}

func (e *ProjectExistsError) Unwrap() error {
	return ErrProjectExists
}

// ComposeError is a failed compose invocation. Stderr is kept verbatim.
type ComposeError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ComposeError) Error() string {
	return fmt.Sprintf("docker compose %s failed:\n%s", e.Command, e.Stderr)
}

func (e *ComposeError) Unwrap() error {
	return e.Err
}

func newComposeError(command string, res *engine.Result, err error) *ComposeError {
	stderr := ""
	if res != nil {
		stderr = res.Stderr
	}
	if stderr == "" {
		stderr = engine.ExtractStderr(err)
	}
	if stderr == "" && err != nil {
		stderr = err.Error()
	}
	return &ComposeError{Command: command, Stderr: stderr, Err: err}
}
