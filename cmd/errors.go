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
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/sonnet-scripts/sonnet-cli/render"
	"github.com/sonnet-scripts/sonnet-cli/stack"
)

var errUnknownService = errors.New("unknown service")

// describeError maps an error to the message shown to the user and an optional hint.
func describeError(err error) (string, string) {
	var existsErr *stack.ProjectExistsError
	var composeErr *stack.ComposeError

	switch {
	case errors.Is(err, stack.ErrRuntimeUnavailable):
		return "Docker is not running. Please start Docker Desktop or the Docker daemon.", ""
	case errors.As(err, &existsErr) && existsErr.Forced:
		return fmt.Sprintf("Directory '%s' already exists and is not a sonnet project.", existsErr.Path), "--force only replaces directories that contain a docker-compose.yml."
	case errors.As(err, &existsErr):
		return fmt.Sprintf("Directory '%s' already exists. Use --force to overwrite.", existsErr.Path), ""
	case errors.Is(err, context.Canceled):
		return "Cancelled.", "Files written before cancelling stay in the project directory."
	case errors.Is(err, stack.ErrNotAProject):
		return "Not a sonnet project. No docker-compose.yml found.", "Run 'sonnet init' to create a new project."
	case errors.As(err, &composeErr):
		return composeErr.Error(), ""
	case errors.Is(err, stack.ErrInvalidProjectName):
		return err.Error(), ""
	case errors.Is(err, errUnknownService):
		return err.Error(), "Run 'sonnet services' to list the available services."
	default:
		return err.Error(), ""
	}
}

func printError(err error) {
	msg, hint := describeError(err)
	render.Error(msg)
	if hint != "" {
		render.Hint(hint)
	}
}
