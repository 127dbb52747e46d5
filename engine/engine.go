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

// Package engine talks to the local container runtime.
package engine

import (
	"context"
	"fmt"
)

// Engine is the narrow surface of the container runtime used by the CLI.
type Engine interface {
	// Ping returns nil when the runtime daemon is reachable.
	Ping(ctx context.Context) error
	// Images lists local images as "repository:tag" references.
	Images(ctx context.Context) ([]string, error)
	// Compose runs "compose <args>" in dir.
	Compose(ctx context.Context, dir string, args ...string) (*Result, error)
}

const (
	DriverCLI = "cli"
	DriverAPI = "api"
)

type Options struct {
	Driver   string
	Binary   string
	Executor Executor
}

// New returns the engine implementation for the requested driver.
func New(opts Options) (Engine, error) {
	cli := NewCLI(opts.Binary, opts.Executor)
	switch opts.Driver {
	case "", DriverCLI:
		return cli, nil
	case DriverAPI:
		return NewAPI(cli)
	default:
		return nil, fmt.Errorf("unknown runtime driver %q (want %q or %q)", opts.Driver, DriverCLI, DriverAPI)
	}
}
