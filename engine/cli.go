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
package engine

import (
	"context"
	"strings"
)

// CLI drives the runtime through its command line binary.
type CLI struct {
	Binary string
	Exec   Executor
}

func NewCLI(binary string, executor Executor) *CLI {
	if binary == "" {
		binary = "docker"
	}
	if executor == nil {
		executor = ExecExecutor{}
	}
	return &CLI{Binary: binary, Exec: executor}
}

func (c *CLI) Ping(ctx context.Context) error {
	_, err := c.Exec.Run(ctx, "", c.Binary, "info")
	return err
}

func (c *CLI) Images(ctx context.Context) ([]string, error) {
	res, err := c.Exec.Run(ctx, "", c.Binary, "images", "--format", "{{.Repository}}:{{.Tag}}")
	if err != nil {
		return nil, err
	}
	images := []string{}
	for _, line := range strings.Split(res.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			images = append(images, line)
		}
	}
	return images, nil
}

func (c *CLI) Compose(ctx context.Context, dir string, args ...string) (*Result, error) {
	return c.Exec.Run(ctx, dir, c.Binary, append([]string{"compose"}, args...)...)
}
