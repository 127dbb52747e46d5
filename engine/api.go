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
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

type apiClient interface {
	Ping(ctx context.Context) (types.Ping, error)
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
}

// API probes the daemon over the Engine API and falls back to the CLI for
// compose, which has no API counterpart.
type API struct {
	client apiClient
	cli    *CLI
}

func NewAPI(cli *CLI) (*API, error) {
	c, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}
	return &API{client: c, cli: cli}, nil
}

func (a *API) Ping(ctx context.Context) error {
	_, err := a.client.Ping(ctx)
	return err
}

func (a *API) Images(ctx context.Context) ([]string, error) {
	summaries, err := a.client.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, err
	}
	images := []string{}
	for _, s := range summaries {
		for _, tag := range s.RepoTags {
			if tag == "<none>:<none>" {
				continue
			}
			images = append(images, tag)
		}
	}
	return images, nil
}

func (a *API) Compose(ctx context.Context, dir string, args ...string) (*Result, error) {
	return a.cli.Compose(ctx, dir, args...)
}
