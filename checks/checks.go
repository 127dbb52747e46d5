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

// Package checks runs the pre-flight validation that gates project creation
// and start: runtime reachability, local image presence and host port availability.
package checks

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnet-scripts/sonnet-cli/engine"
	"github.com/sonnet-scripts/sonnet-cli/services"
)

const (
	DefaultProbeTimeout = 10 * time.Second
	DefaultPortTimeout  = time.Second
	DefaultPortHost     = "127.0.0.1"
)

// ImageSet holds local image references, both "repo:tag" and bare "repo".
type ImageSet map[string]struct{}

func (s ImageSet) Has(ref string) bool {
	_, ok := s[ref]
	return ok
}

// Report is the outcome of the image and port checks for one selection.
type Report struct {
	Available     []string
	Missing       []string
	PortConflicts map[string][]int
	// ImageErr is set when the local image listing failed and every local
	// service was therefore reported missing.
	ImageErr error
}

func (r Report) HasWarnings() bool {
	return len(r.Missing) > 0 || len(r.PortConflicts) > 0
}

// PortProbe reports whether a host port can be bound right now.
type PortProbe func(ctx context.Context, host string, port int) bool

type Validator struct {
	Engine       engine.Engine
	Registry     *services.Registry
	ProbeTimeout time.Duration
	PortHost     string
	PortTimeout  time.Duration
	PortProbe    PortProbe
	Logger       *log.Logger
}

func NewValidator(e engine.Engine, reg *services.Registry) *Validator {
	return &Validator{
		Engine:       e,
		Registry:     reg,
		ProbeTimeout: DefaultProbeTimeout,
		PortHost:     DefaultPortHost,
		PortTimeout:  DefaultPortTimeout,
		PortProbe:    ProbePort,
		Logger:       log.Default(),
	}
}

func (v *Validator) logger() *log.Logger {
	if v.Logger == nil {
		return log.Default()
	}
	return v.Logger
}

// RuntimeAvailable probes the runtime daemon. Any failure, including a timeout, is false.
func (v *Validator) RuntimeAvailable(ctx context.Context) bool {
	timeout := v.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := v.Engine.Ping(probeCtx); err != nil {
		v.logger().Debug("runtime probe failed", "err", err)
		return false
	}
	return true
}

// LocalImages lists the images present locally. When the listing fails the
// returned set is empty and the error is returned alongside it.
func (v *Validator) LocalImages(ctx context.Context) (ImageSet, error) {
	set := ImageSet{}
	refs, err := v.Engine.Images(ctx)
	if err != nil {
		v.logger().Warn("could not list local images, treating all local images as missing", "err", err)
		return set, err
	}
	for _, ref := range refs {
		set[ref] = struct{}{}
		if i := strings.LastIndex(ref, ":"); i > 0 && !strings.Contains(ref[i:], "/") {
			set[ref[:i]] = struct{}{}
		}
	}
	return set, nil
}

// CheckImages partitions the selection into available and missing services.
// Prebuilt images are always available since the runtime pulls them on demand.
// Unknown names are skipped.
func (v *Validator) CheckImages(ctx context.Context, selection []string) (available, missing []string, err error) {
	available, missing = []string{}, []string{}

	var local ImageSet
	for _, name := range selection {
		def, ok := v.Registry.Lookup(name)
		if !ok {
			continue
		}
		if def.Provenance == services.Prebuilt {
			available = append(available, name)
			continue
		}
		if local == nil {
			local, err = v.LocalImages(ctx)
		}
		if local.Has(def.Image) {
			available = append(available, name)
		} else {
			missing = append(missing, name)
		}
	}
	return available, missing, err
}

// PortAvailable reports whether port can be bound on the configured host.
func (v *Validator) PortAvailable(port int) bool {
	probe := v.PortProbe
	if probe == nil {
		probe = ProbePort
	}
	host := v.PortHost
	if host == "" {
		host = DefaultPortHost
	}
	timeout := v.PortTimeout
	if timeout <= 0 {
		timeout = DefaultPortTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return probe(ctx, host, port)
}

// PortConflicts maps each selected service to its host ports that are in use.
// Services without conflicts are omitted.
func (v *Validator) PortConflicts(selection []string) map[string][]int {
	conflicts := map[string][]int{}
	for _, name := range selection {
		def, ok := v.Registry.Lookup(name)
		if !ok || len(def.Ports) == 0 {
			continue
		}
		busy := []int{}
		for _, port := range def.HostPorts() {
			if !v.PortAvailable(port) {
				busy = append(busy, port)
			}
		}
		if len(busy) > 0 {
			conflicts[name] = busy
		}
	}
	return conflicts
}

// Run performs the image and port checks for a selection.
func (v *Validator) Run(ctx context.Context, selection []string) Report {
	available, missing, err := v.CheckImages(ctx, selection)
	return Report{
		Available:     available,
		Missing:       missing,
		PortConflicts: v.PortConflicts(selection),
		ImageErr:      err,
	}
}
