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
	"sync"
)

// MockCall records one invocation made against a Mock.
type MockCall struct {
	Method string
	Dir    string
	Args   []string
}

// Mock is an Engine for tests. Unset funcs succeed with empty output.
type Mock struct {
	PingFunc    func(ctx context.Context) error
	ImagesFunc  func(ctx context.Context) ([]string, error)
	ComposeFunc func(ctx context.Context, dir string, args ...string) (*Result, error)

	mu    sync.Mutex
	Calls []MockCall
}

func (m *Mock) record(method, dir string, args []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: method, Dir: dir, Args: args})
}

func (m *Mock) Ping(ctx context.Context) error {
	m.record("Ping", "", nil)
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *Mock) Images(ctx context.Context) ([]string, error) {
	m.record("Images", "", nil)
	if m.ImagesFunc != nil {
		return m.ImagesFunc(ctx)
	}
	return []string{}, nil
}

func (m *Mock) Compose(ctx context.Context, dir string, args ...string) (*Result, error) {
	m.record("Compose", dir, args)
	if m.ComposeFunc != nil {
		return m.ComposeFunc(ctx, dir, args...)
	}
	return &Result{Command: "docker compose " + strings.Join(args, " ")}, nil
}

func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// ComposeCalls returns the argument lists of every Compose invocation.
func (m *Mock) ComposeCalls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := [][]string{}
	for _, c := range m.Calls {
		if c.Method == "Compose" {
			calls = append(calls, c.Args)
		}
	}
	return calls
}

// MockExecutor is an Executor for tests.
type MockExecutor struct {
	RunFunc func(ctx context.Context, dir string, name string, args ...string) (*Result, error)

	mu    sync.Mutex
	Calls []MockCall
}

func (m *MockExecutor) Run(ctx context.Context, dir string, name string, args ...string) (*Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: name, Dir: dir, Args: args})
	m.mu.Unlock()
	if m.RunFunc != nil {
		return m.RunFunc(ctx, dir, name, args...)
	}
	return &Result{Command: strings.TrimSpace(name + " " + strings.Join(args, " "))}, nil
}
