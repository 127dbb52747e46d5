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
package render

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

type progressState int

const (
	running progressState = iota
	finished
	failed
	cancelled
)

// AdvanceMsg marks the active step as done and starts the next one.
type AdvanceMsg struct{}

type FinishedMsg struct {
	Elapsed time.Duration
	Summary string
}

type FailedMsg struct {
	Reason string
}

type Step struct {
	Title   string
	Done    string
	Spinner spinner.Model
	Err     string
}

// ProgressModel is a bubbletea model that shows a fixed list of steps
// advancing one at a time.
type ProgressModel struct {
	Title   string
	Steps   []Step
	Active  int
	Width   int
	LogFile string
	Elapsed time.Duration
	Summary string

	state progressState
}
