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
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

const DefaultLogFile = "sonnet.logs.txt"

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).MarginRight(1).MarginLeft(1)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).MarginLeft(1)
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Faint(true).MarginLeft(1)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).MarginLeft(1)
	waitingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).MarginTop(1).MarginLeft(1).MarginBottom(1)
)

func NewStep(title, done string) Step {
	s := spinner.New()
	s.Style = spinnerStyle
	s.Spinner = spinner.MiniDot
	return Step{Title: title, Done: done, Spinner: s}
}

func NewProgressModel(title string, steps []Step) ProgressModel {
	return ProgressModel{Title: title, Steps: steps, LogFile: DefaultLogFile}
}

func (m ProgressModel) Failed() bool    { return m.state == failed }
func (m ProgressModel) Cancelled() bool { return m.state == cancelled }

func (m ProgressModel) Init() tea.Cmd {
	if len(m.Steps) == 0 {
		return nil
	}
	return m.Steps[m.Active].Spinner.Tick
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type != tea.KeyCtrlC {
			return m, nil
		}
		m.state = cancelled
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil

	case AdvanceMsg:
		if m.Active+1 >= len(m.Steps) {
			return m, nil
		}
		m.Active++
		return m, m.Steps[m.Active].Spinner.Tick

	case FailedMsg:
		m.state = failed
		if len(m.Steps) > 0 {
			m.Steps[m.Active].Err = msg.Reason
			_ = WriteFailureLog(m.LogFile, m.Title, m.Steps[m.Active])
		}
		return m, tea.Quit

	case FinishedMsg:
		m.state = finished
		m.Elapsed = msg.Elapsed
		m.Summary = msg.Summary
		return m, tea.Quit

	case spinner.TickMsg:
		if len(m.Steps) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.Steps[m.Active].Spinner, cmd = m.Steps[m.Active].Spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ProgressModel) View() string {
	lines := []string{titleStyle(m.Width).Render(m.Title)}

	for i, step := range m.Steps {
		switch {
		case m.state == finished || i < m.Active:
			lines = append(lines, doneStyle.Render("✔ "+step.Done))
		case i == m.Active && m.state == failed:
			t := tree.Root("⚠ " + step.Title).Child(step.Err)
			lines = append(lines, failStyle.Render(t.String()))
		case i == m.Active && m.state == running:
			lines = append(lines, step.Spinner.View()+step.Title)
		case m.state == failed || m.state == cancelled:
			lines = append(lines, skippedStyle.Render("CANCELLED "+step.Title))
		default:
			lines = append(lines, waitingStyle.Render("󰚭 "+step.Title))
		}
	}

	switch m.state {
	case finished:
		lines = append(lines, footerStyle.Render(fmt.Sprintf("🎵 %s in %s.", m.Summary, m.Elapsed.Round(time.Millisecond))))
	case failed:
		lines = append(lines, footerStyle.Render("⚠️ Details written to "+m.LogFile))
	}

	return lipgloss.JoinVertical(lipgloss.Top, lines...) + "\n"
}

func titleStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("white")).
		Background(lipgloss.Color("#414868")).
		Width(width).
		Padding(1).
		Align(lipgloss.Center).
		MarginBottom(1).
		MarginTop(1)
}

// WriteFailureLog appends the failed step and its reason to path.
func WriteFailureLog(path, title string, step Step) error {
	if path == "" {
		path = DefaultLogFile
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "=== %s - %s ===\nstep: %s\n%s\n\n",
		title, time.Now().Format("2006-01-02 15:04:05"), step.Title, step.Err)
	return err
}
