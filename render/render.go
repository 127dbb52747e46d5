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
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sonnet-scripts/sonnet-cli/services"
	"github.com/sonnet-scripts/sonnet-cli/stack"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("77")).MarginTop(1).MarginLeft(1)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(1)
	runningCell = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).PaddingLeft(1).PaddingRight(1)
	stoppedCell = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).PaddingLeft(1).PaddingRight(1)
	plainCell   = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).PaddingLeft(1).PaddingRight(1)
)

func RenderSonnetBig() {
	pterm.Println()

	s, _ := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Son", pterm.FgCyan.ToStyle()),
		putils.LettersFromStringWithStyle("net", pterm.FgLightMagenta.ToStyle())).Srender()
	pterm.DefaultCenter.Println(s)
}

func Header(text string) {
	fmt.Println(headerStyle.Render(text))
}

func Hint(text string) {
	fmt.Println(hintStyle.Render(text))
}

func Success(format string, args ...interface{}) {
	pterm.Success.Printfln(format, args...)
}

func Info(format string, args ...interface{}) {
	pterm.Info.Printfln(format, args...)
}

func Error(text string) {
	pterm.Error.Println(text)
}

// WarningBox prints a boxed multi-line warning.
func WarningBox(title string, body string) {
	pterm.DefaultBox.
		WithTitle(pterm.FgYellow.Sprint(title)).
		WithBoxStyle(pterm.NewStyle(pterm.FgYellow)).
		Println(strings.Trim(body, "\n"))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers(headers...)
}

// StatusTable renders the containers of a project with their state.
func StatusTable(states []stack.ServiceState) string {
	t := newTable("Name", "State", "Ports").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Align(lipgloss.Center)
			case col == 1 && row >= 0 && row < len(states) && states[row].State == "running":
				return runningCell
			case col == 1:
				return stoppedCell
			default:
				return plainCell
			}
		})
	for _, s := range states {
		ports := s.Ports
		if ports == "" {
			ports = "-"
		}
		t.Row(s.Name, s.State, ports)
	}
	return t.String()
}

// ServicesTable renders the catalog.
func ServicesTable(reg *services.Registry) string {
	t := newTable("Service", "Source", "Ports", "Depends on", "Description").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Align(lipgloss.Center)
			}
			return plainCell
		})
	for _, def := range reg.Definitions() {
		ports := []string{}
		for _, p := range def.HostPorts() {
			ports = append(ports, strconv.Itoa(p))
		}
		name := def.Name
		if def.Required {
			name += " *"
		} else if reg.IsDefault(def.Name) {
			name += " +"
		}
		deps := strings.Join(def.DependsOn, ", ")
		if deps == "" {
			deps = "-"
		}
		portText := strings.Join(ports, ", ")
		if portText == "" {
			portText = "-"
		}
		t.Row(name, string(def.Provenance), portText, deps, def.Description)
	}
	return t.String()
}

// ConnectionInfo prints one line per endpoint.
func ConnectionInfo(endpoints []services.Endpoint) {
	if len(endpoints) == 0 {
		return
	}
	Header("Connection info:")
	for _, e := range endpoints {
		fmt.Printf("  %-14s %s\n", e.Service, e.Address)
	}
}
