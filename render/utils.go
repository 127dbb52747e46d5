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

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/erikgeiser/promptkit/textinput"
)

var logLevel = log.InfoLevel

// NewTextInput builds a prompt that accepts an empty answer when a default
// exists. validate may be nil.
func NewTextInput(prompt, defaultValue, placeholder string, validate func(string) error) *textinput.TextInput {
	label := fmt.Sprintf("%s: ", prompt)
	if defaultValue != "" {
		label = fmt.Sprintf("%s \033[3m(default: %s)\033[0m: ", prompt, defaultValue)
	}

	input := textinput.New(label)
	input.Placeholder = placeholder
	input.InputTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("120"))
	input.Validate = func(value string) error {
		if value == "" && defaultValue != "" {
			return nil
		}
		if validate == nil {
			return nil
		}
		return validate(value)
	}
	return input
}

// AskText prompts for a value and falls back to defaultValue on empty input.
func AskText(prompt, defaultValue, placeholder string, validate func(string) error) (string, error) {
	value, err := NewTextInput(prompt, defaultValue, placeholder, validate).RunPrompt()
	if err != nil {
		return "", err
	}
	if value == "" {
		return defaultValue, nil
	}
	return value, nil
}

// SetLogLevel changes the level of loggers created afterwards and of the default logger.
func SetLogLevel(level string) error {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	logLevel = parsed
	log.SetLevel(parsed)
	return nil
}

func GetLogger(options log.Options) *log.Logger {
	options.ReportCaller = false
	options.ReportTimestamp = true
	options.TimeFormat = time.Kitchen
	options.Level = logLevel

	return log.NewWithOptions(os.Stderr, options)
}
