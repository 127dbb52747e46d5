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
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/sonnet-scripts/sonnet-cli/services"
)

//go:embed files/*.tmpl
var files embed.FS

var textTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"ports": func(def services.ServiceDefinition) string {
		if len(def.Ports) == 0 {
			return "-"
		}
		ports := []string{}
		for _, p := range def.Ports {
			ports = append(ports, p.String())
		}
		return strings.Join(ports, ", ")
	},
	"sqlquote": func(s string) string {
		return strings.ReplaceAll(s, "'", "''")
	},
}).ParseFS(files, "files/*.tmpl"))

type readmeData struct {
	ProjectName string
	Services    []services.ServiceDefinition
	Endpoints   []services.Endpoint
	HasPgAdmin  bool
}

func execute(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Readme renders README.md with the selected services and their endpoints.
func Readme(in Input) ([]byte, error) {
	defs := in.definitions()
	endpoints := []services.Endpoint{}
	for _, def := range defs {
		if addr := def.Endpoint(); addr != "" {
			endpoints = append(endpoints, services.Endpoint{Service: def.Name, Address: addr})
		}
	}
	return execute("README.md.tmpl", readmeData{
		ProjectName: in.ProjectName,
		Services:    defs,
		Endpoints:   endpoints,
		HasPgAdmin:  in.selected(services.PgAdmin),
	})
}

func InitSQL(in Input) ([]byte, error) {
	return execute("init.sql.tmpl", in)
}
