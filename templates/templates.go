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

// Package templates renders the files of a generated project.
package templates

import (
	"os"
	"path/filepath"

	"github.com/sonnet-scripts/sonnet-cli/services"
)

const (
	ManifestFile = "docker-compose.yml"
	EnvFile      = ".env"
	ReadmeFile   = "README.md"
)

var (
	InitSQLFile            = filepath.Join("sql", "init.sql")
	PgAdminServersFile     = filepath.Join("config", "pgadmin", "servers.json")
	PgAdminPreferencesFile = filepath.Join("config", "pgadmin", "preferences.json")
	PgPassFile             = filepath.Join("config", "pgadmin", "pgpass")
)

// File is one rendered artifact, Path relative to the project root.
type File struct {
	Path    string
	Content []byte
	Mode    os.FileMode
}

// Render produces every file of the project in write order.
func Render(in Input) ([]File, error) {
	manifest, err := Manifest(in)
	if err != nil {
		return nil, err
	}
	env, err := Env(in)
	if err != nil {
		return nil, err
	}
	readme, err := Readme(in)
	if err != nil {
		return nil, err
	}
	initSQL, err := InitSQL(in)
	if err != nil {
		return nil, err
	}

	out := []File{
		{Path: ManifestFile, Content: manifest, Mode: 0644},
		{Path: EnvFile, Content: env, Mode: 0644},
		{Path: ReadmeFile, Content: readme, Mode: 0644},
		{Path: InitSQLFile, Content: initSQL, Mode: 0644},
	}

	if needsPgAdminConfig(in) {
		servers, err := PgAdminServersJSON(in)
		if err != nil {
			return nil, err
		}
		prefs, err := PgAdminPreferencesJSON()
		if err != nil {
			return nil, err
		}
		out = append(out,
			File{Path: PgAdminServersFile, Content: servers, Mode: 0644},
			File{Path: PgAdminPreferencesFile, Content: prefs, Mode: 0644},
			// libpq ignores a password file readable by group or others.
			File{Path: PgPassFile, Content: PgPass(), Mode: 0600},
		)
	}

	return out, nil
}

func needsPgAdminConfig(in Input) bool {
	for _, def := range in.definitions() {
		if def.RequiresConfigFiles && def.Name == services.PgAdmin {
			return true
		}
	}
	return false
}
