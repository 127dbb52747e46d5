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
	"encoding/json"
	"fmt"

	"github.com/sonnet-scripts/sonnet-cli/services"
)

type PgAdminServer struct {
	Name          string `json:"Name"`
	Group         string `json:"Group"`
	Host          string `json:"Host"`
	Port          int    `json:"Port"`
	MaintenanceDB string `json:"MaintenanceDB"`
	Username      string `json:"Username"`
	SSLMode       string `json:"SSLMode"`
	PassFile      string `json:"PassFile"`
}

type PgAdminServers struct {
	Servers map[string]PgAdminServer `json:"Servers"`
}

// PgAdminServersJSON registers the database container with the admin UI.
func PgAdminServersJSON(in Input) ([]byte, error) {
	servers := PgAdminServers{
		Servers: map[string]PgAdminServer{
			"1": {
				Name:          in.ProjectName,
				Group:         "Servers",
				Host:          services.PgDuckDB,
				Port:          services.PostgresPort,
				MaintenanceDB: services.PostgresDB,
				Username:      services.PostgresUser,
				SSLMode:       "prefer",
				PassFile:      services.PgAdminPassFilePath,
			},
		},
	}
	return json.MarshalIndent(servers, "", "  ")
}

func PgAdminPreferencesJSON() ([]byte, error) {
	prefs := map[string]map[string]interface{}{
		"preferences": {
			"misc:themes:theme":                        "dark",
			"browser:display:confirm_on_refresh_close": false,
			"browser:display:show_system_objects":      false,
			"sqleditor:display:show_explain_plan":      true,
		},
	}
	return json.MarshalIndent(prefs, "", "  ")
}

// PgPass renders the password file referenced by servers.json.
func PgPass() []byte {
	return []byte(fmt.Sprintf("%s:%d:%s:%s:%s\n",
		services.PgDuckDB, services.PostgresPort, services.PostgresDB, services.PostgresUser, services.PostgresPassword))
}
