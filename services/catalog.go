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
package services

import "fmt"

// Development credentials baked into generated projects.
const (
	PostgresUser     = "postgres"
	PostgresPassword = "postgres"
	PostgresDB       = "postgres"
	PostgresPort     = 5432

	PgAdminEmail    = "pgadmin4@pgadmin.org"
	PgAdminPassword = "password"

	MinioRootUser     = "admin"
	MinioRootPassword = "password"
)

const (
	PgDuckDB    = "pgduckdb"
	PgAdmin     = "pgadmin"
	CloudBeaver = "cloudbeaver"
	Minio       = "minio"
	Jupyter     = "jupyterbase"
	Pipeline    = "pipelinebase"
	Dbt         = "dbtbase"
)

// Mount points of the admin UI config files inside its container.
const (
	PgAdminServersPath     = "/pgadmin4/servers.json"
	PgAdminPreferencesPath = "/pgadmin4/preferences.json"
	PgAdminPassFilePath    = "/pgpass"
)

var catalog = []ServiceDefinition{
	{
		Name:       PgDuckDB,
		Image:      "pgduckdb/pgduckdb:17-v0.1.0",
		Provenance: Prebuilt,
		Ports:      []PortMapping{{Host: PostgresPort, Container: PostgresPort}},
		Required:   true,
		Environment: []EnvVar{
			{Key: "POSTGRES_USER", Value: PostgresUser},
			{Key: "POSTGRES_PASSWORD", Value: PostgresPassword},
			{Key: "POSTGRES_DB", Value: PostgresDB},
		},
		Volumes: []string{
			"pgduckdb_data:/var/lib/postgresql/data",
			"./sql/init.sql:/docker-entrypoint-initdb.d/init.sql",
		},
		HealthCheck: &HealthCheck{
			Test:    []string{"CMD", "pg_isready", "-U", PostgresUser},
			Retries: 5,
		},
		Description:      "PostgreSQL with DuckDB extension",
		ConnectionString: fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s", PostgresUser, PostgresPassword, PostgresPort, PostgresDB),
	},
	{
		Name:       PgAdmin,
		Image:      "dpage/pgadmin4:9.3.0",
		Provenance: Prebuilt,
		Ports:      []PortMapping{{Host: 8080, Container: 80}},
		DependsOn:  []string{PgDuckDB},
		Environment: []EnvVar{
			{Key: "PGADMIN_DEFAULT_EMAIL", Value: PgAdminEmail},
			{Key: "PGADMIN_DEFAULT_PASSWORD", Value: PgAdminPassword},
			{Key: "PGADMIN_CONFIG_SERVER_MODE", Value: "False"},
			{Key: "PGADMIN_CONFIG_MASTER_PASSWORD_REQUIRED", Value: "False"},
			{Key: "PGADMIN_PREFERENCES_JSON_FILE", Value: PgAdminPreferencesPath},
			{Key: "PGADMIN_CONFIG_CONSOLE_LOG_LEVEL", Value: "10"},
		},
		Volumes: []string{
			"./config/pgadmin/servers.json:" + PgAdminServersPath,
			"./config/pgadmin/preferences.json:" + PgAdminPreferencesPath,
			"./config/pgadmin/pgpass:" + PgAdminPassFilePath,
		},
		Description:         "Web-based PostgreSQL admin UI",
		URL:                 "http://localhost:8080",
		RequiresConfigFiles: true,
	},
	{
		Name:        CloudBeaver,
		Image:       "dbeaver/cloudbeaver:25.0.3",
		Provenance:  Prebuilt,
		Ports:       []PortMapping{{Host: 8978, Container: 8978}},
		DependsOn:   []string{PgDuckDB},
		Volumes:     []string{"cloudbeaver-data:/opt/cloudbeaver/workspace"},
		Description: "Web-based universal database manager",
		URL:         "http://localhost:8978",
	},
	{
		Name:       Minio,
		Image:      "minio/minio:RELEASE.2025-04-22T22-12-26Z",
		Provenance: Prebuilt,
		Ports: []PortMapping{
			{Host: 9000, Container: 9000},
			{Host: 9001, Container: 9001},
		},
		Environment: []EnvVar{
			{Key: "MINIO_ROOT_USER", Value: MinioRootUser},
			{Key: "MINIO_ROOT_PASSWORD", Value: MinioRootPassword},
			{Key: "MINIO_DOMAIN", Value: Minio},
		},
		Volumes:     []string{"minio_data:/data"},
		Command:     []string{"server", "/data", "--console-address", ":9001"},
		Description: "S3-compatible object storage",
		URL:         "http://localhost:9001",
	},
	{
		Name:        Jupyter,
		Image:       "jupyterbase",
		Provenance:  Local,
		Ports:       []PortMapping{{Host: 8888, Container: 8888}},
		DependsOn:   []string{PgDuckDB},
		Description: "Jupyter notebooks for analysis",
		URL:         "http://localhost:8888",
	},
	{
		Name:        Pipeline,
		Image:       "pipelinebase",
		Provenance:  Local,
		DependsOn:   []string{PgDuckDB, Minio},
		Description: "ETL pipelines and data loading",
	},
	{
		Name:       Dbt,
		Image:      "dbtbase",
		Provenance: Local,
		DependsOn:  []string{PgDuckDB},
		Environment: []EnvVar{
			{Key: "DB_HOST", Value: PgDuckDB},
			{Key: "DB_USER", Value: PostgresUser},
			{Key: "DB_PASSWORD", Value: PostgresPassword},
			{Key: "DB_NAME", Value: PostgresDB},
			{Key: "DBT_TARGET", Value: "dev"},
		},
		Volumes:     []string{"dbt_data:/apps/data"},
		Description: "dbt Core for transformations",
	},
}

// DefaultSelection is used when no services are requested explicitly.
var DefaultSelection = []string{PgDuckDB, PgAdmin}

// Default returns the built-in catalog.
func Default() *Registry {
	return NewRegistry(catalog, DefaultSelection)
}
