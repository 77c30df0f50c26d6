package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "SCRAPBILL"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv = "SCRAPBILL_APP_ENV"
	EnvPort   = "SCRAPBILL_APP_PORT"
	EnvDBDSN  = "SCRAPBILL_DB_DSN"
	EnvDBHost = "SCRAPBILL_DB_HOST"
	EnvDBUser = "SCRAPBILL_DB_USER"
	EnvDBName = "SCRAPBILL_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
