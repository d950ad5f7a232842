package config

// EnvPrefix scopes every environment variable the service reads.
const EnvPrefix = "INVMGT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "INVMGT_DB_DSN"
	EnvDBHost = "INVMGT_DB_HOST"
	EnvDBUser = "INVMGT_DB_USER"
	EnvDBName = "INVMGT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
