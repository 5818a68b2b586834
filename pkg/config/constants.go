package config

// EnvPrefix is the prefix shared by every environment variable the service reads.
const EnvPrefix = "MKSHOP"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "MKSHOP_DB_DSN"
	EnvDBHost = "MKSHOP_DB_HOST"
	EnvDBUser = "MKSHOP_DB_USER"
	EnvDBName = "MKSHOP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
