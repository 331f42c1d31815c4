package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort      = 3177
	defaultEnv       = "development"
	defaultRedisURL  = "redis://localhost:6379/0"
	defaultPublicURL = "http://localhost:3000"
)
