package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	Identity      IdentityConfig
	Slack         SlackConfig
	ProjectID     string
	AutoMountSlot string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type IdentityConfig struct {
	BaseURL string
	APIKey  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
