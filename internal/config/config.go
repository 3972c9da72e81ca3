package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"jobs"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string   `envconfig:"TRIAGE_ADDRESS" default:":8080"`
	MetricsAddress  string   `envconfig:"TRIAGE_METRICS_ADDRESS" default:":8081"`
	LogLevel        string   `envconfig:"TRIAGE_LOG_LEVEL" default:"info"`
	MigrationFolder string   `envconfig:"TRIAGE_MIGRATIONS_FOLDER" default:""`
	CorsOrigins     []string `envconfig:"TRIAGE_CORS_ORIGINS" default:"http://localhost:3000"`
	Events          eventsConfig
}

type eventsConfig struct {
	Writer  string `envconfig:"TRIAGE_EVENTS_WRITER" default:"stdout"`
	NatsURL string `envconfig:"TRIAGE_NATS_URL" default:"nats://localhost:4222"`
	Topic   string `envconfig:"TRIAGE_EVENTS_TOPIC" default:"jobs.status"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a fresh config populated from the environment and defaults, ignoring the singleton.
func NewDefault() *Config {
	cfg := new(Config)
	_ = envconfig.Process("", cfg)
	return cfg
}
