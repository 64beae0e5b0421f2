package config

import "strings"

// Config is the root application configuration, read from the environment.
type Config struct {
	App      AppConfig
	Server   ServerConfig
	CORS     CORSConfig
	Log      LogConfig
	CRM      CRMConfig
	RabbitMQ RabbitMQConfig
	Mail     MailConfig
	Overdue  OverdueConfig
}

type AppConfig struct {
	Name string `env:"APP_NAME" env-default:"ligue-crm"`
}

type ServerConfig struct {
	Port               int `env:"HTTP_PORT"             env-default:"8080"`
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" env-default:"300"`
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a reverse proxy that overwrites those headers.
	TrustProxy bool `env:"HTTP_TRUST_PROXY" env-default:"false"`
}

type CORSConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173,*"`
}

// Origins splits the comma-separated origin list.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

type CRMConfig struct {
	SeedFixtures       bool `env:"CRM_SEED_FIXTURES"       env-default:"true"`
	EnforceTransitions bool `env:"CRM_ENFORCE_TRANSITIONS" env-default:"false"`
}

// RabbitMQConfig is optional: with an empty URL events are only logged.
type RabbitMQConfig struct {
	URL string `env:"RABBITMQ_URL"`
}

func (c RabbitMQConfig) Enabled() bool { return c.URL != "" }

type MailConfig struct {
	Host     string `env:"MAIL_HOST"`
	Port     int    `env:"MAIL_PORT" env-default:"587"`
	User     string `env:"MAIL_USER"`
	Password string `env:"MAIL_PASS"`
	From     string `env:"MAIL_FROM" env-default:"billing@ligue-crm.local"`
}

func (c MailConfig) Enabled() bool { return c.Host != "" }

type OverdueConfig struct {
	Enabled  bool   `env:"OVERDUE_SWEEP_ENABLED"  env-default:"false"`
	Schedule string `env:"OVERDUE_SWEEP_SCHEDULE" env-default:"@hourly"`
}
