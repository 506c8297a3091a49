package config

import (
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Address    string `env:"ADDRESS" envDefault:"0.0.0.0:9090"`

	Secret        string `env:"SECRET,required"`
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`

	BcryptHasherCost      int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	SessionTokenTTL       time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"24h"`
	PasswordResetTokenTTL time.Duration `env:"PASSWORD_RESET_TOKEN_TTL" envDefault:"1h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	AwsRegion                     string  `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey                  string  `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string  `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string  `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetTemplate string  `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE"`
	AwsEmailPasswordResetBaseUrl  url.URL `env:"AWS_EMAIL_PASSWORD_RESET_BASE_URL"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
