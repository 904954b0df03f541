package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	InitialAdmin struct {
		Email    string `env:"EMAIL,required"`
		Password string `env:"PASSWORD,required"`
		Name     string `env:"NAME" envDefault:"Administrator"`
	} `envPrefix:"INITIAL_ADMIN_"`
	Session struct {
		Secret     string `env:"SECRET,required"`
		Expiration int    `env:"EXPIRATION" envDefault:"1209600"` // 14 days
		CookieName string `env:"COOKIE_NAME" envDefault:"__pulseboard_session"`
	} `envPrefix:"SESSION_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD" envDefault:""`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Deck struct {
		Queue         string `env:"QUEUE" envDefault:"deck_queue"`
		BaseURL       string `env:"BASE_URL" envDefault:"https://decks.pulseboard.dev"`
		RenderSeconds int    `env:"RENDER_SECONDS" envDefault:"3"`
		RecentLimit   int    `env:"RECENT_LIMIT" envDefault:"10"`
	} `envPrefix:"DECK_"`
	Email struct {
		Enabled bool   `env:"ENABLED" envDefault:"false"`
		From    string `env:"FROM" envDefault:""`
		SMTP    struct {
			Username    string `env:"USERNAME" envDefault:""`
			Password    string `env:"PASSWORD" envDefault:""`
			Host        string `env:"HOST" envDefault:""`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	Seed struct {
		Operator struct {
			Password string `env:"PASSWORD" envDefault:"pulseboard-dev"`
		} `envPrefix:"OPERATOR_"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, firstError(err)
	}

	return cfg, nil
}

// firstError unwraps aggregated parse errors to the first one so startup logs
// stay readable; anything else passes through untouched.
func firstError(err error) error {
	aggErr := env.AggregateError{}
	if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
		return aggErr.Errors[0]
	}

	return err
}
