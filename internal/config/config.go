// Package config loads the exammail configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/exammail/pkg/logger"
	"github.com/dmitrymomot/exammail/pkg/mailer"
	"github.com/dmitrymomot/exammail/pkg/mailer/resend"
	"github.com/dmitrymomot/exammail/pkg/mailer/smtp"
	"github.com/dmitrymomot/exammail/pkg/schedule"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full application configuration.
type Config struct {
	Log    logger.Config
	Mail   mailer.Config
	SMTP   smtp.Config
	Resend resend.Config
	Sheet  SheetConfig
	Server ServerConfig
}

// SheetConfig controls spreadsheet parsing.
type SheetConfig struct {
	Name              string `env:"SHEET_NAME"`
	ColumnAliasesFile string `env:"COLUMN_ALIASES_FILE"`
}

// ServerConfig controls the web UI.
type ServerConfig struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	RedisURL        string        `env:"REDIS_URL"`
	MaxUploadSize   int64         `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`
	UploadTTL       time.Duration `env:"UPLOAD_TTL" envDefault:"1h"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads the optional dotenv files and parses the environment.
// Variables already set in the environment win over dotenv values.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	return parse(env.Options{})
}

// ParseEnv reads the configuration from environ instead of the process
// environment.
func ParseEnv(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the env tags cannot express.
func (c *Config) Validate() error {
	var errs []error
	if !c.Mail.Provider.Valid() {
		errs = append(errs, fmt.Errorf("MAIL_PROVIDER %q: expected smtp or resend", c.Mail.Provider))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if _, err := logger.ParseFormat(string(c.Log.Format)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_FORMAT: %w", err))
	}
	if c.SMTP.Port < 0 || c.SMTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("SMTP_PORT %d: out of range", c.SMTP.Port))
	}
	if c.Server.MaxUploadSize <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_SIZE %d: must be positive", c.Server.MaxUploadSize))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// Columns returns the default aliases merged with COLUMN_ALIASES_FILE.
func (c *Config) Columns() (schedule.Columns, error) {
	if c.Sheet.ColumnAliasesFile == "" {
		return schedule.DefaultColumns(), nil
	}

	f, err := os.Open(c.Sheet.ColumnAliasesFile)
	if err != nil {
		return schedule.Columns{}, fmt.Errorf("config: column aliases: %w", err)
	}
	defer f.Close()

	cols, err := schedule.LoadColumns(f)
	if err != nil {
		return schedule.Columns{}, fmt.Errorf("config: column aliases %s: %w", c.Sheet.ColumnAliasesFile, err)
	}
	return cols, nil
}
