package smtp

import "time"

const (
	// DefaultHost is the submission host used when none is configured.
	DefaultHost = "smtp.gmail.com"
	// DefaultPort is the SMTP submission port (STARTTLS).
	DefaultPort = 587
)

// Config holds SMTP transport configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	// SenderName is shown next to the sender address when set.
	SenderName string `env:"MAIL_SENDER_NAME"`
	Port       int    `env:"SMTP_PORT" envDefault:"587"`
	// Timeout bounds dialing and each SMTP command.
	// Zero keeps the client library's default.
	Timeout time.Duration `env:"SMTP_TIMEOUT"`
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	return c
}
