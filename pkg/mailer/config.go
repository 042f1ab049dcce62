package mailer

// Provider names a mail transport.
type Provider string

const (
	// ProviderSMTP sends through SMTP submission with a net/smtp fallback.
	ProviderSMTP Provider = "smtp"
	// ProviderResend sends through the Resend API.
	ProviderResend Provider = "resend"
)

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Provider Provider `env:"MAIL_PROVIDER" envDefault:"smtp"`
	// ReplyTo is set on every notice when not empty.
	ReplyTo string `env:"MAIL_REPLY_TO"`
}

// Valid reports whether p names a known transport.
func (p Provider) Valid() bool {
	return p == ProviderSMTP || p == ProviderResend
}
