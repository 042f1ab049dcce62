package resend

// Config holds Resend email provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
// The API key is not configured here; it is supplied per session as the
// operator's password.
type Config struct {
	SenderName string `env:"RESEND_FROM_NAME"`
}
