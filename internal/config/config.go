package config

type Config struct {
	Environment Environment
	Log         Log
	Backend     Backend `envPrefix:"BACKEND_"`
	Stripe      Stripe  `envPrefix:"STRIPE_"`
	Stub        Stub    `envPrefix:"STUB_"`

	SessionDBPath string `env:"SESSION_DB_PATH" envDefault:"storefront-session.db"`
}

type Backend struct {
	BaseURL string `env:"BASE_URL" envDefault:"http://127.0.0.1:8000/api"`
}

type Stripe struct {
	BaseApiURL     string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	PublishableKey string `env:"PUBLISHABLE_KEY"`
}

// Stub configures the local development backend, not the client itself.
type Stub struct {
	Host      string `env:"HOST" envDefault:"0.0.0.0"`
	Port      string `env:"PORT" envDefault:"8000"`
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-do-not-use"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}
