package app

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/pathfinder-tours/pathfinder/pkg/httpx"
	"github.com/pathfinder-tours/pathfinder/pkg/jwtx"
	"github.com/spf13/viper"
)

type Config struct {
	TokenSecret          string        // Required: HS256 shared secret, at least 32 bytes
	TokenIssuer          string        // Optional: iss claim (default: pathfinder)
	AccessTokenTTL       time.Duration // Optional: bearer token lifetime (default: 1h)
	ConfirmationTokenTTL time.Duration // Optional: confirmation and reset token lifetime (default: 24h)
	SessionMaxAge        time.Duration // Optional: cookie session lifetime (default: 1h)

	AdminEmail    string // Required: seeded admin account
	AdminPassword string // Required: seeded admin account

	CI           bool // Return lifecycle tokens in responses instead of mailing them
	StrictGuards bool // Check that the caller still exists on user and customer routes (default: true)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./api.db)
	PepperFile           string        // Optional: path to the password pepper file (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 4000)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	PublicURL            string        // Base URL used in mailed links (default: http://localhost:4000)

	SMTPHost     string // Optional: mail is logged instead of sent when empty
	SMTPPort     int    // default: 587
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	GoogleClientID     string // Optional: Google sign-in is off when empty
	GoogleClientSecret string
	GoogleCallbackURL  string
	CookieSecure       bool

	RateLimits httpx.RateLimits
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TOKEN_ISSUER", "pathfinder")
	v.SetDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL)
	v.SetDefault("CONFIRMATION_TOKEN_TTL", 24*time.Hour)
	v.SetDefault("SESSION_MAX_AGE", time.Hour)
	v.SetDefault("CI", false)
	v.SetDefault("STRICT_GUARDS", true)

	v.SetDefault("DATABASE_FILE", "api.db")
	v.SetDefault("PEPPER_FILE", "pepper")
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PORT", 4000)
	v.SetDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second)
	v.SetDefault("HOUSEKEEPING_INTERVAL", time.Hour)
	v.SetDefault("PUBLIC_URL", "http://localhost:4000")

	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM", "no-reply@pathfinder.local")
	v.SetDefault("COOKIE_SECURE", false)
}

// LoadConfig reads the configuration from the environment. Values found in
// a .env file in the working directory are used when the variable is unset.
func LoadConfig() Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // optional

	return loadConfig(v)
}

func loadConfig(v *viper.Viper) Config {
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		TokenSecret:          v.GetString("TOKEN_SECRET"),
		TokenIssuer:          v.GetString("TOKEN_ISSUER"),
		AccessTokenTTL:       v.GetDuration("ACCESS_TOKEN_TTL"),
		ConfirmationTokenTTL: v.GetDuration("CONFIRMATION_TOKEN_TTL"),
		SessionMaxAge:        v.GetDuration("SESSION_MAX_AGE"),
		AdminEmail:           v.GetString("ADMIN_EMAIL"),
		AdminPassword:        v.GetString("ADMIN_PASSWORD"),
		CI:                   v.GetBool("CI"),
		StrictGuards:         v.GetBool("STRICT_GUARDS"),
		DatabaseFile:         v.GetString("DATABASE_FILE"),
		PepperFile:           v.GetString("PEPPER_FILE"),
		Env:                  v.GetString("ENV"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
		Port:                 v.GetInt("PORT"),
		ShutdownGracePeriod:  v.GetDuration("SHUTDOWN_GRACE_PERIOD"),
		HousekeepingInterval: v.GetDuration("HOUSEKEEPING_INTERVAL"),
		PublicURL:            v.GetString("PUBLIC_URL"),
		SMTPHost:             v.GetString("SMTP_HOST"),
		SMTPPort:             v.GetInt("SMTP_PORT"),
		SMTPUsername:         v.GetString("SMTP_USERNAME"),
		SMTPPassword:         v.GetString("SMTP_PASSWORD"),
		MailFrom:             v.GetString("MAIL_FROM"),
		GoogleClientID:       v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:    v.GetString("GOOGLE_CALLBACK_URL"),
		CookieSecure:         v.GetBool("COOKIE_SECURE"),
	}

	defaults := httpx.DefaultRateLimits()
	cfg.RateLimits = httpx.RateLimits{
		Strict:   rateLimit(v, "STRICT", defaults.Strict),
		Moderate: rateLimit(v, "MODERATE", defaults.Moderate),
		Lenient:  rateLimit(v, "LENIENT", defaults.Lenient),
		Public:   rateLimit(v, "PUBLIC", defaults.Public),
	}

	return cfg
}

// rateLimit applies RATELIMIT_{prefix}_REQUESTS, _WINDOW_SEC and _BURST.
func rateLimit(v *viper.Viper, prefix string, base httpx.RateLimitConfig) httpx.RateLimitConfig {
	key := "RATELIMIT_" + prefix
	return base.Override(
		v.GetInt(key+"_REQUESTS"),
		time.Duration(v.GetInt(key+"_WINDOW_SEC"))*time.Second,
		v.GetInt(key+"_BURST"),
	)
}

// GoogleEnabled reports whether Google sign-in should be mounted.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != ""
}

// Validate reports missing or malformed required values.
func (c Config) Validate() error {
	rules := []*validation.FieldRules{
		validation.Field(&c.TokenSecret, validation.Required, validation.Length(jwtx.MinSecretLength, 0)),
		validation.Field(&c.AdminEmail, validation.Required),
		validation.Field(&c.AdminPassword, validation.Required),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	}
	if c.GoogleEnabled() {
		rules = append(rules,
			validation.Field(&c.GoogleClientSecret, validation.Required),
			validation.Field(&c.GoogleCallbackURL, validation.Required),
		)
	}
	return validation.ValidateStruct(&c, rules...)
}
