package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/esim-portal/esim_portal/internal/esim"
)

const (
	defaultAppName       = "ESIMPortal"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultShutdownDelay = 10 * time.Second
	defaultLookupPerMin  = 30

	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
	lookupRateEnvVar       = "LOOKUP_RATE_LIMIT_PER_MIN"
	pbkdf2IterationsEnvVar = "MICROESIM_PBKDF2_ITERATIONS"
	pbkdf2KeyLengthEnvVar  = "MICROESIM_PBKDF2_KEY_LENGTH"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	RedisURL       string
	ShutdownPeriod time.Duration
	LookupPerMin   int

	// Vendor account material. Deliberately not validated here: per the
	// portal contract a missing credential surfaces as a config error on
	// the lookup itself, not as a startup failure.
	MicroesimAccountID string
	MicroesimSalt      string
	MicroesimSecretKey string
	ProductionAPIURL   string

	// PBKDF2 stretch overrides; zero means the signer defaults apply.
	PBKDF2Iterations int
	PBKDF2KeyLength  int
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:            getEnv("APP_NAME", defaultAppName),
		AppEnv:             getEnv("APP_ENV", defaultAppEnv),
		Port:               getEnv("PORT", defaultPort),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		RedisURL:           os.Getenv("REDIS_URL"),
		ShutdownPeriod:     defaultShutdownDelay,
		LookupPerMin:       defaultLookupPerMin,
		MicroesimAccountID: os.Getenv("MICROESIM_ACCOUNT_ID"),
		MicroesimSalt:      os.Getenv("MICROESIM_SALT"),
		MicroesimSecretKey: os.Getenv("MICROESIM_SECRET_KEY"),
		ProductionAPIURL:   os.Getenv("PRODUCTION_API_URL"),
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv(lookupRateEnvVar); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", lookupRateEnvVar, err)
		}
		cfg.LookupPerMin = n
	}

	if v := os.Getenv(pbkdf2IterationsEnvVar); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", pbkdf2IterationsEnvVar, err)
		}
		cfg.PBKDF2Iterations = n
	}

	if v := os.Getenv(pbkdf2KeyLengthEnvVar); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", pbkdf2KeyLengthEnvVar, err)
		}
		cfg.PBKDF2KeyLength = n
	}

	return cfg, nil
}

// Credentials assembles the vendor credentials for injection into the client.
func (c Config) Credentials() esim.Credentials {
	return esim.Credentials{
		AccountID: c.MicroesimAccountID,
		Salt:      c.MicroesimSalt,
		SecretKey: c.MicroesimSecretKey,
		BaseURL:   c.ProductionAPIURL,
	}
}

// KeyParams assembles the PBKDF2 overrides for the signer.
func (c Config) KeyParams() esim.KeyParams {
	return esim.KeyParams{Iterations: c.PBKDF2Iterations, KeyLength: c.PBKDF2KeyLength}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
