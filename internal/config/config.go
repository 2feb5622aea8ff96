package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values, one field per
// environment variable.  Strings for identifiers and secrets, ints for
// durations and costs.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	JWTSecret       string // secret used to sign JWTs
	PhoneHashSecret string // key for the landlord phone HMAC
	DefaultCC       string // default phone country code, e.g. "972"
	AccessTTLMin    int    // access token time-to-live in minutes
	RefreshTTLDays  int    // refresh token time-to-live in days
	BcryptCost      int    // bcrypt cost for password hashing
}

// Load reads configuration from the environment.  Required variables
// are enforced by must(); a missing one exits with a fatal log message
// so the process never runs half-configured.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),                   // environment (dev/test/prod)
		Port:            must("APP_PORT"),                  // port to bind the HTTP server
		DBUser:          must("DB_USER"),                   // database user
		DBPass:          os.Getenv("DB_PASS"),              // database password (empty allowed)
		DBHost:          must("DB_HOST"),                   // database host
		DBPort:          must("DB_PORT"),                   // database port
		DBName:          must("DB_NAME"),                   // database name
		JWTSecret:       must("JWT_SECRET"),                // secret used for signing JWTs
		PhoneHashSecret: must("PHONE_HASH_SECRET"),         // HMAC key for landlord identity hashes
		DefaultCC:       envStr("DEFAULT_COUNTRY_CODE", "972"), // country code assumed for local numbers
		AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
		RefreshTTLDays:  mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
		BcryptCost:      mustInt("BCRYPT_COST"),            // bcrypt cost factor
	}
}

// must retrieves a required environment variable.  Unset or empty means
// a fatal error and exit.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is must() plus integer conversion.  A non-numeric value is a
// fatal error.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
