package config // package config loads application configuration from environment variables

import (
	"bytes"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values, loaded once at startup and
// read-only thereafter. Signing material may be supplied inline
// (JWT_ENCODE_KEY / JWT_DECODE_KEY) or as a file path (the *_FILE variants);
// the decode key falls back to the encode key for symmetric setups.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	JWTAlgorithm        string   // signing algorithm (e.g. HS256, RS256)
	JWTEncodeKey        []byte   // signing key material
	JWTDecodeKey        []byte   // verification key material
	JWTAcceptAlgorithms []string // algorithms admitted during verification

	AccessTokenTTL  time.Duration // lifetime of access tokens
	RefreshTokenTTL time.Duration // lifetime of refresh tokens
	BcryptCost      int           // bcrypt cost for password hashing
}

// Load reads configuration from the environment. Missing required values
// cause the process to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"), // empty allowed
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		JWTAlgorithm:    must("JWT_ALGORITHM"),
		AccessTokenTTL:  time.Duration(intOr("ACCESS_TOKEN_TTL_MIN", 3)) * time.Minute,
		RefreshTokenTTL: time.Duration(intOr("REFRESH_TOKEN_TTL_DAYS", 1)) * 24 * time.Hour,
		BcryptCost:      intOr("BCRYPT_COST", 12),
	}

	cfg.JWTEncodeKey = keyMaterial("JWT_ENCODE_KEY", "JWT_ENCODE_KEY_FILE")
	if len(cfg.JWTEncodeKey) == 0 {
		log.Fatalf("missing JWT_ENCODE_KEY or JWT_ENCODE_KEY_FILE")
	}
	cfg.JWTDecodeKey = keyMaterial("JWT_DECODE_KEY", "JWT_DECODE_KEY_FILE")
	if len(cfg.JWTDecodeKey) == 0 {
		cfg.JWTDecodeKey = cfg.JWTEncodeKey
	}

	if raw := os.Getenv("JWT_ACCEPT_ALGORITHMS"); raw != "" {
		for _, alg := range strings.Split(raw, ",") {
			if alg = strings.TrimSpace(alg); alg != "" {
				cfg.JWTAcceptAlgorithms = append(cfg.JWTAcceptAlgorithms, alg)
			}
		}
	} else {
		cfg.JWTAcceptAlgorithms = []string{cfg.JWTAlgorithm}
	}

	return cfg
}

// keyMaterial returns the inline value if set, otherwise the contents of
// the file named by fileVar with trailing newlines stripped.
func keyMaterial(inlineVar, fileVar string) []byte {
	if v := os.Getenv(inlineVar); v != "" {
		return []byte(v)
	}
	path := os.Getenv(fileVar)
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading %s (%s): %v", fileVar, path, err)
	}
	return bytes.TrimRight(b, "\n")
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr parses an optional integer environment variable, falling back to
// def when unset. A set-but-invalid value is fatal.
func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
