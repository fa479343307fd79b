package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Unlike secrets in production deployments, every
// variable has a local-development default so the app starts with nothing
// but a running MariaDB; the defaults must never be used in production.
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	SecretKey     string        // key protecting session and flash cookies
	DBUser        string        // database username
	DBPass        string        // database password (optional)
	DBHost        string        // database host address
	DBPort        string        // database port number
	DBName        string        // database name
	BcryptCost    int           // bcrypt cost for password hashing
	MaxAttempts   int           // failed logins allowed before lockout
	BlockDuration time.Duration // how long a locked username stays locked
	SessionTTL    time.Duration // server-side session lifetime
	RememberTTL   time.Duration // session lifetime with "remember me" checked
}

// Load reads configuration values from environment variables and returns a
// Config. Missing variables fall back to local-development defaults; the
// secret key default is flagged loudly because cookies signed with it are
// forgeable by anyone who has read this file.
func Load() Config {
	cfg := Config{
		Env:           envStr("APP_ENV", "dev"),
		Port:          envStr("APP_PORT", "5000"),
		SecretKey:     envStr("SECRET_KEY", "dev_key"),
		DBUser:        envStr("DB_USER", "todo_user"),
		DBPass:        envStr("DB_PASS", "motdepasse"),
		DBHost:        envStr("DB_HOST", "localhost"),
		DBPort:        envStr("DB_PORT", "3306"),
		DBName:        envStr("DB_NAME", "todo_db"),
		BcryptCost:    envInt("BCRYPT_COST", 12),
		MaxAttempts:   envInt("MAX_LOGIN_ATTEMPTS", 5),
		BlockDuration: envDur("LOGIN_BLOCK_DURATION", 5*time.Minute),
		SessionTTL:    envDur("SESSION_TTL", 24*time.Hour),
		RememberTTL:   envDur("REMEMBER_TTL", 30*24*time.Hour),
	}
	if cfg.SecretKey == "dev_key" && cfg.Env != "dev" {
		log.Printf("[WARN] SECRET_KEY is the dev default in env=%s; set a real secret", cfg.Env)
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
