package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// SessionDuration is the fixed lifetime of an access token from login.
const SessionDuration = 8 * time.Hour

// Login rate limiting window
const LoginRateLimitWindow = time.Minute

// Request body limit for JSON endpoints
const MaxRequestBodyBytes = 64 * 1024
