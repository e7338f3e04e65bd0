package devserver

import "time"

// Default values for Config.
const (
	DefaultAddr            = ":8080"
	DefaultTickInterval    = time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxLogBytes     = 1 << 20
)

// Config holds the demo server settings.
type Config struct {
	Addr            string        // listen address
	PublicDir       string        // served under /public/
	SourceDir       string        // served under /source/
	LogDir          string        // POST /yoru writes here
	Title           string        // shell page title
	TickInterval    time.Duration // counter stream period
	ShutdownTimeout time.Duration
	MaxLogBytes     int64   // request body limit for /yoru
	RateRPS         float64 // POST requests per second per client, 0 disables
	RateBurst       int
	Dev             bool
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() *Config {
	return &Config{
		Addr:            DefaultAddr,
		PublicDir:       "public",
		SourceDir:       "source",
		LogDir:          "logs",
		Title:           "hashspa",
		TickInterval:    DefaultTickInterval,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxLogBytes:     DefaultMaxLogBytes,
		RateRPS:         10,
		RateBurst:       20,
	}
}
