package scanner

import "time"

// DefaultUserAgent identifies the scanner to remote servers on every
// outbound request, for both the page fetch and the per-link probes.
const DefaultUserAgent = "clearout-bolt/1.0 (+https://github.com/thehouseofcodeinjava/clearout.bio.bolt)"

// Config holds scanner configuration. Zero values are replaced with
// defaults by New.
type Config struct {
	Concurrency      int           // Peak concurrent probes per scan (default 10)
	PageFetchTimeout time.Duration // Timeout for fetching the bio page (default 15s)
	ProbeTimeout     time.Duration // Per-link probe timeout (default 10s)
	RateLimit        int           // Outbound probes per second; <= 0 disables limiting
	UserAgent        string        // Client identifier sent on every request
	RespectRobots    bool          // Check robots.txt before fetching the bio page
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency:      10,
		PageFetchTimeout: 15 * time.Second,
		ProbeTimeout:     10 * time.Second,
		UserAgent:        DefaultUserAgent,
	}
}

func (cfg Config) withDefaults() Config {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}
	if cfg.PageFetchTimeout <= 0 {
		cfg.PageFetchTimeout = 15 * time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return cfg
}
