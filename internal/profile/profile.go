package profile

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/nursery/server/timezone"
)

const (
	defaultRequestTimeout = 12 * time.Second
	defaultRetryCount     = 2
	defaultRateLimit      = 10
	defaultRateBurst      = 20
)

// Profile is the configuration to start the assistant server and CLI.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Version is the current version of server
	Version string

	// BaseURL is the root of the Baby Buddy instance, e.g. https://baby.example.com
	BaseURL string
	// APIToken authenticates against the Baby Buddy REST API.
	APIToken string
	// Timezone used when a bare clock time like "14:30" is given. Empty means process-local.
	Timezone string

	RequestTimeout time.Duration // per-request timeout for ActivityStore calls
	RetryCount     int           // transport-level retries for idempotent reads
	RateLimit      float64       // inbound tool calls per second, per client
	RateBurst      int
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// FromEnv fills connection settings that were not provided through flags or
// NURSERY_* variables. Supports the BABY_BUDDY_* names used by existing installs.
func (p *Profile) FromEnv() {
	getEnvWithFallback := func(keys ...string) string {
		for _, key := range keys {
			if val := os.Getenv(key); val != "" {
				return val
			}
		}
		return ""
	}

	if p.BaseURL == "" {
		p.BaseURL = getEnvWithFallback("BABY_BUDDY_URL", "BABYBUDDY_URL")
	}
	if p.APIToken == "" {
		p.APIToken = getEnvWithFallback("BABY_BUDDY_API_KEY", "BABY_BUDDY_API_TOKEN", "BABYBUDDY_API_KEY")
	}
	if p.Timezone == "" {
		p.Timezone = os.Getenv("TZ")
	}
}

// Location returns the configured timezone, falling back to process-local.
func (p *Profile) Location() *time.Location {
	loc, _ := timezone.ParseTimezone(p.Timezone)
	return loc
}

func checkBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", errors.New("baby buddy base URL is required (set NURSERY_BASE_URL or BABY_BUDDY_URL)")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrapf(err, "invalid base URL %s", raw)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return "", errors.Errorf("base URL must be absolute, got: %s", raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.Errorf("base URL scheme must be http or https, got: %s", parsed.Scheme)
	}
	// The API root is appended by the driver.
	return strings.TrimSuffix(raw, "/api"), nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	baseURL, err := checkBaseURL(p.BaseURL)
	if err != nil {
		return err
	}
	p.BaseURL = baseURL

	if strings.TrimSpace(p.APIToken) == "" {
		return errors.New("baby buddy API token is required (set NURSERY_API_TOKEN or BABY_BUDDY_API_KEY)")
	}

	if !timezone.IsValidTimezone(p.Timezone) {
		return errors.Errorf("unknown timezone %q", p.Timezone)
	}

	if p.RequestTimeout <= 0 {
		p.RequestTimeout = defaultRequestTimeout
	}
	if p.RetryCount < 0 {
		p.RetryCount = defaultRetryCount
	}
	if p.RateLimit <= 0 {
		p.RateLimit = defaultRateLimit
	}
	if p.RateBurst <= 0 {
		p.RateBurst = defaultRateBurst
	}
	return nil
}
