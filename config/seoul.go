package config

import (
	"strings"
	"time"
)

// SeoulAPIConfig contains configuration for the Seoul open-API job client.
//
// The upstream API embeds the key in the request path rather than a header:
// {base}/{key}/xml/{endpoint}/{start}/{end}.
type SeoulAPIConfig struct {
	// BaseURL is the Seoul open-API host.
	BaseURL string `env:"SEOUL_API_BASE_URL" envDefault:"http://openapi.seoul.go.kr:8088"`

	// Key is the issued API key. Required.
	Key string `env:"SEOUL_API_KEY"`

	// Endpoint is the dataset name segment of the request path.
	Endpoint string `env:"SEOUL_API_ENDPOINT" envDefault:"GetJobInfo"`

	// Timeout is the per-request connect/read timeout.
	Timeout time.Duration `env:"SEOUL_API_TIMEOUT" envDefault:"10s"`

	// Retries is the number of additional attempts after a transient failure.
	Retries int `env:"SEOUL_API_RETRIES" envDefault:"3"`

	// MaxBodyBytes caps the in-memory response size. A full 1000-row page
	// runs well under 4 MiB; the default keeps margin above that because the
	// first, smaller bound truncated full pages.
	MaxBodyBytes int64 `env:"SEOUL_API_MAX_BODY_BYTES" envDefault:"4194304"`
}

// Sanitize applies guardrails to Seoul API configuration values.
func (c *SeoulAPIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.Key = strings.TrimSpace(c.Key)
	c.Endpoint = strings.Trim(strings.TrimSpace(c.Endpoint), "/")
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Retries < 0 {
		c.Retries = 0
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 4 << 20
	}
}
