package config

import "time"

// IngestConfig contains ingestion batch configuration.
type IngestConfig struct {
	// PageSize is the number of records requested per API call. The upstream
	// API serves at most 1000 records per window.
	PageSize int `env:"INGEST_PAGE_SIZE" envDefault:"1000"`

	// MaxCalls is a safety ceiling on API calls per run, not a business
	// limit. A run that hits it ends cleanly with a warning.
	MaxCalls int `env:"INGEST_MAX_CALLS" envDefault:"1000"`

	// CallDelay is the pause between successive page fetches, per the
	// upstream API's usage policy.
	CallDelay time.Duration `env:"INGEST_CALL_DELAY" envDefault:"1s"`

	// DetailURLPrefix is prepended to a posting's external id to derive its
	// public detail page URL.
	DetailURLPrefix string `env:"INGEST_DETAIL_URL_PREFIX" envDefault:"https://job.seoul.go.kr/www/jobInfo/getJobInfoDetail.do?joReqstNo="`
}

// Sanitize applies guardrails to ingestion configuration values.
func (c *IngestConfig) Sanitize() {
	if c.PageSize < 1 {
		c.PageSize = 1
	}
	if c.PageSize > 1000 {
		c.PageSize = 1000
	}
	if c.MaxCalls < 1 {
		c.MaxCalls = 1
	}
	if c.CallDelay < 0 {
		c.CallDelay = 0
	}
}
