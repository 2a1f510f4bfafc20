package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"eleven"`
	Password string `env:"PASSWORD"                envDefault:"eleven"`
	Name     string `env:"NAME"                    envDefault:"elevenjob"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration. Redis is only used for the
// ingestion run lock; the pipeline itself runs entirely against Postgres.
type RedisConfig struct {
	Enabled  bool   `env:"ENABLED"  envDefault:"false"`
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// LockConfig controls the Redis-backed run lock that serializes
// concurrent ingestion runs against the same store.
type LockConfig struct {
	// Key is the Redis key holding the lock.
	Key string `env:"INGEST_LOCK_KEY" envDefault:"elevenjob:ingest:lock"`

	// TTL bounds how long a crashed run can hold the lock.
	TTL time.Duration `env:"INGEST_LOCK_TTL" envDefault:"30m"`
}

// Sanitize applies guardrails to lock configuration values.
func (c *LockConfig) Sanitize() {
	if c.Key == "" {
		c.Key = "elevenjob:ingest:lock"
	}
	if c.TTL <= 0 {
		c.TTL = 30 * time.Minute
	}
}
