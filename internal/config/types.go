package config

// Config is the restlab configuration file.
type Config struct {
	Version int           `yaml:"version"`
	Storage StorageConfig `yaml:"storage"`
	Tally   TallyConfig   `yaml:"tally"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Quizzes QuizzesConfig `yaml:"quizzes"`

	// Root is the directory holding .restlab; relative paths resolve against it.
	Root string `yaml:"-"`
}

// StorageConfig selects where quiz progress is kept.
type StorageConfig struct {
	Backend  string `yaml:"backend"`
	Dir      string `yaml:"dir"`
	DSN      string `yaml:"dsn"`
	RedisURL string `yaml:"redis_url"`
	Prefix   string `yaml:"prefix"`
}

// TallyConfig controls the local attempts database.
type TallyConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ServerConfig configures `restlab serve`.
type ServerConfig struct {
	Addr        string          `yaml:"addr"`
	Latency     string          `yaml:"latency"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	CORSOrigins []string        `yaml:"cors_origins"`
}

// RateLimitConfig is a token bucket for the demo API. An explicit rps of 0
// turns limiting off.
type RateLimitConfig struct {
	RPS   *float64 `yaml:"rps"`
	Burst int      `yaml:"burst"`
}

// LogConfig configures the zap logger and its rotated file.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   *bool  `yaml:"compress"`
}

// QuizzesConfig lists extra question set files.
type QuizzesConfig struct {
	Extra []string `yaml:"extra"`
}

// TallyEnabled reports whether attempts are recorded.
func (c Config) TallyEnabled() bool {
	return c.Tally.Enabled == nil || *c.Tally.Enabled
}

// RateLimitRPS returns the API request rate, DefaultRPS when unset.
func (c Config) RateLimitRPS() float64 {
	if c.Server.RateLimit.RPS == nil {
		return DefaultRPS
	}
	return *c.Server.RateLimit.RPS
}

// LogCompress reports whether rotated logs are gzipped.
func (c Config) LogCompress() bool {
	return c.Log.Compress == nil || *c.Log.Compress
}
