package config

import "time"

// TranscriptPolicy controls what happens to the chat transcript when the
// user leaves the chat screen.
type TranscriptPolicy string

const (
	TranscriptReset TranscriptPolicy = "reset"
	TranscriptKeep  TranscriptPolicy = "keep"
)

// Config is the top-level kbportal configuration, corresponding to kbportal.yml.
type Config struct {
	Server    ServerConfig  `yaml:"server" koanf:"server"`
	Session   SessionConfig `yaml:"session" koanf:"session"`
	Chat      ChatConfig    `yaml:"chat" koanf:"chat"`
	Audit     AuditConfig   `yaml:"audit" koanf:"audit"`
	SurveyURL string        `yaml:"survey_url" koanf:"survey_url"`
	LogLevel  string        `yaml:"log_level" koanf:"log_level"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `yaml:"port" koanf:"port"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RequestTimeout  time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
}

// SessionConfig holds visitor session settings.
type SessionConfig struct {
	TTL        time.Duration `yaml:"ttl" koanf:"ttl"`
	CookieName string        `yaml:"cookie_name" koanf:"cookie_name"`
}

// ChatConfig holds assistant widget settings.
type ChatConfig struct {
	ReplyDelay    time.Duration    `yaml:"reply_delay" koanf:"reply_delay"`
	Transcript    TranscriptPolicy `yaml:"transcript" koanf:"transcript"`
	RatePerMinute int              `yaml:"rate_per_minute" koanf:"rate_per_minute"`
}

// AuditConfig controls the SQLite activity log.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
	// Retention is how long entries are kept. Zero keeps them forever.
	Retention time.Duration `yaml:"retention" koanf:"retention"`
}
