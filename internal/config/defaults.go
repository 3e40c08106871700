package config

import "time"

// DefaultPath is where init writes the config and commands look for it.
const DefaultPath = "kbportal.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			RequestTimeout: 60 * time.Second,
		},
		Session: SessionConfig{
			TTL:        30 * time.Minute,
			CookieName: "kb_session",
		},
		Chat: ChatConfig{
			ReplyDelay:    1500 * time.Millisecond,
			Transcript:    TranscriptReset,
			RatePerMinute: 30,
		},
		Audit: AuditConfig{
			Enabled:   true,
			Path:      "data/kbportal.db",
			Retention: 90 * 24 * time.Hour,
		},
		SurveyURL: "https://forms.example.com/nextgen-ti/encuesta-satisfaccion",
		LogLevel:  "info",
	}
}
