package audit

import (
	"context"
	"time"
)

// ActorType identifies who performed an action.
type ActorType string

const (
	ActorVisitor   ActorType = "visitor"
	ActorSystem    ActorType = "system"
	ActorAssistant ActorType = "assistant"
)

// Action describes what was done.
type Action string

const (
	ActionSessionStarted     Action = "session_started"
	ActionSessionExpired     Action = "session_expired"
	ActionArticleViewed      Action = "article_viewed"
	ActionReportAcknowledged Action = "report_acknowledged"
	ActionReportRejected     Action = "report_rejected"
	ActionChatReplied        Action = "chat_replied"
)

// Scope describes what an action applies to.
type Scope string

const (
	ScopeSession Scope = "session"
	ScopeArticle Scope = "article"
	ScopeReport  Scope = "report"
	ScopeChat    Scope = "chat"
)

// Entry is a single audit trail record. Entries never carry what a visitor
// typed: report contents and chat utterances stay in the session.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ActorType ActorType `json:"actor_type"`
	ActorID   string    `json:"actor_id"`
	Action    Action    `json:"action"`
	Scope     Scope     `json:"scope"`
	ScopeID   string    `json:"scope_id"`
	Summary   string    `json:"summary"`
	Detail    string    `json:"detail,omitempty"`
}

// Recorder is the write side of the audit trail.
type Recorder interface {
	Log(ctx context.Context, entry Entry) error
}
