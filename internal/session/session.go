// Package session owns per-visitor portal state: the browse selection, the
// chat transcript and the one-shot report acknowledgment.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/nextgen-ti/kbportal/internal/audit"
	"github.com/nextgen-ti/kbportal/internal/browse"
	"github.com/nextgen-ti/kbportal/internal/catalog"
	"github.com/nextgen-ti/kbportal/internal/chat"
	"github.com/nextgen-ti/kbportal/internal/report"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrChatInactive = errors.New("chat screen is not open")
	ErrRateLimited  = errors.New("too many chat messages, slow down")
)

// Options are shared by every session of a Store.
type Options struct {
	Catalog  *catalog.Catalog
	Selector *chat.Selector

	// ReplyDelay is passed to each chat session. Zero means chat.DefaultReplyDelay.
	ReplyDelay time.Duration
	// KeepTranscript keeps the chat session alive when the visitor leaves
	// the chat screen. When false, leaving closes it and drops pending replies.
	KeepTranscript bool
	// RatePerMinute bounds chat submissions per session. Zero disables the limit.
	RatePerMinute int

	Recorder audit.Recorder
	Logger   *log.Logger
}

// Snapshot is everything needed to render one page for a session.
type Snapshot struct {
	ID         string                 `json:"id"`
	View       browse.View            `json:"view"`
	Transcript []chat.Message         `json:"transcript"`
	Typing     bool                   `json:"typing"`
	Flash      *report.Acknowledgment `json:"flash,omitempty"`
}

// Session is one visitor's portal state. Every method is atomic with respect
// to the others.
type Session struct {
	id   string
	opts *Options

	mu      sync.Mutex
	state   *browse.State
	chat    *chat.Session
	limiter *rate.Limiter
	flash   *report.Acknowledgment
}

func newSession(id string, opts *Options) *Session {
	limit := rate.Inf
	burst := 1
	if opts.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RatePerMinute))
		burst = opts.RatePerMinute
	}
	return &Session{
		id:      id,
		opts:    opts,
		state:   browse.NewState(opts.Catalog),
		limiter: rate.NewLimiter(limit, burst),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// SetCategory filters by category ("" for all) and shows the listing.
func (s *Session) SetCategory(c catalog.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Screen()
	if err := s.state.SetCategory(c); err != nil {
		return err
	}
	s.screenChangedLocked(prev)
	return nil
}

// SetSearchQuery replaces the free-text filter.
func (s *Session) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetSearchQuery(q)
}

// SelectArticle opens an article's detail screen.
func (s *Session) SelectArticle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Screen()
	if err := s.state.SelectArticle(id); err != nil {
		return err
	}
	s.screenChangedLocked(prev)

	a, _ := s.state.SelectedArticle()
	s.record(ctx, audit.Entry{
		ActorType: audit.ActorVisitor,
		ActorID:   s.id,
		Action:    audit.ActionArticleViewed,
		Scope:     audit.ScopeArticle,
		ScopeID:   a.ID,
		Summary:   a.Title,
	})
	return nil
}

// Navigate switches screens. Entering the chat screen starts a chat session
// if none is running.
func (s *Session) Navigate(screen browse.Screen) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Screen()
	if err := s.state.Navigate(screen); err != nil {
		return err
	}
	s.screenChangedLocked(prev)
	return nil
}

// ResetFilters clears the filters and returns to the listing.
func (s *Session) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Screen()
	s.state.ResetFilters()
	s.screenChangedLocked(prev)
}

// SubmitReport validates and acknowledges an incident report. On success the
// visitor is returned to the listing and the acknowledgment is shown once.
// On failure nothing changes and the error is a *report.ValidationError.
func (s *Session) SubmitReport(ctx context.Context, f report.Form) (report.Acknowledgment, error) {
	ack, err := report.Submit(f)
	if err != nil {
		var verr *report.ValidationError
		if errors.As(err, &verr) {
			s.record(ctx, audit.Entry{
				ActorType: audit.ActorVisitor,
				ActorID:   s.id,
				Action:    audit.ActionReportRejected,
				Scope:     audit.ScopeReport,
				Summary:   fmt.Sprintf("%d invalid fields", len(verr.Fields)),
			})
		}
		return report.Acknowledgment{}, err
	}

	s.mu.Lock()
	prev := s.state.Screen()
	// Navigating to the listing never fails.
	_ = s.state.Navigate(browse.ScreenListing)
	s.screenChangedLocked(prev)
	s.flash = &ack
	s.mu.Unlock()

	s.record(ctx, audit.Entry{
		ActorType: audit.ActorVisitor,
		ActorID:   s.id,
		Action:    audit.ActionReportAcknowledged,
		Scope:     audit.ScopeReport,
		ScopeID:   ack.Reference,
		Summary:   string(ack.Type),
		Detail:    "urgency=" + ack.Urgency.String(),
	})
	return ack, nil
}

// SubmitChat sends an utterance to the assistant. Blank input is ignored
// (ok is false). The chat screen must be open.
func (s *Session) SubmitChat(text string) (chat.Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chat == nil || s.state.Screen() != browse.ScreenChat {
		return chat.Message{}, false, ErrChatInactive
	}
	if !s.limiter.Allow() {
		return chat.Message{}, false, ErrRateLimited
	}
	return s.chat.Submit(text)
}

// Chat returns the running chat session, or nil.
func (s *Session) Chat() *chat.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat
}

// Snapshot renders the session state. The scroll-to-top effect and the flash
// acknowledgment are consumed.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.id,
		View:       s.state.View(),
		Transcript: []chat.Message{},
		Flash:      s.flash,
	}
	if s.chat != nil {
		snap.Transcript = s.chat.Transcript()
		snap.Typing = s.chat.Typing()
	}
	s.flash = nil
	return snap
}

// Close stops the chat session, cancelling pending replies.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chat != nil {
		s.chat.Close()
		s.chat = nil
	}
}

func (s *Session) screenChangedLocked(prev browse.Screen) {
	cur := s.state.Screen()
	if prev == browse.ScreenChat && cur != browse.ScreenChat && !s.opts.KeepTranscript && s.chat != nil {
		s.chat.Close()
		s.chat = nil
	}
	if cur == browse.ScreenChat && s.chat == nil {
		s.chat = s.newChat()
	}
}

func (s *Session) newChat() *chat.Session {
	opts := []chat.Option{chat.WithReplyHook(func(_ chat.Message, m chat.Match) {
		s.record(context.Background(), audit.Entry{
			ActorType: audit.ActorAssistant,
			ActorID:   "assistant",
			Action:    audit.ActionChatReplied,
			Scope:     audit.ScopeChat,
			ScopeID:   s.id,
			Summary:   m.Rule,
			Detail:    m.ArticleID,
		})
	})}
	if s.opts.ReplyDelay > 0 {
		opts = append(opts, chat.WithDelay(s.opts.ReplyDelay))
	}
	return chat.NewSession(s.opts.Selector, opts...)
}

func (s *Session) record(ctx context.Context, e audit.Entry) {
	if s.opts.Recorder == nil {
		return
	}
	if err := s.opts.Recorder.Log(ctx, e); err != nil && s.opts.Logger != nil {
		s.opts.Logger.Warn("audit write failed", "action", e.Action, "err", err)
	}
}
