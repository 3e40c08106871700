package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// DefaultReplyDelay is how long the typing indicator shows before a reply.
const DefaultReplyDelay = 1500 * time.Millisecond

const maxPending = 32

var (
	ErrClosed = errors.New("chat session closed")
	ErrBusy   = errors.New("too many pending replies")
)

// Role identifies who sent a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one transcript entry.
type Message struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Rule      string    `json:"rule,omitempty"`
	ArticleID string    `json:"article_id,omitempty"`
	At        time.Time `json:"at"`
}

type pendingReply struct {
	due   time.Time
	match Match
}

// Session owns one transcript. Each accepted submission appends the user
// message immediately and the bot reply after the reply delay. Replies are
// produced by a single worker in submission order and are cancelled when the
// session is closed.
type Session struct {
	selector *Selector
	delay    time.Duration
	now      func() time.Time
	onReply  func(Message, Match)

	mu         sync.Mutex
	transcript []Message
	pending    int
	closed     bool
	subs       map[int]chan Message
	nextSub    int

	queue  chan pendingReply
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Session.
type Option func(*Session)

// WithDelay overrides the reply delay.
func WithDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// WithReplyHook registers a callback invoked after each bot reply is
// appended. It runs on the worker goroutine.
func WithReplyHook(fn func(Message, Match)) Option {
	return func(s *Session) { s.onReply = fn }
}

// NewSession starts a chat session. Call Close to release its worker.
func NewSession(selector *Selector, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		selector: selector,
		delay:    DefaultReplyDelay,
		now:      time.Now,
		subs:     make(map[int]chan Message),
		queue:    make(chan pendingReply, maxPending),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.run()
	return s
}

// Submit appends the user's message and schedules the reply. Blank input is
// ignored: ok is false and nothing is appended or scheduled.
func (s *Session) Submit(text string) (msg Message, ok bool, err error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Message{}, false, ErrClosed
	}
	if s.pending >= maxPending {
		return Message{}, false, ErrBusy
	}

	now := s.now()
	msg = Message{Role: RoleUser, Text: text, At: now}
	match := s.selector.Select(text)

	s.queue <- pendingReply{due: now.Add(s.delay), match: match}
	s.pending++
	s.appendLocked(msg)
	return msg, true, nil
}

func (s *Session) run() {
	defer close(s.done)

	for {
		var p pendingReply
		select {
		case <-s.ctx.Done():
			return
		case p = <-s.queue:
		}

		timer := time.NewTimer(time.Until(p.due))
		select {
		case <-s.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		reply := Message{
			Role:      RoleBot,
			Text:      p.match.Response,
			Rule:      p.match.Rule,
			ArticleID: p.match.ArticleID,
			At:        s.now(),
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		s.pending--
		s.appendLocked(reply)
		s.mu.Unlock()

		if s.onReply != nil {
			s.onReply(reply, p.match)
		}
	}
}

func (s *Session) appendLocked(m Message) {
	s.transcript = append(s.transcript, m)
	for _, ch := range s.subs {
		select {
		case ch <- m:
		default:
		}
	}
}

// Transcript returns a copy of the messages so far.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.transcript...)
}

// Typing reports whether a reply is still being composed.
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending > 0
}

// Subscribe returns a channel receiving every message appended from now on
// and a function that ends the subscription. Slow readers miss messages
// rather than blocking the session.
func (s *Session) Subscribe() (<-chan Message, func()) {
	_, ch, cancel := s.Follow()
	return ch, cancel
}

// Follow is Subscribe plus the transcript up to the moment of subscribing,
// taken atomically so no message is both in the history and on the channel.
func (s *Session) Follow() ([]Message, <-chan Message, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append([]Message(nil), s.transcript...)
	ch := make(chan Message, 16)
	if s.closed {
		close(ch)
		return history, ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return history, ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close cancels every pending reply and ends all subscriptions. It waits for
// the worker to exit, so no reply is appended after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	s.pending = 0
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.mu.Unlock()

	s.cancel()
	<-s.done
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
