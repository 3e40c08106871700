package web

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/nextgen-ti/kbportal/internal/chat"
	"github.com/nextgen-ti/kbportal/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type    string `json:"type"` // "message"
	Content string `json:"content"`
}

// wsEvent is the outgoing WebSocket message format.
type wsEvent struct {
	Type     string         `json:"type"` // "history", "message", "typing", "error" or "closed"
	Messages []chat.Message `json:"messages,omitempty"`
	Message  *chat.Message  `json:"message,omitempty"`
	Typing   bool           `json:"typing"`
	Content  string         `json:"content,omitempty"`
}

// wsConn serialises writes; gorilla allows one concurrent writer.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(ev wsEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(ev)
}

// handleWebSocket streams the session's chat transcript. The chat screen must
// be open; the socket ends when the chat session is closed.
func (p *Portal) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess := p.session(w, r)

	var header http.Header
	if cookies := w.Header().Values("Set-Cookie"); len(cookies) > 0 {
		header = http.Header{"Set-Cookie": cookies}
		w.Header().Del("Set-Cookie")
	}
	raw, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		p.logger.Warn("websocket upgrade", "err", err)
		return
	}
	conn := &wsConn{conn: raw}
	defer raw.Close()

	cs := sess.Chat()
	if cs == nil {
		p.sendError(conn, session.ErrChatInactive.Error())
		return
	}

	history, msgs, unsubscribe := cs.Follow()
	defer unsubscribe()

	if history == nil {
		history = []chat.Message{}
	}
	if err := conn.send(wsEvent{Type: "history", Messages: history, Typing: cs.Typing()}); err != nil {
		return
	}

	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		p.pump(conn, cs, msgs)
	}()

	for {
		_, data, err := raw.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Warn("websocket read", "err", err)
			}
			break
		}

		var req wsRequest
		if err := json.Unmarshal(data, &req); err != nil {
			p.sendError(conn, "invalid message format")
			continue
		}

		switch req.Type {
		case "message":
			_, ok, err := sess.SubmitChat(req.Content)
			if err != nil {
				p.sendError(conn, err.Error())
			} else if !ok {
				p.sendError(conn, "content is required")
			}
		default:
			p.sendError(conn, "unknown message type: "+req.Type)
		}
	}

	unsubscribe()
	<-pumpDone
}

// pump forwards transcript messages and the typing state until the
// subscription ends.
func (p *Portal) pump(conn *wsConn, cs *chat.Session, msgs <-chan chat.Message) {
	for m := range msgs {
		m := m
		if err := conn.send(wsEvent{Type: "message", Message: &m}); err != nil {
			return
		}
		if err := conn.send(wsEvent{Type: "typing", Typing: cs.Typing()}); err != nil {
			return
		}
	}
	if cs.Closed() {
		conn.send(wsEvent{Type: "closed"})
		conn.conn.Close()
	}
}

func (p *Portal) sendError(conn *wsConn, message string) {
	if err := conn.send(wsEvent{Type: "error", Content: message}); err != nil {
		p.logger.Warn("websocket write error", "err", err)
	}
}
