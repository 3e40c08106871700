package web

import (
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/nextgen-ti/kbportal/internal/browse"
	"github.com/nextgen-ti/kbportal/internal/catalog"
	"github.com/nextgen-ti/kbportal/internal/chat"
	"github.com/nextgen-ti/kbportal/internal/report"
	"github.com/nextgen-ti/kbportal/internal/session"
)

func setupRouter(t *testing.T) chi.Router {
	t.Helper()

	c := catalog.Default()
	store := session.NewStore(session.Options{
		Catalog:    c,
		ReplyDelay: 10 * time.Millisecond,
	}, time.Minute)
	t.Cleanup(store.CloseAll)

	p, err := New(Config{SurveyURL: "https://forms.example.com/encuesta"}, c, store, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := chi.NewRouter()
	p.RegisterRoutes(r)
	return r
}

// visitor replays requests against the router carrying the session cookie.
type visitor struct {
	t      *testing.T
	r      chi.Router
	cookie *http.Cookie
}

func newVisitor(t *testing.T) *visitor {
	return &visitor{t: t, r: setupRouter(t)}
}

func (v *visitor) do(req *http.Request) *httptest.ResponseRecorder {
	v.t.Helper()
	if v.cookie != nil {
		req.AddCookie(v.cookie)
	}
	w := httptest.NewRecorder()
	v.r.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == DefaultCookieName {
			v.cookie = c
		}
	}
	return w
}

func (v *visitor) get(path string) *httptest.ResponseRecorder {
	return v.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (v *visitor) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return v.do(req)
}

func (v *visitor) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return v.do(req)
}

func (v *visitor) snapshot() session.Snapshot {
	v.t.Helper()
	w := v.get("/api/session")
	var snap session.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		v.t.Fatalf("decoding snapshot: %v", err)
	}
	return snap
}

func expectRedirect(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestIndexRendersListing(t *testing.T) {
	v := newVisitor(t)
	w := v.get("/")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if v.cookie == nil {
		t.Fatal("expected a session cookie")
	}
	body := w.Body.String()
	if !strings.Contains(body, "Todos los Artículos") {
		t.Error("expected the unfiltered heading")
	}
	for _, a := range catalog.Default().Articles() {
		if !strings.Contains(body, a.ID) || !strings.Contains(body, html.EscapeString(a.Title)) {
			t.Errorf("listing missing article %s", a.ID)
		}
	}
}

func TestCategoryActionFiltersListing(t *testing.T) {
	v := newVisitor(t)
	v.get("/")

	expectRedirect(t, v.post("/actions/category", url.Values{"category": {"hardware"}}))

	body := v.get("/").Body.String()
	if !strings.Contains(body, "Artículos de Hardware") {
		t.Error("expected the Hardware heading")
	}
	snap := v.snapshot()
	if len(snap.View.Articles) != 1 || snap.View.Articles[0].Category != catalog.CategoryHardware {
		t.Errorf("unexpected articles %+v", snap.View.Articles)
	}
}

func TestSearchWithCategoryEmptyState(t *testing.T) {
	v := newVisitor(t)
	expectRedirect(t, v.post("/actions/search", url.Values{"q": {"contraseña"}}))
	expectRedirect(t, v.post("/actions/category", url.Values{"category": {"Hardware"}}))

	body := v.get("/").Body.String()
	if !strings.Contains(body, "No se encontraron artículos") {
		t.Error("expected the empty state")
	}

	expectRedirect(t, v.post("/actions/reset", nil))
	snap := v.snapshot()
	if snap.View.Query != "" || snap.View.Category != "" || len(snap.View.Articles) != 5 {
		t.Errorf("reset should clear filters, got %+v", snap.View)
	}
}

func TestSelectArticleRendersDetailOnce(t *testing.T) {
	v := newVisitor(t)
	expectRedirect(t, v.post("/actions/select", url.Values{"id": {"4"}}))

	body := v.get("/").Body.String()
	if !strings.Contains(body, "Solución Paso a Paso") || !strings.Contains(body, "<ol>") {
		t.Error("expected rendered steps as an ordered list")
	}
	if !strings.Contains(body, `data-scroll-top="true"`) {
		t.Error("expected scroll-to-top on first render")
	}
	if strings.Contains(v.get("/").Body.String(), `data-scroll-top="true"`) {
		t.Error("scroll-to-top should be consumed by the first render")
	}
}

func TestActionErrors(t *testing.T) {
	v := newVisitor(t)

	tests := []struct {
		path string
		form url.Values
		want int
	}{
		{"/actions/select", url.Values{"id": {"99"}}, http.StatusNotFound},
		{"/actions/navigate", url.Values{"screen": {"article"}}, http.StatusConflict},
		{"/actions/navigate", url.Values{"screen": {"settings"}}, http.StatusBadRequest},
		{"/actions/category", url.Values{"category": {"impresoras"}}, http.StatusBadRequest},
		{"/actions/chat", url.Values{"message": {"hola"}}, http.StatusConflict},
	}
	for _, tt := range tests {
		if w := v.post(tt.path, tt.form); w.Code != tt.want {
			t.Errorf("%s %v: status %d, want %d", tt.path, tt.form, w.Code, tt.want)
		}
	}
}

func TestReportActionInvalidRerenders(t *testing.T) {
	v := newVisitor(t)
	expectRedirect(t, v.post("/actions/navigate", url.Values{"screen": {"report"}}))

	w := v.post("/actions/report", url.Values{
		"full_name": {"Juan Pérez"},
		"email":     {"juan-at-empresa"},
		"subject":   {"Sin red"},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Ingresa un correo electrónico válido.") {
		t.Error("expected the email error")
	}
	if !strings.Contains(body, "La descripción es obligatoria.") {
		t.Error("expected the description error")
	}
	if !strings.Contains(body, `value="Juan Pérez"`) {
		t.Error("expected the visitor's input to be kept")
	}
	if snap := v.snapshot(); snap.View.Screen != browse.ScreenReport {
		t.Errorf("screen = %q, want report", snap.View.Screen)
	}
}

func TestReportActionSuccess(t *testing.T) {
	v := newVisitor(t)
	expectRedirect(t, v.post("/actions/navigate", url.Values{"screen": {"report"}}))

	expectRedirect(t, v.post("/actions/report", url.Values{
		"full_name":   {"Juan Pérez"},
		"email":       {"juan@empresa.com"},
		"type":        {"Conectividad / Red"},
		"subject":     {"Sin red"},
		"description": {"El cable está conectado pero no hay red."},
		"urgency":     {"Alto"},
	}))

	body := v.get("/").Body.String()
	if !strings.Contains(body, report.SuccessMessage) {
		t.Error("expected the acknowledgment")
	}
	if !strings.Contains(body, `id="listing"`) {
		t.Error("expected to be back on the listing")
	}
	if strings.Contains(v.get("/").Body.String(), report.SuccessMessage) {
		t.Error("acknowledgment should show once")
	}
}

func TestSurveyScreenLinksOut(t *testing.T) {
	v := newVisitor(t)
	expectRedirect(t, v.post("/actions/navigate", url.Values{"screen": {"survey"}}))

	body := v.get("/").Body.String()
	if !strings.Contains(body, `href="https://forms.example.com/encuesta"`) {
		t.Error("expected the survey link")
	}
}

func TestCatalogAPI(t *testing.T) {
	v := newVisitor(t)

	var cats []categoryResponse
	json.NewDecoder(v.get("/api/catalog/categories").Body).Decode(&cats)
	if len(cats) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(cats))
	}

	var arts []catalog.Article
	json.NewDecoder(v.get("/api/catalog/articles?category=software").Body).Decode(&arts)
	if len(arts) != 1 || arts[0].ID != "1" {
		t.Errorf("unexpected software articles %+v", arts)
	}

	arts = nil
	json.NewDecoder(v.get("/api/catalog/articles?q=VPN").Body).Decode(&arts)
	if len(arts) != 1 || arts[0].ID != "3" {
		t.Errorf("unexpected search result %+v", arts)
	}

	if w := v.get("/api/catalog/articles?category=bogus"); w.Code != http.StatusBadRequest {
		t.Errorf("bogus category: status %d, want 400", w.Code)
	}

	w := v.get("/api/catalog/articles/5")
	if w.Code != http.StatusOK {
		t.Fatalf("article 5: status %d", w.Code)
	}
	var detail browse.ArticleDetail
	json.NewDecoder(w.Body).Decode(&detail)
	if detail.Urgency != catalog.UrgencyCritical {
		t.Errorf("urgency = %v, want critical", detail.Urgency)
	}
	for i, s := range detail.Steps {
		if s.Number != i+1 {
			t.Errorf("step %d numbered %d", i, s.Number)
		}
	}

	if w := v.get("/api/catalog/articles/99"); w.Code != http.StatusNotFound {
		t.Errorf("missing article: status %d, want 404", w.Code)
	}
}

func TestSessionAPIChat(t *testing.T) {
	v := newVisitor(t)

	if w := v.postJSON("/api/session/chat", `{"message":"hola"}`); w.Code != http.StatusConflict {
		t.Errorf("chat before opening: status %d, want 409", w.Code)
	}
	if w := v.postJSON("/api/session/navigate", `{"screen":"chat"}`); w.Code != http.StatusOK {
		t.Fatalf("navigate: status %d", w.Code)
	}

	var resp chatAPIResponse
	json.NewDecoder(v.postJSON("/api/session/chat", `{"message":"   "}`).Body).Decode(&resp)
	if resp.Accepted {
		t.Error("blank message should not be accepted")
	}

	resp = chatAPIResponse{}
	json.NewDecoder(v.postJSON("/api/session/chat", `{"message":"Hola"}`).Body).Decode(&resp)
	if !resp.Accepted || resp.Message == nil || resp.Message.Role != chat.RoleUser {
		t.Fatalf("unexpected response %+v", resp)
	}

	deadline := time.Now().Add(2 * time.Second)
	var snap session.Snapshot
	for time.Now().Before(deadline) {
		snap = v.snapshot()
		if len(snap.Transcript) == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(snap.Transcript) != 2 || snap.Transcript[1].Rule != "greeting" {
		t.Fatalf("unexpected transcript %+v", snap.Transcript)
	}
}

func TestSessionAPIReport(t *testing.T) {
	v := newVisitor(t)

	w := v.postJSON("/api/session/report", `{"full_name":"Ana","email":"ana@empresa.com","subject":"Impresora","description":"No imprime","urgency":"medium"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("valid report: status %d: %s", w.Code, w.Body.String())
	}
	var ack report.Acknowledgment
	json.NewDecoder(w.Body).Decode(&ack)
	if ack.Type != report.TypeHardware || ack.Urgency != catalog.UrgencyMedium {
		t.Errorf("unexpected acknowledgment %+v", ack)
	}
	if !strings.HasPrefix(ack.Reference, "INC-") {
		t.Errorf("reference = %q", ack.Reference)
	}

	w = v.postJSON("/api/session/report", `{"email":"ana@empresa.com"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid report: status %d", w.Code)
	}
	var verr report.ValidationError
	json.NewDecoder(w.Body).Decode(&verr)
	if verr.Message("full_name") == "" || verr.Message("subject") == "" {
		t.Errorf("expected field errors, got %+v", verr.Fields)
	}

	if w := v.postJSON("/api/session/report", `{not json`); w.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status %d, want 400", w.Code)
	}
}

func TestChatPreview(t *testing.T) {
	v := newVisitor(t)
	var m chat.Match
	json.NewDecoder(v.postJSON("/api/chat/preview", `{"message":"mi VPN no conecta"}`).Body).Decode(&m)
	if m.Rule != "vpn" || m.ArticleID != "3" {
		t.Errorf("unexpected match %+v", m)
	}
}

// --- WebSocket tests ---

func startServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	server := httptest.NewServer(setupRouter(t))
	t.Cleanup(server.Close)

	jar, _ := cookiejar.New(nil)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return server, client
}

func dialChat(t *testing.T, server *httptest.Server, client *http.Client) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(server.URL)
	header := http.Header{}
	for _, c := range client.Jar.Cookies(u) {
		header.Add("Cookie", c.String())
	}
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) wsEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev wsEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	return ev
}

func TestWebSocketRequiresChatScreen(t *testing.T) {
	server, client := startServer(t)
	conn := dialChat(t, server, client)

	ev := readEvent(t, conn)
	if ev.Type != "error" || !strings.Contains(ev.Content, "chat screen") {
		t.Errorf("expected chat-inactive error, got %+v", ev)
	}
}

func TestWebSocketChatRoundTrip(t *testing.T) {
	server, client := startServer(t)

	resp, err := client.PostForm(server.URL+"/actions/navigate", url.Values{"screen": {"chat"}})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("navigate: status %d", resp.StatusCode)
	}

	conn := dialChat(t, server, client)
	if ev := readEvent(t, conn); ev.Type != "history" || len(ev.Messages) != 0 {
		t.Fatalf("expected empty history, got %+v", ev)
	}

	if err := conn.WriteJSON(wsRequest{Type: "message", Content: ""}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ev := readEvent(t, conn); ev.Type != "error" || ev.Content != "content is required" {
		t.Errorf("expected content error, got %+v", ev)
	}

	if err := conn.WriteJSON(wsRequest{Type: "message", Content: "La impresora no imprime"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var reply *chat.Message
	for reply == nil {
		ev := readEvent(t, conn)
		if ev.Type == "message" && ev.Message.Role == chat.RoleBot {
			reply = ev.Message
		}
	}
	if reply.Rule != "printer" || reply.ArticleID != "4" {
		t.Errorf("unexpected reply %+v", reply)
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	server, client := startServer(t)
	resp, err := client.PostForm(server.URL+"/actions/navigate", url.Values{"screen": {"chat"}})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	resp.Body.Close()

	conn := dialChat(t, server, client)
	readEvent(t, conn)

	if err := conn.WriteJSON(wsRequest{Type: "ask", Content: "hola"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ev := readEvent(t, conn); ev.Type != "error" || !strings.Contains(ev.Content, "unknown message type") {
		t.Errorf("expected unknown type error, got %+v", ev)
	}
}
