package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aurora-quiz/internal/app"
	"aurora-quiz/internal/domain"
	"aurora-quiz/internal/infra/memory"
	"aurora-quiz/internal/layout"
	"github.com/gorilla/websocket"
)

func TestWebSocketSessionFlow(t *testing.T) {
	server, store := newTestServer(t)
	defer server.Close()

	conn := dial(t, server, "sample")
	defer conn.Close()

	var session sessionPayload
	readMessage(t, conn, "session", &session)
	if session.ID == "" || session.Bank != "sample" {
		t.Fatalf("unexpected session payload %+v", session)
	}

	menu := readFrame(t, conn)
	if menu.Phase != domain.PhaseMenu {
		t.Fatalf("expected menu frame, got %s", menu.Phase)
	}
	if state, err := store.Get(context.Background(), session.ID); err != nil || state.Phase != domain.PhaseMenu {
		t.Fatalf("expected menu state recorded, got %+v %v", state, err)
	}

	clickRegion(t, conn, menu, domain.RegionStart, 0)
	question := readUntil(t, conn, domain.PhaseQuestion)
	if len(question.Regions) != 4 {
		t.Fatalf("expected 4 options, got %d", len(question.Regions))
	}

	clickRegion(t, conn, question, domain.RegionOption, 0)
	feedback := readUntil(t, conn, domain.PhaseFeedback)
	if feedback.Panel == nil {
		t.Fatalf("expected feedback panel")
	}

	// Auto-advance and question timeouts carry the session to the end without input.
	results := readUntil(t, conn, domain.PhaseResults)
	if results.Tier == "" {
		t.Fatalf("expected a result tier")
	}

	clickRegion(t, conn, results, domain.RegionQuit, 0)
	final := readUntil(t, conn, domain.PhaseResults)
	for !final.Quit {
		final = readUntil(t, conn, domain.PhaseResults)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected normal close after quit, got %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for store.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if store.Len() != 0 {
		t.Fatalf("expected session dropped after quit")
	}
}

func TestWebSocketUnknownBank(t *testing.T) {
	server, _ := newTestServer(t)
	defer server.Close()

	conn := dial(t, server, "nope")
	defer conn.Close()

	var payload errorPayload
	readMessage(t, conn, "error", &payload)
	if !strings.Contains(payload.Message, domain.ErrBankNotFound.Error()) {
		t.Fatalf("expected bank not found, got %q", payload.Message)
	}
}

func TestWebSocketRejectsBadMessages(t *testing.T) {
	server, _ := newTestServer(t)
	defer server.Close()

	conn := dial(t, server, "")
	defer conn.Close()
	readMessage(t, conn, "session", &sessionPayload{})
	readFrame(t, conn)

	if err := conn.WriteJSON(map[string]any{"type": "dance"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var payload errorPayload
	readMessage(t, conn, "error", &payload)
	if payload.Message != "unsupported message type" {
		t.Fatalf("unexpected error %q", payload.Message)
	}
}

func TestAPIHandler(t *testing.T) {
	server, store := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/banks/sample")
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	var summary domain.BankSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || summary.Questions != 4 || summary.Title == "" {
		t.Fatalf("unexpected bank response %d %+v", resp.StatusCode, summary)
	}

	resp, err = http.Get(server.URL + "/banks/broken")
	if err != nil {
		t.Fatalf("get broken bank: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid bank, got %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/banks/missing")
	if err != nil {
		t.Fatalf("get missing bank: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	_ = store.Save(context.Background(), "s1", domain.SessionState{Phase: domain.PhaseResults, Score: 3, QuestionIndex: 4, QuestionCount: 4, Answered: 4})
	resp, err = http.Get(server.URL + "/sessions/s1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	var state domain.SessionState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	resp.Body.Close()
	if state.Phase != domain.PhaseResults || state.Score != 3 {
		t.Fatalf("unexpected session %+v", state)
	}

	resp, err = http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected healthy, got %d", resp.StatusCode)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *memory.SessionStore) {
	t.Helper()
	settings := app.DefaultSettings()
	settings.MinDwell = 30 * time.Millisecond
	settings.AutoAdvance = 60 * time.Millisecond
	settings.QuestionTimeLimit = 200 * time.Millisecond

	broken := domain.QuestionSet{ID: "broken", Questions: []domain.Question{{Prompt: "?", Options: []string{"only"}}}}
	store := memory.NewSessionStore()
	banks := memory.NewQuestionRepository(memory.NewStaticQuestionLoader(memory.SampleQuestionSet(), broken), time.Minute)
	service := app.NewGameService(store, banks, settings, layout.Monospace{Advance: 12}, nil)

	router := NewRouter(NewWSHandler(service, "sample", 5*time.Millisecond, nil), NewAPIHandler(service, nil), nil, nil)
	return httptest.NewServer(router), store
}

func dial(t *testing.T, server *httptest.Server, bank string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws"
	if bank != "" {
		u += "?bank=" + bank
	}
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn, expect string, into any) {
	t.Helper()
	var msg inboundMessage
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, into); err != nil {
		t.Fatalf("decode %s payload: %v", expect, err)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) domain.RenderDescriptor {
	t.Helper()
	var frame domain.RenderDescriptor
	readMessage(t, conn, "frame", &frame)
	return frame
}

func readUntil(t *testing.T, conn *websocket.Conn, phase domain.Phase) domain.RenderDescriptor {
	t.Helper()
	for i := 0; i < 50; i++ {
		if frame := readFrame(t, conn); frame.Phase == phase {
			return frame
		}
	}
	t.Fatalf("no %s frame received", phase)
	return domain.RenderDescriptor{}
}

func clickRegion(t *testing.T, conn *websocket.Conn, frame domain.RenderDescriptor, kind domain.RegionKind, index int) {
	t.Helper()
	for _, r := range frame.Regions {
		if r.ID.Kind == kind && r.ID.Index == index {
			c := r.Bounds.Center()
			msg := map[string]any{"type": "pointer", "payload": domain.PointerEvent{X: c.X, Y: c.Y}}
			if err := conn.WriteJSON(msg); err != nil {
				t.Fatalf("write pointer: %v", err)
			}
			return
		}
	}
	t.Fatalf("region %s/%d not in %s frame", kind, index, frame.Phase)
}
