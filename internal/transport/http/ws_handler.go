package http

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"aurora-quiz/internal/app"
	"aurora-quiz/internal/domain"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler hosts one quiz session per websocket connection. The connection's
// loop owns the machine and ticks it at a fixed rate; pointer events arrive
// from a reader goroutine and at most one is applied per tick.
type WSHandler struct {
	service     *app.GameService
	defaultBank string
	tick        time.Duration
	now         func() time.Time
	log         *zap.Logger
	upgrader    websocket.Upgrader
}

func NewWSHandler(service *app.GameService, defaultBank string, tick time.Duration, log *zap.Logger) *WSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	if tick <= 0 {
		tick = time.Second / 60
	}
	return &WSHandler{
		service:     service,
		defaultBank: defaultBank,
		tick:        tick,
		now:         time.Now,
		log:         log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type sessionPayload struct {
	ID   string `json:"id"`
	Bank string `json:"bank"`
}

type errorPayload struct {
	Message string `json:"message"`
}

const pendingPointerEvents = 16

// ServeWS upgrades HTTP requests to websockets and runs a session until the
// user quits or the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	bankID := r.URL.Query().Get("bank")
	if bankID == "" {
		bankID = h.defaultBank
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID, machine, err := h.service.OpenSession(r.Context(), bankID)
	if err != nil {
		h.log.Warn("open session", zap.String("bank", bankID), zap.Error(err))
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.CloseSession(context.Background(), sessionID)
	log := h.log.With(zap.String("session", sessionID), zap.String("bank", bankID))

	if err := conn.WriteJSON(outboundMessage[sessionPayload]{Type: "session", Payload: sessionPayload{ID: sessionID, Bank: bankID}}); err != nil {
		log.Warn("ws write error", zap.Error(err))
		return
	}

	pointers := make(chan domain.PointerEvent, pendingPointerEvents)
	notices := make(chan string, pendingPointerEvents)
	readerDone := make(chan struct{})
	go h.readLoop(conn, pointers, notices, readerDone, log)

	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()

	var last *domain.RenderDescriptor
	step := func() bool {
		var ev *domain.PointerEvent
		select {
		case p := <-pointers:
			ev = &p
		default:
		}
		frame := machine.Tick(h.now(), ev)
		if last != nil && reflect.DeepEqual(*last, frame) {
			return true
		}
		last = &frame

		if err := h.service.Record(r.Context(), sessionID, machine.State()); err != nil {
			log.Warn("record session", zap.Error(err))
		}
		if err := conn.WriteJSON(outboundMessage[domain.RenderDescriptor]{Type: "frame", Payload: frame}); err != nil {
			log.Warn("ws write error", zap.Error(err))
			return false
		}
		if frame.Quit {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "quit")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return false
		}
		return true
	}

	for running := step(); running; {
		select {
		case <-ticker.C:
			running = step()
		case notice := <-notices:
			if err := conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: notice}}); err != nil {
				running = false
			}
		case <-readerDone:
			running = false
		case <-r.Context().Done():
			running = false
		}
	}

	state := machine.State()
	log.Info("session ended", zap.String("phase", string(state.Phase)), zap.Int("score", state.Score), zap.Int("answered", state.Answered))
}

// readLoop decodes client messages. It never writes to conn; replies for bad
// input go through notices so the session loop stays the only writer.
func (h *WSHandler) readLoop(conn *websocket.Conn, pointers chan<- domain.PointerEvent, notices chan<- string, done chan<- struct{}, log *zap.Logger) {
	defer close(done)
	notify := func(msg string) {
		select {
		case notices <- msg:
		default:
		}
	}
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "pointer":
			var ev domain.PointerEvent
			if err := json.Unmarshal(inbound.Payload, &ev); err != nil {
				notify("invalid pointer payload")
				continue
			}
			select {
			case pointers <- ev:
			default:
				log.Debug("dropping pointer event, queue full")
			}
		default:
			notify("unsupported message type")
		}
	}
}
