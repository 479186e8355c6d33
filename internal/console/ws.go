package console

import (
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/clinicops/clinic-console/internal/session"
)

// sessionNotice is pushed to the browser whenever the session changes, so
// every open tab can redirect to login the moment the token dies.
type sessionNotice struct {
	Type  string `json:"type"` // "hello" or "session"
	Event string `json:"event,omitempty"`
}

func (h *Handler) handleSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(h.serveWS).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn) {
	events := make(chan session.Event, 8)
	unsubscribe := h.client.Session().Subscribe(func(ev session.Event) {
		// Drop rather than block: the session must never stall on a
		// slow socket.
		select {
		case events <- ev:
		default:
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var discard string
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				return
			}
		}
	}()

	if err := websocket.JSON.Send(conn, sessionNotice{Type: "hello"}); err != nil {
		return
	}
	h.logger.Debug("session socket opened")

	for {
		select {
		case <-done:
			h.logger.Debug("session socket closed")
			return
		case ev := <-events:
			if err := websocket.JSON.Send(conn, sessionNotice{Type: "session", Event: string(ev.Kind)}); err != nil {
				return
			}
		}
	}
}
