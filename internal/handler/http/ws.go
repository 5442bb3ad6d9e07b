package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/notifier"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsWriteTimeout = 10 * time.Second

// subscribeEvents upgrades the connection to a WebSocket and streams change
// events until the client disconnects. Topic selection comes from the
// optional "topics" query parameter, a comma-separated list; absent means
// every topic. Delivery is best-effort: a client that cannot keep up has
// events dropped, never queued without bound.
func (h *Handler) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	topics := parseTopics(r.URL.Query().Get("topics"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("func", "Handler.subscribeEvents").Msg("error upgrading connection")
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe(topics...)
	defer h.hub.Unsubscribe(sub)

	// the read loop only detects the client going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case envelope, ok := <-sub.C():
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(envelope); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Warn().Err(err).Str("func", "Handler.subscribeEvents").Msg("error writing event to client")
				}
				return
			}
		}
	}
}

func parseTopics(raw string) []notifier.Topic {
	if raw == "" {
		return nil
	}

	var topics []notifier.Topic
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		topics = append(topics, notifier.Topic(part))
	}
	return topics
}
