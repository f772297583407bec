// Package ws bridges websocket connections onto the hub inbox.
package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"champ-draft-backend/internal/hub"
	"champ-draft-backend/internal/types"
)

const writeTimeout = 3 * time.Second

// Handler upgrades the connection, registers it with the hub, and pumps
// messages both ways. The hub closes the outbox when the session ends
// (kick, shutdown, disconnect), which unwinds the writer.
func Handler(h *hub.Hub, log *zap.Logger, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			log.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		connID := randID(8)
		out := make(chan types.ServerMessage, 16)

		h.Inbox() <- hub.Connect{ConnID: connID, Outbox: out}
		defer func() { h.Inbox() <- hub.Disconnect{ConnID: connID} }()

		// Writer: drains the outbox until the hub closes it, then ends the
		// connection so the reader unblocks.
		writeCtx, writeCancel := context.WithCancel(context.Background())
		defer writeCancel()
		go func() {
			for msg := range out {
				payload, err := json.Marshal(msg)
				if err != nil {
					log.Error("marshal server message", zap.Error(err))
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
			conn.Close(websocket.StatusNormalClosure, "session ended")
		}()

		// Reader loop.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("websocket read ended", zap.String("conn", connID), zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				resp, _ := json.Marshal(types.ServerMessage{Type: types.EvtDraftError, Error: "bad json"})
				_ = conn.Write(r.Context(), websocket.MessageText, resp)
				continue
			}

			h.Inbox() <- hub.FromClient{ConnID: connID, Msg: cm}
		}
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
