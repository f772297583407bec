package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"time"

	"go.uber.org/zap"

	"champ-draft-backend/internal/hub"
	"champ-draft-backend/internal/stats"
)

// StatsReader is the read side of the stats ledger, satisfied by both
// recorder backends.
type StatsReader interface {
	Stats(ctx context.Context) (stats.Overview, error)
}

// GenerateCode returns a 6-character room code.
func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

// MintRoomCode hands out a code not currently in use. The room itself is
// created when the host's join-room arrives, so the code is a suggestion,
// not a reservation.
func MintRoomCode(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			reply := make(chan hub.View, 1)
			h.Inbox() <- hub.Inspect{RoomID: c, Reply: reply}
			if (<-reply).Room == nil {
				code = c
				break
			}
			log.Debug("room code collision", zap.String("code", c))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

// GetStats serves the champion aggregate view from the ledger.
func GetStats(reader StatsReader, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		overview, err := reader.Stats(ctx)
		if err != nil {
			log.Error("stats read failed", zap.Error(err))
			http.Error(w, "failed to load stats", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(overview)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
