package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"champ-draft-backend/internal/hub"
	"champ-draft-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, reader StatsReader, log *zap.Logger, originPatterns []string) http.Handler {
	r := chi.NewRouter()

	r.Post("/rooms", MintRoomCode(h, log))
	r.Get("/stats", GetStats(reader, log))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, log, originPatterns))
	return r
}
