package hub

import (
	"go.uber.org/zap"

	"champ-draft-backend/internal/draft"
	"champ-draft-backend/internal/room"
	"champ-draft-backend/internal/stats"
	"champ-draft-backend/internal/types"
)

// nextTurn advances the cursor, rolling into phase 2 or finishing the draft
// when a script is exhausted.
func (h *Hub) nextTurn(rm *room.Room) {
	rm.CurrentTurn++

	if rm.CurrentTurn >= len(rm.DraftOrder) {
		if rm.Phase == 1 {
			h.startPhase2(rm)
		} else {
			h.finishDraft(rm)
		}
		return
	}

	rm.NextTurn = &rm.DraftOrder[rm.CurrentTurn]
	h.armTimer(rm)
	h.broadcastState(rm.ID)
}

// startPhase2 regenerates the script with initiative handed to the other
// player and resets the cursor. The phase-1 leader is read back from the
// script itself so a swap or reconnect cannot desync it.
func (h *Hub) startPhase2(rm *room.Room) {
	rm.Phase = 2
	first := rm.DraftOrder[0].Team
	second := rm.PlayerOrder[0]
	if second == first {
		second = rm.PlayerOrder[1]
	}
	rm.DraftOrder = draft.Order(first, second, 2)
	rm.CurrentTurn = 0
	rm.NextTurn = &rm.DraftOrder[0]
	h.armTimer(rm)
	h.broadcastState(rm.ID)
}

// finishDraft marks the terminal state, emits draft-finished once, and
// hands the session to the stats recorder without waiting on it.
func (h *Hub) finishDraft(rm *room.Room) {
	rm.CancelTimer()
	rm.NextTurn = nil
	rm.State = room.StateFinished
	h.broadcastState(rm.ID)
	h.broadcast(rm.ID, types.ServerMessage{
		Type:    types.EvtDraftFinished,
		Actions: append([]draft.Action{}, rm.Actions...),
	})
	h.log.Info("draft finished", zap.String("room", rm.ID), zap.Int("actions", len(rm.Actions)))

	session := stats.Session{
		RoomID:      rm.ID,
		Actions:     append([]draft.Action{}, rm.Actions...),
		PlayerOrder: append([]string{}, rm.PlayerOrder...),
		PlayerNames: make(map[string]string, len(rm.PlayerHistory)),
	}
	for id, p := range rm.PlayerHistory {
		session.PlayerNames[id] = p.Name
	}

	// Fire and forget: a recording failure is logged and never reaches the
	// players.
	go func() {
		if err := h.stats.RecordSession(h.ctx, session); err != nil {
			h.log.Error("stats recording failed", zap.String("room", session.RoomID), zap.Error(err))
		}
	}()
}
