package hub

import (
	"time"

	"go.uber.org/zap"

	"champ-draft-backend/internal/draft"
	"champ-draft-backend/internal/room"
)

// latencyBuffer pads the advertised end timestamp so a client-visible
// countdown does not hit zero before the server's own timeout fires. It
// never moves the server deadline.
const latencyBuffer = 500 * time.Millisecond

// armTimer starts the single-shot timer for the current turn, superseding
// any pending one. Exactly one live timer exists per room.
func (h *Hub) armTimer(rm *room.Room) {
	rm.CancelTimer()
	rm.TimerGen++
	gen := rm.TimerGen

	d := time.Duration(rm.CountdownDuration) * time.Second
	rm.Countdown = rm.CountdownDuration
	rm.Paused = false
	rm.Remaining = 0
	rm.EndTime = h.clock.Now().Add(d + latencyBuffer)
	rm.Timer = h.clock.AfterFunc(d, h.fire(rm.ID, gen))
}

// pauseTimer cancels the pending timeout and captures the remaining budget.
// No-op when no turn is running or the room is already paused.
func (h *Hub) pauseTimer(rm *room.Room) {
	if rm.NextTurn == nil || rm.Paused {
		return
	}
	rm.CancelTimer()
	remaining := rm.EndTime.Sub(h.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	rm.Remaining = remaining
	rm.Paused = true
}

// resumeTimer reschedules the captured remainder. No-op unless paused.
func (h *Hub) resumeTimer(rm *room.Room) {
	if !rm.Paused {
		return
	}
	rm.Paused = false
	remaining := rm.Remaining
	rm.Countdown = int(remaining.Round(time.Second) / time.Second)
	rm.EndTime = h.clock.Now().Add(remaining + latencyBuffer)
	rm.TimerGen++
	rm.Timer = h.clock.AfterFunc(remaining, h.fire(rm.ID, rm.TimerGen))
}

func (h *Hub) fire(roomID string, gen uint64) func() {
	return func() {
		select {
		case h.inbox <- timerFired{RoomID: roomID, Gen: gen}:
		case <-h.ctx.Done():
		}
	}
}

// handleTimeout resolves an expired turn timer. The room may have been
// deleted, paused, or re-armed while the fire message sat in the inbox, so
// everything is re-checked before mutating.
func (h *Hub) handleTimeout(msg timerFired) {
	rm := h.store.Get(msg.RoomID)
	if rm == nil || rm.Paused || msg.Gen != rm.TimerGen {
		return
	}
	turn := rm.CurrentStep()
	if turn == nil {
		return
	}
	rm.Countdown = 0
	rm.Actions = append(rm.Actions, draft.Action{Team: turn.Team, Type: turn.Type, Champion: draft.Skipped})
	h.log.Info("turn timed out",
		zap.String("room", rm.ID),
		zap.String("team", turn.Team),
		zap.String("type", string(turn.Type)))
	h.nextTurn(rm)
}
