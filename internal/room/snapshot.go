package room

import (
	"champ-draft-backend/internal/draft"
)

// Snapshot is the client-safe projection of a Room. Timer handles and other
// server-only fields never leave the process.
type Snapshot struct {
	ID                 string              `json:"id"`
	State              State               `json:"state"`
	HostID             string              `json:"hostId"`
	Players            map[string]Player   `json:"players"`
	PlayerHistory      map[string]Player   `json:"playerHistory"`
	PlayerOrder        []string            `json:"playerOrder"`
	Phase              int                 `json:"phase"`
	DraftOrder         []draft.Step        `json:"draftOrder"`
	CurrentTurn        int                 `json:"currentTurn"`
	NextTurn           *draft.Step         `json:"nextTurn"`
	Actions            []draft.Action      `json:"actions"`
	Countdown          int                 `json:"countdown"`
	CountdownDuration  int                 `json:"countdownDuration"`
	CountdownEndTime   int64               `json:"countdownEndTime,omitempty"` // unix ms
	Paused             bool                `json:"paused"`
	PreDraftSelections map[string][]string `json:"preDraftSelections"`
	PreDraftReady      map[string]bool     `json:"preDraftReady"`
}

func newSnapshot(r *Room) *Snapshot {
	snap := &Snapshot{
		ID:                 r.ID,
		State:              r.State,
		HostID:             r.HostID,
		Players:            copyMap(r.Players),
		PlayerHistory:      copyMap(r.PlayerHistory),
		PlayerOrder:        append([]string{}, r.PlayerOrder...),
		Phase:              r.Phase,
		DraftOrder:         append([]draft.Step{}, r.DraftOrder...),
		CurrentTurn:        r.CurrentTurn,
		Actions:            append([]draft.Action{}, r.Actions...),
		Countdown:          r.Countdown,
		CountdownDuration:  r.CountdownDuration,
		Paused:             r.Paused,
		PreDraftSelections: copySelections(r.PreDraftSelections),
		PreDraftReady:      copyMap(r.PreDraftReady),
	}
	if r.NextTurn != nil {
		turn := *r.NextTurn
		snap.NextTurn = &turn
	}
	if !r.EndTime.IsZero() {
		snap.CountdownEndTime = r.EndTime.UnixMilli()
	}
	return snap
}

// ChatHistory returns a copy of the bounded chat log for replay to joiners.
func (r *Room) ChatHistory() []ChatMessage {
	return append([]ChatMessage{}, r.Chat...)
}

func copyMap[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copySelections(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string{}, v...)
	}
	return out
}
