package room

import "champ-draft-backend/internal/draft"

// Reassign returns a copy of r with every reference to oldID rewritten to
// newID: roster position, presence and history keys, draft script teams,
// action log teams, the pending turn, and pre-draft bookkeeping. It is a
// full substitution; the old identity does not survive anywhere in the
// result. Server-only fields (timer handle, generation) carry over as-is.
func Reassign(r Room, oldID, newID string) Room {
	out := r

	out.PlayerOrder = make([]string, len(r.PlayerOrder))
	for i, id := range r.PlayerOrder {
		out.PlayerOrder[i] = swapID(id, oldID, newID)
	}

	out.Players = moveKey(r.Players, oldID, newID)
	out.PlayerHistory = moveKey(r.PlayerHistory, oldID, newID)

	// A reconnecting player is present again by definition.
	if p, ok := out.PlayerHistory[newID]; ok {
		out.Players[newID] = p
	}

	out.DraftOrder = make([]draft.Step, len(r.DraftOrder))
	for i, step := range r.DraftOrder {
		step.Team = swapID(step.Team, oldID, newID)
		out.DraftOrder[i] = step
	}

	out.Actions = make([]draft.Action, len(r.Actions))
	for i, a := range r.Actions {
		a.Team = swapID(a.Team, oldID, newID)
		out.Actions[i] = a
	}

	if r.NextTurn != nil {
		turn := *r.NextTurn
		turn.Team = swapID(turn.Team, oldID, newID)
		out.NextTurn = &turn
	}

	out.PreDraftSelections = make(map[string][]string, len(r.PreDraftSelections))
	for id, champs := range r.PreDraftSelections {
		out.PreDraftSelections[swapID(id, oldID, newID)] = champs
	}

	out.PreDraftReady = make(map[string]bool, len(r.PreDraftReady))
	for id, ready := range r.PreDraftReady {
		out.PreDraftReady[swapID(id, oldID, newID)] = ready
	}

	return out
}

func swapID(id, oldID, newID string) string {
	if id == oldID {
		return newID
	}
	return id
}

func moveKey(in map[string]Player, oldID, newID string) map[string]Player {
	out := make(map[string]Player, len(in))
	for k, v := range in {
		out[swapID(k, oldID, newID)] = v
	}
	return out
}
