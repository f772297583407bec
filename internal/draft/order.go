// Package draft holds the pure sequencing rules for a two-player champion
// draft. Nothing here touches the clock, the network, or the room store.
package draft

type ActionType string

const (
	Ban  ActionType = "ban"
	Pick ActionType = "pick"
)

// Skipped is recorded in place of a champion when a turn times out.
const Skipped = "SKIPPED"

// Step is one turn of the draft script: which player acts and how.
type Step struct {
	Team string     `json:"team"`
	Type ActionType `json:"type"`
}

// Action is a resolved step in the append-only room log.
type Action struct {
	Team     string     `json:"team"`
	Type     ActionType `json:"type"`
	Champion string     `json:"champion"`
}

// Order returns the fixed script for the given phase. first is the player
// holding phase-1 initiative; phase 2 hands initiative to the other player.
// The pick patterns are grouped in deliberate pairs, not a plain
// alternation, so the literal order below is load-bearing.
func Order(first, second string, phase int) []Step {
	if phase == 2 {
		return []Step{
			{Team: second, Type: Ban}, {Team: first, Type: Ban},
			{Team: second, Type: Pick}, {Team: first, Type: Pick},
			{Team: first, Type: Pick}, {Team: second, Type: Pick},
			{Team: second, Type: Pick}, {Team: first, Type: Pick},
			{Team: first, Type: Pick}, {Team: second, Type: Pick},
			{Team: second, Type: Pick}, {Team: first, Type: Pick},
		}
	}
	return []Step{
		{Team: first, Type: Ban}, {Team: second, Type: Ban},
		{Team: first, Type: Pick}, {Team: second, Type: Pick},
		{Team: second, Type: Pick}, {Team: first, Type: Pick},
		{Team: first, Type: Pick}, {Team: second, Type: Pick},
		{Team: second, Type: Pick}, {Team: first, Type: Pick},
	}
}

// Taken reports whether champion was already consumed by an earlier ban or
// pick. Skipped turns never consume a champion.
func Taken(actions []Action, champion string) bool {
	if champion == Skipped {
		return false
	}
	for _, a := range actions {
		if a.Champion == champion {
			return true
		}
	}
	return false
}
