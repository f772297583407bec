// Package room owns the draft room aggregate and its in-memory store. All
// access happens on the hub goroutine; the store does no locking of its own.
package room

import (
	"time"

	"champ-draft-backend/internal/draft"
)

// State tags the room lifecycle.
type State string

const (
	StateWaiting  State = "waiting"
	StatePreDraft State = "pre-draft-selection"
	StateDrafting State = "drafting"
	StateFinished State = "finished"
)

// TimerHandle is a cancelable pending timer. *time.Timer satisfies it.
type TimerHandle interface {
	Stop() bool
}

// Player is the per-identity presence record.
type Player struct {
	Name string `json:"name"`
}

// ChatMessage is one entry in the bounded room chat history.
type ChatMessage struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// chatHistoryCap bounds the chat ring; the oldest message is evicted first.
const chatHistoryCap = 50

// Room is the aggregate root for one draft session.
type Room struct {
	ID     string
	State  State
	HostID string

	// Players holds only currently-connected identities; PlayerHistory
	// outlives disconnects and is what reconnection matches against.
	Players       map[string]Player
	PlayerHistory map[string]Player
	// PlayerOrder is fixed once both players have joined: index 0 acts as
	// Team Blue, index 1 as Team Red.
	PlayerOrder []string

	Phase       int
	DraftOrder  []draft.Step
	CurrentTurn int
	NextTurn    *draft.Step
	Actions     []draft.Action

	CountdownDuration int           // configured seconds per turn
	Countdown         int           // seconds advertised to clients
	EndTime           time.Time     // absolute deadline incl. latency buffer
	Paused            bool
	Remaining         time.Duration // captured when paused

	PreDraftSelections map[string][]string
	PreDraftReady      map[string]bool

	Chat []ChatMessage

	// Server-only fields; never serialized.
	Timer    TimerHandle
	TimerGen uint64
}

// New initializes a room in the waiting state with an empty roster.
func New(id, hostID string, countdownSec int) *Room {
	return &Room{
		ID:                 id,
		State:              StateWaiting,
		HostID:             hostID,
		Players:            map[string]Player{},
		PlayerHistory:      map[string]Player{},
		PlayerOrder:        []string{},
		Phase:              1,
		DraftOrder:         []draft.Step{},
		CurrentTurn:        -1,
		Actions:            []draft.Action{},
		CountdownDuration:  countdownSec,
		PreDraftSelections: map[string][]string{},
		PreDraftReady:      map[string]bool{},
		Chat:               []ChatMessage{},
	}
}

// AppendChat appends to the bounded history, evicting the oldest entry once
// the cap is reached.
func (r *Room) AppendChat(m ChatMessage) {
	r.Chat = append(r.Chat, m)
	if len(r.Chat) > chatHistoryCap {
		r.Chat = r.Chat[1:]
	}
}

// CancelTimer stops any pending turn timer. Safe to call when none is armed.
func (r *Room) CancelTimer() {
	if r.Timer != nil {
		r.Timer.Stop()
		r.Timer = nil
	}
}

// CurrentStep returns the script entry at the turn cursor, or nil when the
// cursor is unset or the script is exhausted.
func (r *Room) CurrentStep() *draft.Step {
	if r.CurrentTurn < 0 || r.CurrentTurn >= len(r.DraftOrder) {
		return nil
	}
	return &r.DraftOrder[r.CurrentTurn]
}
