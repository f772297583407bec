package hub

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"champ-draft-backend/internal/room"
	"champ-draft-backend/internal/stats"
	"champ-draft-backend/internal/types"
)

// fakeClock drives hub timers deterministically. advance moves the clock
// and runs every timer that came due.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	c       *fakeClock
	when    time.Time
	f       func()
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) room.TimerHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, when: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	was := t.stopped
	t.stopped = true
	return !was
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	due := []func(){}
	for _, t := range c.timers {
		if !t.stopped && !t.when.After(c.now) {
			t.stopped = true
			due = append(due, t.f)
		}
	}
	c.mu.Unlock()
	for _, f := range due {
		f()
	}
}

// pending counts timers that are armed and not yet fired or stopped.
func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// captureRecorder remembers every recorded session; Done receives one value
// per call for tests that need to wait on the fire-and-forget goroutine.
type captureRecorder struct {
	mu       sync.Mutex
	sessions []stats.Session
	Done     chan stats.Session
}

func newCaptureRecorder() *captureRecorder {
	return &captureRecorder{Done: make(chan stats.Session, 4)}
}

func (r *captureRecorder) RecordSession(ctx context.Context, s stats.Session) error {
	r.mu.Lock()
	r.sessions = append(r.sessions, s)
	r.mu.Unlock()
	r.Done <- s
	return nil
}

func (r *captureRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// newTestHub builds a hub without starting its loop, so handler tests can
// call into it synchronously.
func newTestHub(t *testing.T, clock Clock, rec stats.Recorder) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if rec == nil {
		rec = newCaptureRecorder()
	}
	return &Hub{
		inbox:   make(chan Msg, 64),
		store:   room.NewStore(30),
		clients: make(map[string]*client),
		clock:   clock,
		stats:   rec,
		log:     zap.NewNop(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func addClient(h *Hub, id string) *client {
	c := &client{id: id, outbox: make(chan types.ServerMessage, 256)}
	h.clients[id] = c
	return c
}

// setupDraftingRoom walks host + two players through join, pre-draft
// confirmation, and choose-first, leaving the room on phase-1 turn 0 with
// an armed timer. Returns host, p1, p2 clients.
func setupDraftingRoom(t *testing.T, h *Hub, roomID string) (*client, *client, *client) {
	t.Helper()
	host := addClient(h, "host-1")
	h.route(host, types.ClientMessage{Type: types.MsgJoinRoom, RoomID: roomID, Role: types.RoleHost})

	p1 := addClient(h, "p1")
	h.route(p1, types.ClientMessage{Type: types.MsgJoinRoom, RoomID: roomID, Role: types.RolePlayer, PlayerName: "P1"})
	p2 := addClient(h, "p2")
	h.route(p2, types.ClientMessage{Type: types.MsgJoinRoom, RoomID: roomID, Role: types.RolePlayer, PlayerName: "P2"})

	h.route(p1, types.ClientMessage{Type: types.MsgConfirmPreDraft, RoomID: roomID})
	h.route(p2, types.ClientMessage{Type: types.MsgConfirmPreDraft, RoomID: roomID})
	h.route(host, types.ClientMessage{Type: types.MsgChooseFirst, RoomID: roomID, Team: "p1"})

	rm := h.store.Get(roomID)
	if rm == nil || rm.State != room.StateDrafting || len(rm.DraftOrder) != 10 {
		t.Fatalf("drafting room not set up: %+v", rm)
	}
	return host, p1, p2
}

// popTimerFire pulls the timerFired the fake clock just posted and returns
// it without dispatching.
func popTimerFire(t *testing.T, h *Hub) timerFired {
	t.Helper()
	select {
	case m := <-h.inbox:
		fired, ok := m.(timerFired)
		if !ok {
			t.Fatalf("expected timerFired, got %T", m)
		}
		return fired
	case <-time.After(time.Second):
		t.Fatalf("no timer fire message posted")
		return timerFired{}
	}
}

func selectMsg(roomID, champ string) types.ClientMessage {
	return types.ClientMessage{Type: types.MsgSelectChamp, RoomID: roomID, Champion: champ}
}

// recvMsg receives one outbound message with a timeout so tests never hang.
func recvMsg(t *testing.T, ch <-chan types.ServerMessage, within time.Duration) types.ServerMessage {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatalf("outbox closed unexpectedly")
		}
		return msg
	case <-time.After(within):
		t.Fatalf("timed out waiting for server message")
		return types.ServerMessage{}
	}
}

func drain(ch <-chan types.ServerMessage) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
