// Package hub runs the draft coordinator: a single goroutine that owns the
// room store, the connected-client registry, and every room mutation.
// Client messages, disconnects, and timer expiries all arrive as typed
// messages on the inbox and run to completion one at a time, so rooms need
// no locking.
package hub

import (
	"context"

	"go.uber.org/zap"

	"champ-draft-backend/internal/room"
	"champ-draft-backend/internal/stats"
	"champ-draft-backend/internal/types"
)

type Msg interface{ isHubMsg() }

// Connect registers a transport connection and the outbox its writer
// drains. The hub owns the outbox from here on and is the only closer.
type Connect struct {
	ConnID string
	Outbox chan types.ServerMessage
}

// Disconnect reports that a transport connection is gone.
type Disconnect struct{ ConnID string }

// FromClient carries one decoded client message.
type FromClient struct {
	ConnID string
	Msg    types.ClientMessage
}

// Inspect replies with the current view of one room. Used by the room-code
// endpoint and by tests; never sent by clients.
type Inspect struct {
	RoomID string
	Reply  chan View
}

type Shutdown struct{}

// timerFired is posted by the armed turn timer. Gen lets the handler drop
// fires from timers that were superseded while the message sat in the inbox.
type timerFired struct {
	RoomID string
	Gen    uint64
}

func (Connect) isHubMsg()    {}
func (Disconnect) isHubMsg() {}
func (FromClient) isHubMsg() {}
func (Inspect) isHubMsg()    {}
func (Shutdown) isHubMsg()   {}
func (timerFired) isHubMsg() {}

// View is the Inspect reply.
type View struct {
	Room    *room.Snapshot
	Clients int
}

type client struct {
	id     string
	outbox chan types.ServerMessage
	roomID string
	role   string
	name   string
}

type Hub struct {
	inbox   chan Msg
	store   *room.Store
	clients map[string]*client
	clock   Clock
	stats   stats.Recorder
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, store *room.Store, rec stats.Recorder, clock Clock, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan Msg, 64),
		store:   store,
		clients: make(map[string]*client),
		clock:   clock,
		stats:   rec,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

// Inbox is where the transport layer (and tests) post messages.
func (h *Hub) Inbox() chan<- Msg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Connect:
				h.clients[msg.ConnID] = &client{id: msg.ConnID, outbox: msg.Outbox}

			case Disconnect:
				h.handleDisconnect(msg.ConnID)

			case FromClient:
				if c := h.clients[msg.ConnID]; c != nil {
					h.route(c, msg.Msg)
				}

			case timerFired:
				h.handleTimeout(msg)

			case Inspect:
				msg.Reply <- View{Room: h.store.Snapshot(msg.RoomID), Clients: len(h.clients)}

			case Shutdown:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for id, c := range h.clients {
		close(c.outbox)
		delete(h.clients, id)
	}
	h.store.Clear()
	h.cancel()
}

// route validates and dispatches one inbound message. Validation failures
// become a draft-error notice to the sender or a silent drop; they never
// escape past here.
func (h *Hub) route(c *client, m types.ClientMessage) {
	switch m.Type {
	case types.MsgJoinRoom:
		h.handleJoinRoom(c, m)
	case types.MsgChooseFirst:
		h.handleChooseFirst(c, m)
	case types.MsgSelectChamp:
		h.handleSelectChamp(c, m)
	case types.MsgPreSelectChamp:
		h.handlePreSelectChamp(c, m)
	case types.MsgPreDraftSelect:
		h.handlePreDraftSelect(c, m)
	case types.MsgConfirmPreDraft:
		h.handleConfirmPreDraft(c, m)
	case types.MsgCloseRoom:
		h.handleCloseRoom(c, m)
	case types.MsgTogglePause:
		h.handleTogglePause(c, m)
	case types.MsgSetCountdown:
		h.handleSetCountdown(c, m)
	case types.MsgKickPlayer:
		h.handleKickPlayer(c, m)
	case types.MsgChatMessage:
		h.handleChatMessage(c, m)
	default:
		h.send(c, types.ServerMessage{Type: types.EvtDraftError, Error: "unknown message type"})
	}
}

// broadcastState pushes the canonical snapshot to every member of the room.
// Every state-changing operation funnels through here.
func (h *Hub) broadcastState(roomID string) {
	snap := h.store.Snapshot(roomID)
	if snap == nil {
		return
	}
	h.broadcast(roomID, types.ServerMessage{Type: types.EvtRoomState, Room: snap})
}

func (h *Hub) broadcast(roomID string, msg types.ServerMessage) {
	for id, c := range h.clients {
		if c.roomID != roomID {
			continue
		}
		select {
		case c.outbox <- msg:
		default:
			// Slow or wedged client; drop it rather than stall the room.
			close(c.outbox)
			delete(h.clients, id)
			h.log.Warn("dropped slow client", zap.String("conn", id), zap.String("room", roomID))
		}
	}
}

func (h *Hub) send(c *client, msg types.ServerMessage) {
	select {
	case c.outbox <- msg:
	default:
		close(c.outbox)
		delete(h.clients, c.id)
		h.log.Warn("dropped slow client", zap.String("conn", c.id))
	}
}
