package hub

import (
	"go.uber.org/zap"

	"champ-draft-backend/internal/draft"
	"champ-draft-backend/internal/room"
	"champ-draft-backend/internal/types"
)

func (h *Hub) handleJoinRoom(c *client, m types.ClientMessage) {
	if m.Role == types.RoleHost && h.store.Get(m.RoomID) == nil {
		h.store.Create(m.RoomID, c.id)
		h.log.Info("room created", zap.String("room", m.RoomID), zap.String("host", c.id))
	}

	rm := h.store.Get(m.RoomID)
	if rm == nil {
		h.send(c, types.ServerMessage{Type: types.EvtDraftError, Error: "Room not found."})
		return
	}

	c.roomID = m.RoomID
	c.role = m.Role

	switch m.Role {
	case types.RolePlayer:
		h.playerJoin(c, rm, m.PlayerName)
	case types.RoleHost:
		// Host reconnect re-points the room at the new connection.
		rm.HostID = c.id
	}

	if len(rm.PlayerOrder) >= 1 && rm.State == room.StateWaiting {
		rm.State = room.StatePreDraft
	}

	h.broadcastState(rm.ID)
	h.send(c, types.ServerMessage{Type: types.EvtChatHistory, ChatHistory: rm.ChatHistory()})
}

// playerJoin handles the three player-join cases: reconnect under a known
// display name, a full room, or a fresh seat.
func (h *Hub) playerJoin(c *client, rm *room.Room, name string) {
	c.name = name

	for oldID, p := range rm.PlayerHistory {
		if p.Name != name {
			continue
		}
		if _, connected := rm.Players[oldID]; connected {
			continue
		}
		// Disconnected player with a matching name: substitute the new
		// identity everywhere the old one appears.
		*rm = room.Reassign(*rm, oldID, c.id)
		h.log.Info("player reconnected",
			zap.String("room", rm.ID),
			zap.String("player", name),
			zap.String("old", oldID),
			zap.String("new", c.id))
		return
	}

	if len(rm.Players) >= 2 {
		h.send(c, types.ServerMessage{Type: types.EvtDraftError, Error: "Room is full."})
		return
	}

	p := room.Player{Name: name}
	rm.Players[c.id] = p
	rm.PlayerHistory[c.id] = p
	rm.PlayerOrder = append(rm.PlayerOrder, c.id)
	h.log.Info("player joined", zap.String("room", rm.ID), zap.String("player", name), zap.String("conn", c.id))
}

// handleChooseFirst seeds phase-1 initiative and starts the draft. Host
// only, and only before any script exists.
func (h *Hub) handleChooseFirst(c *client, m types.ClientMessage) {
	rm := h.store.Get(m.RoomID)
	if rm == nil || rm.HostID != c.id || rm.State != room.StateDrafting || len(rm.DraftOrder) > 0 {
		return
	}
	if len(rm.PlayerOrder) != 2 {
		h.send(c, types.ServerMessage{Type: types.EvtDraftError, Error: "Two players are required."})
		return
	}

	second := ""
	for _, id := range rm.PlayerOrder {
		if id != m.Team {
			second = id
		}
	}
	if second == "" || (m.Team != rm.PlayerOrder[0] && m.Team != rm.PlayerOrder[1]) {
		h.send(c, types.ServerMessage{Type: types.EvtDraftError, Error: "Unknown team."})
		return
	}

	rm.DraftOrder = draft.Order(m.Team, second, 1)
	rm.Phase = 1
	rm.CurrentTurn = 0
	rm.NextTurn = &rm.DraftOrder[0]
	h.armTimer(rm)
	h.broadcastState(rm.ID)
}

// handleSelectChamp locks in a champion for the active turn. A message from
// anyone but the turn owner is dropped without a reply.
func (h *Hub) handleSelectChamp(c *client, m types.ClientMessage) {
	rm := h.store.Get(m.RoomID)
	if rm == nil {
		return
	}
	turn := rm.CurrentStep()
	if turn == nil || c.id != turn.Team {
		return
	}
	if draft.Taken(rm.Actions, m.Champion) {
		h.send(c, types.ServerMessage{Type: types.EvtDraftError, Error: "Champion already banned or picked."})
		return
	}

	rm.Actions = append(rm.Actions, draft.Action{Team: turn.Team, Type: turn.Type, Champion: m.Champion})
	h.nextTurn(rm)
}

// handlePreSelectChamp relays an in-progress, non-committed choice to the
// room. Ungated and never persisted.
func (h *Hub) handlePreSelectChamp(c *client, m types.ClientMessage) {
	if h.store.Get(m.RoomID) == nil {
		return
	}
	champ := m.Champion
	h.broadcast(m.RoomID, types.ServerMessage{Type: types.EvtPreSelectUpdate, Champion: &champ})
}

func (h *Hub) handlePreDraftSelect(c *client, m types.ClientMessage) {
	rm := h.store.Get(m.RoomID)
	if rm == nil || rm.State != room.StatePreDraft {
		return
	}
	rm.PreDraftSelections[c.id] = append([]string{}, m.Champions...)
	h.broadcastState(rm.ID)
}

func (h *Hub) handleConfirmPreDraft(c *client, m types.ClientMessage) {
	rm := h.store.Get(m.RoomID)
	if rm == nil || rm.State != room.StatePreDraft {
		return
	}
	rm.PreDraftReady[c.id] = true

	if len(rm.PlayerOrder) == 2 {
		ready := true
		for _, id := range rm.PlayerOrder {
			if !rm.PreDraftReady[id] {
				ready = false
			}
		}
		if ready {
			rm.State = room.StateDrafting
		}
	}
	h.broadcastState(rm.ID)
}

func (h *Hub) handleCloseRoom(c *client, m types.ClientMessage) {
	rm := h.store.Get(m.RoomID)
	if rm == nil || rm.HostID != c.id {
		return
	}
	h.closeRoom(rm)
}

func (h *Hub) closeRoom(rm *room.Room) {
	h.broadcast(rm.ID, types.ServerMessage{Type: types.EvtHostLeft})
	for _, cl := range h.clients {
		if cl.roomID == rm.ID {
			cl.roomID = ""
		}
	}
	h.store.Delete(rm.ID)
	h.log.Info("room closed", zap.String("room", rm.ID))
}

func (h *Hub) handleTogglePause(c *client, m types.ClientMessage) {
	rm := h.store.Get(m.RoomID)
	if rm == nil || rm.HostID != c.id || rm.NextTurn == nil {
		return
	}
	if rm.Paused {
		h.resumeTimer(rm)
	} else {
		h.pauseTimer(rm)
	}
	h.broadcastState(rm.ID)
}

func (h *Hub) handleSetCountdown(c *client, m types.ClientMessage) {
	rm := h.store.Get(m.RoomID)
	if rm == nil || rm.HostID != c.id || m.Seconds <= 0 {
		return
	}
	rm.CountdownDuration = m.Seconds
	h.broadcastState(rm.ID)
}

// handleKickPlayer forcibly ends a member's session: it is notified with a
// reason, removed from the room like a disconnect, and its outbox closed so
// the transport tears the connection down.
func (h *Hub) handleKickPlayer(c *client, m types.ClientMessage) {
	rm := h.store.Get(m.RoomID)
	if rm == nil || rm.HostID != c.id {
		return
	}
	target := h.clients[m.TargetID]
	if target == nil || target.roomID != rm.ID {
		return
	}

	h.send(target, types.ServerMessage{Type: types.EvtKicked, Reason: "Kicked by host"})
	if h.clients[target.id] != nil { // send may already have dropped it
		close(target.outbox)
		delete(h.clients, target.id)
	}
	h.log.Info("player kicked", zap.String("room", rm.ID), zap.String("conn", target.id))
	h.playerLeave(target, rm)
}

func (h *Hub) handleChatMessage(c *client, m types.ClientMessage) {
	rm := h.store.Get(m.RoomID)
	if rm == nil {
		return
	}
	msg := room.ChatMessage{
		Sender:    m.Sender,
		Message:   m.Message,
		Timestamp: h.clock.Now().UnixMilli(),
	}
	rm.AppendChat(msg)
	h.broadcast(rm.ID, types.ServerMessage{Type: types.EvtChatMessage, Chat: &msg})
}

// handleDisconnect tears the room down when the host leaves; a player
// departure only removes presence and pauses a running turn so the
// disconnected player's budget is not consumed.
func (h *Hub) handleDisconnect(connID string) {
	c := h.clients[connID]
	if c == nil {
		return
	}
	delete(h.clients, connID)
	close(c.outbox)

	rm := h.store.Get(c.roomID)
	if rm == nil {
		return
	}

	if c.role == types.RoleHost || rm.HostID == c.id {
		h.closeRoom(rm)
		return
	}
	h.playerLeave(c, rm)
}

func (h *Hub) playerLeave(c *client, rm *room.Room) {
	if _, ok := rm.Players[c.id]; !ok {
		h.broadcastState(rm.ID)
		return
	}
	delete(rm.Players, c.id)
	if rm.NextTurn != nil && !rm.Paused {
		h.pauseTimer(rm)
	}
	h.log.Info("player left", zap.String("room", rm.ID), zap.String("conn", c.id))
	h.broadcastState(rm.ID)
}
