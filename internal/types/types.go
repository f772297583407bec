// Package types defines the wire envelopes exchanged over the realtime
// channel. Transport framing lives in internal/ws; these are just payloads.
package types

import (
	"champ-draft-backend/internal/draft"
	"champ-draft-backend/internal/room"
)

// Inbound message types.
const (
	MsgJoinRoom        = "join-room"
	MsgChooseFirst     = "choose-first"
	MsgSelectChamp     = "select-champ"
	MsgPreSelectChamp  = "pre-select-champ"
	MsgPreDraftSelect  = "pre-draft-select"
	MsgConfirmPreDraft = "confirm-pre-draft"
	MsgCloseRoom       = "close-room"
	MsgTogglePause     = "toggle-pause"
	MsgSetCountdown    = "set-countdown"
	MsgKickPlayer      = "kick-player"
	MsgChatMessage     = "chat-message"
)

// Outbound message types.
const (
	EvtRoomState       = "room-state"
	EvtDraftFinished   = "draft-finished"
	EvtHostLeft        = "host-left"
	EvtKicked          = "kicked"
	EvtPreSelectUpdate = "pre-select-update"
	EvtChatMessage     = "chat-message"
	EvtChatHistory     = "chat-history"
	EvtDraftError      = "draft-error"
)

// Roles carried by join-room. Anything else is treated as a spectator.
const (
	RoleHost   = "host"
	RolePlayer = "player"
)

// ClientMessage is the single envelope for all client-to-server events.
type ClientMessage struct {
	Type       string   `json:"type"`
	RoomID     string   `json:"roomId,omitempty"`
	Role       string   `json:"role,omitempty"`
	PlayerName string   `json:"playerName,omitempty"`
	Team       string   `json:"team,omitempty"`
	Champion   string   `json:"champion,omitempty"`
	Champions  []string `json:"champions,omitempty"`
	Seconds    int      `json:"seconds,omitempty"`
	TargetID   string   `json:"targetId,omitempty"`
	Message    string   `json:"message,omitempty"`
	Sender     string   `json:"sender,omitempty"`
}

// ServerMessage is the envelope for everything the hub emits. Champion is a
// pointer so a pre-select relay can carry an explicit cleared value.
type ServerMessage struct {
	Type        string             `json:"type"`
	Room        *room.Snapshot     `json:"room,omitempty"`
	Actions     []draft.Action     `json:"actions,omitempty"`
	Champion    *string            `json:"champion,omitempty"`
	Chat        *room.ChatMessage  `json:"chat,omitempty"`
	ChatHistory []room.ChatMessage `json:"chatHistory,omitempty"`
	Error       string             `json:"error,omitempty"`
	Reason      string             `json:"reason,omitempty"`
}
