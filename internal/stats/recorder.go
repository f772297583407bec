// Package stats records finished draft sessions to durable storage. It is
// deliberately decoupled from the live room path: the hub hands a session
// over and moves on, and any failure here stays here.
package stats

import (
	"context"
	"time"

	"champ-draft-backend/internal/draft"
)

// Recorder is what the hub calls once per finished draft.
type Recorder interface {
	RecordSession(ctx context.Context, s Session) error
}

// Session is the summary of one finished draft.
type Session struct {
	RoomID      string
	Actions     []draft.Action
	PlayerOrder []string
	PlayerNames map[string]string // identity -> display name
}

// PlayerName returns the display name for roster position idx, with the
// positional fallback the original ledger used.
func (s Session) PlayerName(idx int) string {
	if idx < len(s.PlayerOrder) {
		if name, ok := s.PlayerNames[s.PlayerOrder[idx]]; ok && name != "" {
			return name
		}
	}
	if idx == 0 {
		return "Player 1"
	}
	return "Player 2"
}

// PlayerID returns the identity at roster position idx, or "".
func (s Session) PlayerID(idx int) string {
	if idx < len(s.PlayerOrder) {
		return s.PlayerOrder[idx]
	}
	return ""
}

// Bans lists every banned champion, skipped turns excluded.
func (s Session) Bans() []string {
	out := []string{}
	for _, a := range s.Actions {
		if a.Type == draft.Ban && a.Champion != draft.Skipped {
			out = append(out, a.Champion)
		}
	}
	return out
}

// Picks lists the champions picked by the identity at roster position idx.
func (s Session) Picks(idx int) []string {
	out := []string{}
	id := s.PlayerID(idx)
	for _, a := range s.Actions {
		if a.Type == draft.Pick && a.Team == id && a.Champion != draft.Skipped {
			out = append(out, a.Champion)
		}
	}
	return out
}

// CharacterStats is the per-champion aggregate across all sessions.
type CharacterStats struct {
	TotalBans   int        `json:"totalBans"`
	TotalPicks  int        `json:"totalPicks"`
	TotalGames  int        `json:"totalGames"`
	BanRate     float64    `json:"banRate"`
	PickRate    float64    `json:"pickRate"`
	LastBanned  *time.Time `json:"lastBanned"`
	LastPicked  *time.Time `json:"lastPicked"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// Metadata carries ledger-wide counters.
type Metadata struct {
	TotalGames    int        `json:"totalGames"`
	TotalSessions int        `json:"totalSessions"`
	FirstSession  *time.Time `json:"firstSession"`
	LastSession   *time.Time `json:"lastSession"`
	LastUpdated   *time.Time `json:"lastUpdated"`
}

// Overview is the aggregate view served by the stats endpoint.
type Overview struct {
	Characters map[string]CharacterStats `json:"characters"`
	Metadata   Metadata                  `json:"metadata"`
}

// apply folds one session's actions into the aggregates at the given
// timestamp. Shared by the file and database backends.
func apply(characters map[string]CharacterStats, s Session, now time.Time) {
	appeared := map[string]bool{}
	for _, a := range s.Actions {
		if a.Champion == draft.Skipped {
			continue
		}
		c := characters[a.Champion]
		switch a.Type {
		case draft.Ban:
			c.TotalBans++
			t := now
			c.LastBanned = &t
		case draft.Pick:
			c.TotalPicks++
			t := now
			c.LastPicked = &t
		}
		characters[a.Champion] = c
		appeared[a.Champion] = true
	}
	for name := range appeared {
		c := characters[name]
		c.TotalGames++
		c.BanRate = float64(c.TotalBans) / float64(c.TotalGames)
		c.PickRate = float64(c.TotalPicks) / float64(c.TotalGames)
		t := now
		c.LastUpdated = &t
		characters[name] = c
	}
}
