package stats

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"champ-draft-backend/internal/draft"
)

func sampleSession() Session {
	return Session{
		RoomID:      "ABC123",
		PlayerOrder: []string{"p1", "p2"},
		PlayerNames: map[string]string{"p1": "Alice", "p2": "Bob"},
		Actions: []draft.Action{
			{Team: "p1", Type: draft.Ban, Champion: "Jiyan"},
			{Team: "p2", Type: draft.Ban, Champion: draft.Skipped},
			{Team: "p1", Type: draft.Pick, Champion: "Calcharo"},
			{Team: "p2", Type: draft.Pick, Champion: "Verina"},
			{Team: "p2", Type: draft.Pick, Champion: "Encore"},
		},
	}
}

func TestSessionProjections(t *testing.T) {
	s := sampleSession()

	assert.Equal(t, "Alice", s.PlayerName(0))
	assert.Equal(t, "Bob", s.PlayerName(1))
	assert.Equal(t, []string{"Jiyan"}, s.Bans(), "skipped bans are excluded")
	assert.Equal(t, []string{"Calcharo"}, s.Picks(0))
	assert.Equal(t, []string{"Verina", "Encore"}, s.Picks(1))
}

func TestSessionProjections_Fallbacks(t *testing.T) {
	s := Session{RoomID: "X", PlayerOrder: []string{"p1"}}
	assert.Equal(t, "Player 1", s.PlayerName(0))
	assert.Equal(t, "Player 2", s.PlayerName(1))
	assert.Equal(t, "", s.PlayerID(1))
}

func TestFileRecorder_RecordAndStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	rec := NewFileRecorder(path, zap.NewNop())

	require.NoError(t, rec.RecordSession(context.Background(), sampleSession()))

	overview, err := rec.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, overview.Metadata.TotalSessions)
	assert.Equal(t, 1, overview.Metadata.TotalGames)
	require.NotNil(t, overview.Metadata.FirstSession)

	jiyan := overview.Characters["Jiyan"]
	assert.Equal(t, 1, jiyan.TotalBans)
	assert.Equal(t, 0, jiyan.TotalPicks)
	assert.Equal(t, 1, jiyan.TotalGames)
	assert.Equal(t, 1.0, jiyan.BanRate)
	require.NotNil(t, jiyan.LastBanned)

	verina := overview.Characters["Verina"]
	assert.Equal(t, 1, verina.TotalPicks)
	assert.Equal(t, 1.0, verina.PickRate)

	_, skipped := overview.Characters[draft.Skipped]
	assert.False(t, skipped, "skip marker must never appear as a champion")
}

func TestFileRecorder_AggregatesAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	rec := NewFileRecorder(path, zap.NewNop())

	require.NoError(t, rec.RecordSession(context.Background(), sampleSession()))
	require.NoError(t, rec.RecordSession(context.Background(), sampleSession()))

	overview, err := rec.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, overview.Metadata.TotalSessions)
	jiyan := overview.Characters["Jiyan"]
	assert.Equal(t, 2, jiyan.TotalBans)
	assert.Equal(t, 2, jiyan.TotalGames)
	assert.Equal(t, 1.0, jiyan.BanRate)
}

func TestFileRecorder_LedgerShapeOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	rec := NewFileRecorder(path, zap.NewNop())
	require.NoError(t, rec.RecordSession(context.Background(), sampleSession()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var led struct {
		Sessions []struct {
			SessionID string `json:"sessionId"`
			RoomID    string `json:"roomId"`
			Players   map[string]struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"players"`
			Bans  []string            `json:"bans"`
			Picks map[string][]string `json:"picks"`
		} `json:"sessions"`
		Characters map[string]json.RawMessage `json:"characters"`
	}
	require.NoError(t, json.Unmarshal(data, &led))
	require.Len(t, led.Sessions, 1)

	sess := led.Sessions[0]
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, "ABC123", sess.RoomID)
	assert.Equal(t, "Alice", sess.Players["player1"].Name)
	assert.Equal(t, []string{"Jiyan"}, sess.Bans)
	assert.Contains(t, led.Characters, "Calcharo")
}

func TestFileRecorder_StatsOnMissingFile(t *testing.T) {
	rec := NewFileRecorder(filepath.Join(t.TempDir(), "never-written.json"), zap.NewNop())
	overview, err := rec.Stats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, overview.Characters)
	assert.Equal(t, 0, overview.Metadata.TotalSessions)
}
