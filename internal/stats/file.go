package stats

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileRecorder keeps the whole ledger in one JSON file, load-modify-save
// per session. Plenty for a single-process tool; the mutex covers multiple
// drafts finishing at once.
type FileRecorder struct {
	path string
	mu   sync.Mutex
	log  *zap.Logger
}

func NewFileRecorder(path string, log *zap.Logger) *FileRecorder {
	return &FileRecorder{path: path, log: log}
}

type sessionPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type sessionRecord struct {
	SessionID string                   `json:"sessionId"`
	Timestamp time.Time                `json:"timestamp"`
	RoomID    string                   `json:"roomId"`
	Players   map[string]sessionPlayer `json:"players"`
	Bans      []string                 `json:"bans"`
	Picks     map[string][]string      `json:"picks"`
}

type ledger struct {
	Sessions   []sessionRecord           `json:"sessions"`
	Characters map[string]CharacterStats `json:"characters"`
	Metadata   Metadata                  `json:"metadata"`
}

func emptyLedger() ledger {
	return ledger{
		Sessions:   []sessionRecord{},
		Characters: map[string]CharacterStats{},
	}
}

// RecordSession appends the session and folds it into the aggregates.
func (f *FileRecorder) RecordSession(ctx context.Context, s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	led, err := f.load()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	led.Sessions = append(led.Sessions, sessionRecord{
		SessionID: uuid.NewString(),
		Timestamp: now,
		RoomID:    s.RoomID,
		Players: map[string]sessionPlayer{
			"player1": {ID: s.PlayerID(0), Name: s.PlayerName(0)},
			"player2": {ID: s.PlayerID(1), Name: s.PlayerName(1)},
		},
		Bans: s.Bans(),
		Picks: map[string][]string{
			"player1": s.Picks(0),
			"player2": s.Picks(1),
		},
	})

	apply(led.Characters, s, now)

	led.Metadata.TotalGames++
	led.Metadata.TotalSessions++
	if led.Metadata.FirstSession == nil {
		t := now
		led.Metadata.FirstSession = &t
	}
	t := now
	led.Metadata.LastSession = &t
	led.Metadata.LastUpdated = &t

	if err := f.save(led); err != nil {
		return err
	}
	f.log.Info("session recorded", zap.String("room", s.RoomID), zap.String("file", f.path))
	return nil
}

// Stats returns the aggregate view for the stats endpoint.
func (f *FileRecorder) Stats(ctx context.Context) (Overview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	led, err := f.load()
	if err != nil {
		return Overview{}, err
	}
	return Overview{Characters: led.Characters, Metadata: led.Metadata}, nil
}

func (f *FileRecorder) load() (ledger, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptyLedger(), nil
	}
	if err != nil {
		return ledger{}, err
	}
	led := emptyLedger()
	if err := json.Unmarshal(data, &led); err != nil {
		return ledger{}, err
	}
	if led.Characters == nil {
		led.Characters = map[string]CharacterStats{}
	}
	return led, nil
}

// save writes through a temp file and renames so a crash mid-write cannot
// truncate the ledger.
func (f *FileRecorder) save(led ledger) error {
	data, err := json.MarshalIndent(led, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
