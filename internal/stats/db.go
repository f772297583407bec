package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"champ-draft-backend/internal/draft"
)

// DBRecorder persists sessions to Postgres through GORM. Schema is managed
// by AutoMigrate; this is an append-mostly ledger, not an OLTP store.
type DBRecorder struct {
	db  *gorm.DB
	log *zap.Logger
}

type SessionRow struct {
	ID          string `gorm:"primaryKey"`
	RoomID      string `gorm:"index"`
	Player1Name string
	Player2Name string
	CreatedAt   time.Time
}

type ActionRow struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	SessionID string `gorm:"index"`
	Seq       int
	Team      string
	Type      string
	Champion  string
}

type CharacterRow struct {
	Name       string `gorm:"primaryKey"`
	TotalBans  int
	TotalPicks int
	TotalGames int
	LastBanned *time.Time
	LastPicked *time.Time
	UpdatedAt  time.Time
}

func (SessionRow) TableName() string   { return "draft_sessions" }
func (ActionRow) TableName() string    { return "draft_actions" }
func (CharacterRow) TableName() string { return "character_stats" }

func NewDBRecorder(dsn string, log *zap.Logger) (*DBRecorder, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&SessionRow{}, &ActionRow{}, &CharacterRow{}); err != nil {
		return nil, err
	}
	return &DBRecorder{db: db, log: log}, nil
}

// RecordSession writes the session, its actions, and the per-champion
// aggregate updates in one transaction.
func (r *DBRecorder) RecordSession(ctx context.Context, s Session) error {
	now := time.Now().UTC()
	id := uuid.NewString()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&SessionRow{
			ID:          id,
			RoomID:      s.RoomID,
			Player1Name: s.PlayerName(0),
			Player2Name: s.PlayerName(1),
			CreatedAt:   now,
		}).Error; err != nil {
			return err
		}

		for i, a := range s.Actions {
			team := s.PlayerNames[a.Team]
			if team == "" {
				team = a.Team
			}
			if err := tx.Create(&ActionRow{
				SessionID: id,
				Seq:       i,
				Team:      team,
				Type:      string(a.Type),
				Champion:  a.Champion,
			}).Error; err != nil {
				return err
			}
		}

		characters := map[string]CharacterStats{}
		names := []string{}
		for _, a := range s.Actions {
			if a.Champion == draft.Skipped {
				continue
			}
			if _, seen := characters[a.Champion]; !seen {
				names = append(names, a.Champion)
			}
			characters[a.Champion] = CharacterStats{}
		}
		for _, name := range names {
			var row CharacterRow
			if err := tx.Where(CharacterRow{Name: name}).
				Attrs(CharacterRow{Name: name}).
				FirstOrCreate(&row).Error; err != nil {
				return err
			}
			characters[name] = CharacterStats{
				TotalBans:  row.TotalBans,
				TotalPicks: row.TotalPicks,
				TotalGames: row.TotalGames,
				LastBanned: row.LastBanned,
				LastPicked: row.LastPicked,
			}
		}

		apply(characters, s, now)

		for _, name := range names {
			c := characters[name]
			if err := tx.Model(&CharacterRow{}).Where("name = ?", name).Updates(map[string]any{
				"total_bans":  c.TotalBans,
				"total_picks": c.TotalPicks,
				"total_games": c.TotalGames,
				"last_banned": c.LastBanned,
				"last_picked": c.LastPicked,
				"updated_at":  now,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Info("session recorded", zap.String("room", s.RoomID), zap.String("session", id))
	return nil
}

// Stats builds the aggregate view from the character table.
func (r *DBRecorder) Stats(ctx context.Context) (Overview, error) {
	var rows []CharacterRow
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return Overview{}, err
	}

	out := Overview{Characters: map[string]CharacterStats{}}
	for _, row := range rows {
		c := CharacterStats{
			TotalBans:  row.TotalBans,
			TotalPicks: row.TotalPicks,
			TotalGames: row.TotalGames,
			LastBanned: row.LastBanned,
			LastPicked: row.LastPicked,
		}
		if c.TotalGames > 0 {
			c.BanRate = float64(c.TotalBans) / float64(c.TotalGames)
			c.PickRate = float64(c.TotalPicks) / float64(c.TotalGames)
		}
		updated := row.UpdatedAt
		c.LastUpdated = &updated
		out.Characters[row.Name] = c
	}

	var sessions int64
	if err := r.db.WithContext(ctx).Model(&SessionRow{}).Count(&sessions).Error; err != nil {
		return Overview{}, err
	}
	out.Metadata.TotalSessions = int(sessions)
	out.Metadata.TotalGames = int(sessions)

	var last SessionRow
	if err := r.db.WithContext(ctx).Order("created_at desc").Limit(1).Find(&last).Error; err == nil && last.ID != "" {
		t := last.CreatedAt
		out.Metadata.LastSession = &t
	}
	return out, nil
}
