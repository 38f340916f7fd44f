package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BattleRecord is one finished battle against the CPU.
type BattleRecord struct {
	ID          int64
	MatchID     string
	PlayerScore int
	CPUScore    int
	PlayerWon   bool
	Duration    time.Duration
	CreatedAt   time.Time
}

// BattleTally counts wins and losses over all recorded battles.
type BattleTally struct {
	Wins   int
	Losses int
}

// SaveBattle records a battle. A missing MatchID is filled with a new UUID.
// Returns the match ID.
func (s *Store) SaveBattle(r BattleRecord) (string, error) {
	if r.MatchID == "" {
		r.MatchID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO battles (match_id, player_score, cpu_score, player_won, duration_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		r.MatchID, r.PlayerScore, r.CPUScore, r.PlayerWon, r.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save battle: %w", err)
	}
	return r.MatchID, nil
}

// BattleByID retrieves a battle by its match ID. Returns nil if not found.
func (s *Store) BattleByID(matchID string) (*BattleRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, match_id, player_score, cpu_score, player_won, duration_ms, created_at
		 FROM battles
		 WHERE match_id = ?`,
		matchID,
	)

	r, err := scanBattle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battle: %w", err)
	}
	return &r, nil
}

// RecentBattles retrieves the most recent battles, newest first.
func (s *Store) RecentBattles(limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, player_score, cpu_score, player_won, duration_ms, created_at
		 FROM battles
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	defer rows.Close()

	var results []BattleRecord
	for rows.Next() {
		r, err := scanBattle(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// Tally returns the win/loss record.
func (s *Store) Tally() (BattleTally, error) {
	var t BattleTally
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(player_won), 0), COALESCE(SUM(1 - player_won), 0) FROM battles`,
	).Scan(&t.Wins, &t.Losses)
	if err != nil {
		return t, fmt.Errorf("storage: cannot tally battles: %w", err)
	}
	return t, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBattle(sc scanner) (BattleRecord, error) {
	var r BattleRecord
	var durationMS int64
	var createdAt any
	err := sc.Scan(&r.ID, &r.MatchID, &r.PlayerScore, &r.CPUScore, &r.PlayerWon, &durationMS, &createdAt)
	if err != nil {
		return r, err
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}
