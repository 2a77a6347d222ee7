package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/snickbit/dungeon/internal/dungeon"
)

// ErrNotFound is returned when no archived dungeon matches the query.
var ErrNotFound = errors.New("dungeon not found")

// ErrDuplicate is returned when a dungeon with the same seed and
// options is already archived.
var ErrDuplicate = errors.New("dungeon already archived")

// ArchivedDungeon is one stored generation result.
type ArchivedDungeon struct {
	ID        int64
	Seed      string
	Width     int
	Height    int
	RoomCount int
	Options   string // JSON-encoded dungeon.Options
	Tiles     string // JSON-encoded results payload
	CreatedAt time.Time
}

// SaveDungeon archives a build result together with the options that
// produced it.
func (d *Database) SaveDungeon(results *dungeon.Results, opts dungeon.Options) (int64, error) {
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return 0, fmt.Errorf("failed to encode options: %w", err)
	}
	tilesJSON, err := json.Marshal(results)
	if err != nil {
		return 0, fmt.Errorf("failed to encode dungeon: %w", err)
	}

	query := fmt.Sprintf(
		`INSERT INTO dungeons (seed, width, height, room_count, options, tiles) VALUES (%s, %s, %s, %s, %s, %s)%s`,
		d.dialect.Placeholder(1), d.dialect.Placeholder(2), d.dialect.Placeholder(3),
		d.dialect.Placeholder(4), d.dialect.Placeholder(5), d.dialect.Placeholder(6),
		d.dialect.ReturningClause("id"),
	)

	args := []any{
		results.Seed(), results.Width(), results.Height(),
		len(results.Rooms()), string(optsJSON), string(tilesJSON),
	}

	if d.dialect.SupportsLastInsertID() {
		result, err := d.db.Exec(query, args...)
		if err != nil {
			if d.dialect.IsDuplicateKeyError(err) {
				return 0, ErrDuplicate
			}
			return 0, fmt.Errorf("failed to save dungeon: %w", err)
		}
		return result.LastInsertId()
	}

	var id int64
	if err := d.db.QueryRow(query, args...).Scan(&id); err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("failed to save dungeon: %w", err)
	}
	return id, nil
}

// GetDungeon returns the most recently archived dungeon for a seed.
func (d *Database) GetDungeon(seed string) (*ArchivedDungeon, error) {
	query := fmt.Sprintf(
		`SELECT id, seed, width, height, room_count, options, tiles, created_at
		 FROM dungeons WHERE seed = %s ORDER BY id DESC LIMIT 1`,
		d.dialect.Placeholder(1),
	)

	var archived ArchivedDungeon
	err := d.db.QueryRow(query, seed).Scan(
		&archived.ID, &archived.Seed, &archived.Width, &archived.Height,
		&archived.RoomCount, &archived.Options, &archived.Tiles, &archived.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dungeon: %w", err)
	}
	return &archived, nil
}

// ListDungeons returns up to limit archived dungeons, newest first.
func (d *Database) ListDungeons(limit int) ([]*ArchivedDungeon, error) {
	if limit < 1 {
		limit = 50
	}
	query := fmt.Sprintf(
		`SELECT id, seed, width, height, room_count, options, tiles, created_at
		 FROM dungeons ORDER BY id DESC LIMIT %s`,
		d.dialect.Placeholder(1),
	)

	rows, err := d.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list dungeons: %w", err)
	}
	defer rows.Close()

	var dungeons []*ArchivedDungeon
	for rows.Next() {
		var archived ArchivedDungeon
		if err := rows.Scan(
			&archived.ID, &archived.Seed, &archived.Width, &archived.Height,
			&archived.RoomCount, &archived.Options, &archived.Tiles, &archived.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dungeon: %w", err)
		}
		dungeons = append(dungeons, &archived)
	}
	return dungeons, rows.Err()
}

// DeleteDungeon removes every archived dungeon for a seed and reports
// how many rows went away.
func (d *Database) DeleteDungeon(seed string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM dungeons WHERE seed = %s`, d.dialect.Placeholder(1))
	result, err := d.db.Exec(query, seed)
	if err != nil {
		return 0, fmt.Errorf("failed to delete dungeon: %w", err)
	}
	return result.RowsAffected()
}
