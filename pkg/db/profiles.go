package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is one home served by this installation. Exactly one profile is
// active; its settings and listen address are the ones in use.
type Profile struct {
	ID        int64
	Name      string
	Timezone  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location returns the profile time zone, or UTC if it cannot be loaded.
// Forecast times are rendered in it.
func (p *Profile) Location() *time.Location {
	if loc, err := time.LoadLocation(p.Timezone); err == nil {
		return loc
	}
	return time.UTC
}

// ProfileStore provides profile operations.
type ProfileStore interface {
	Get(ctx context.Context, id int64) (*Profile, error)
	GetActive(ctx context.Context) (*Profile, error)
	GetByName(ctx context.Context, name string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Create(ctx context.Context, p *Profile) error
	SetActive(ctx context.Context, id int64) error
	SetTimezone(ctx context.Context, id int64, tz string) error
}

// Profiles returns a ProfileStore for this database.
func (db *DB) Profiles() ProfileStore {
	return profileStore{db: db}
}

type profileStore struct {
	db *DB
}

// query runs a profile SELECT with the given tail (WHERE/ORDER BY) and
// returns every matching row.
func (s profileStore) query(ctx context.Context, tail string, args ...any) ([]*Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, timezone, is_active, created_at, updated_at FROM profiles `+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Profile
	for rows.Next() {
		var (
			p                    Profile
			createdAt, updatedAt string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Timezone, &p.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
		p.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s profileStore) one(ctx context.Context, tail string, args ...any) (*Profile, error) {
	profiles, err := s.query(ctx, tail+` LIMIT 1`, args...)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrProfileNotFound
	}
	return profiles[0], nil
}

func (s profileStore) Get(ctx context.Context, id int64) (*Profile, error) {
	return s.one(ctx, `WHERE id = ?`, id)
}

func (s profileStore) GetActive(ctx context.Context) (*Profile, error) {
	return s.one(ctx, `WHERE is_active = 1`)
}

func (s profileStore) GetByName(ctx context.Context, name string) (*Profile, error) {
	return s.one(ctx, `WHERE name = ?`, name)
}

func (s profileStore) List(ctx context.Context) ([]*Profile, error) {
	return s.query(ctx, `ORDER BY name`)
}

func (s profileStore) Create(ctx context.Context, p *Profile) error {
	if p.Timezone == "" {
		p.Timezone = "UTC"
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (name, timezone, is_active) VALUES (?, ?, 0)`, p.Name, p.Timezone)
	if err != nil {
		return fmt.Errorf("failed to create profile %q: %w", p.Name, err)
	}
	p.ID, err = result.LastInsertId()
	if err != nil {
		return err
	}
	if p.IsActive {
		return s.SetActive(ctx, p.ID)
	}
	return nil
}

// SetActive makes id the only active profile.
func (s profileStore) SetActive(ctx context.Context, id int64) error {
	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM profiles WHERE id = ?)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrProfileNotFound
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE profiles
			SET is_active = (id = ?),
			    updated_at = CASE WHEN id = ? THEN datetime('now') ELSE updated_at END
		`, id, id)
		return err
	})
}

// SetTimezone changes the IANA zone of a profile.
func (s profileStore) SetTimezone(ctx context.Context, id int64, tz string) error {
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET timezone = ?, updated_at = datetime('now') WHERE id = ?`, tz, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrProfileNotFound
	}
	return nil
}
