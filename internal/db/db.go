// Package db persists uploaded tracks and computed trajectories in
// SQLite.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Alecbossard/PathPlanning/internal/profile"
)

// DB wraps the SQLite handle with track/trajectory operations.
type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the SQLite database at path and applies any
// pending migrations.
func NewDB(path string) (*DB, error) {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db := &DB{handle}
	if err := db.MigrateUp(); err != nil {
		handle.Close()
		return nil, err
	}
	return db, nil
}

// Track is a stored marker set.
type Track struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"` // raw marker CSV as uploaded
	CreatedAt time.Time `json:"created_at"`
}

// Trajectory is a stored pipeline result for a track.
type Trajectory struct {
	ID        int64                 `json:"id"`
	TrackID   string                `json:"track_id"`
	Optimizer string                `json:"optimizer"`
	Seed      int64                 `json:"seed"`
	Points    []profile.PathPoint   `json:"points"`
	Metadata  profile.TrackMetadata `json:"metadata"`
	CreatedAt time.Time             `json:"created_at"`
}

// InsertTrack stores a new track and returns its generated ID.
func (db *DB) InsertTrack(name, source string) (*Track, error) {
	t := &Track{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Exec(
		`INSERT INTO tracks (track_id, name, source, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, t.Source, t.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert track: %w", err)
	}
	return t, nil
}

// GetTrack fetches one track by ID. Returns sql.ErrNoRows when absent.
func (db *DB) GetTrack(id string) (*Track, error) {
	row := db.QueryRow(
		`SELECT track_id, name, source, created_at FROM tracks WHERE track_id = ?`, id)
	return scanTrack(row)
}

// ListTracks returns all stored tracks, newest first.
func (db *DB) ListTracks() ([]*Track, error) {
	rows, err := db.Query(
		`SELECT track_id, name, source, created_at FROM tracks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// DeleteTrack removes a track and its stored trajectories.
func (db *DB) DeleteTrack(id string) error {
	if _, err := db.Exec(`DELETE FROM trajectories WHERE track_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete trajectories: %w", err)
	}
	if _, err := db.Exec(`DELETE FROM tracks WHERE track_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}
	return nil
}

// InsertTrajectory stores a computed trajectory with its metadata.
func (db *DB) InsertTrajectory(t *Trajectory) error {
	points, err := json.Marshal(t.Points)
	if err != nil {
		return fmt.Errorf("failed to encode trajectory points: %w", err)
	}
	t.CreatedAt = time.Now().UTC()
	res, err := db.Exec(
		`INSERT INTO trajectories (
			track_id, optimizer, seed, points,
			total_length, average_speed, lap_time,
			peak_lateral_g, peak_long_g, min_long_g, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TrackID, t.Optimizer, t.Seed, string(points),
		t.Metadata.TotalLength, t.Metadata.AverageSpeed, t.Metadata.LapTime,
		t.Metadata.PeakLateralG, t.Metadata.PeakLongG, t.Metadata.MinLongG,
		t.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trajectory: %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read trajectory id: %w", err)
	}
	return nil
}

// LatestTrajectory fetches the most recent stored trajectory for a track
// and optimizer. Returns sql.ErrNoRows when none exists.
func (db *DB) LatestTrajectory(trackID, optimizer string) (*Trajectory, error) {
	row := db.QueryRow(
		`SELECT id, track_id, optimizer, seed, points,
			total_length, average_speed, lap_time,
			peak_lateral_g, peak_long_g, min_long_g, created_at
		FROM trajectories
		WHERE track_id = ? AND optimizer = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`,
		trackID, optimizer)
	return scanTrajectory(row)
}

// ListTrajectories returns stored trajectory metadata for a track, newest
// first, without the (potentially large) point payloads.
func (db *DB) ListTrajectories(trackID string) ([]*Trajectory, error) {
	rows, err := db.Query(
		`SELECT id, track_id, optimizer, seed, '[]',
			total_length, average_speed, lap_time,
			peak_lateral_g, peak_long_g, min_long_g, created_at
		FROM trajectories WHERE track_id = ?
		ORDER BY created_at DESC, id DESC`,
		trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trajectories: %w", err)
	}
	defer rows.Close()

	var out []*Trajectory
	for rows.Next() {
		t, err := scanTrajectory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrack(s scanner) (*Track, error) {
	var t Track
	var created string
	if err := s.Scan(&t.ID, &t.Name, &t.Source, &created); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("failed to parse track timestamp: %w", err)
	}
	t.CreatedAt = ts
	return &t, nil
}

func scanTrajectory(s scanner) (*Trajectory, error) {
	var t Trajectory
	var points, created string
	err := s.Scan(&t.ID, &t.TrackID, &t.Optimizer, &t.Seed, &points,
		&t.Metadata.TotalLength, &t.Metadata.AverageSpeed, &t.Metadata.LapTime,
		&t.Metadata.PeakLateralG, &t.Metadata.PeakLongG, &t.Metadata.MinLongG,
		&created)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(points), &t.Points); err != nil {
		return nil, fmt.Errorf("failed to decode trajectory points: %w", err)
	}
	t.Metadata.SampleCount = len(t.Points)
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trajectory timestamp: %w", err)
	}
	t.CreatedAt = ts
	return &t, nil
}
