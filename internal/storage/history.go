/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mapmeasure/internal/domain"
	applog "mapmeasure/internal/log"
	"mapmeasure/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// HistoryDirName stores all per-session ephemeral/history data under the session root.
	HistoryDirName  = ".mme"
	HistoryFileName = "history.sqlite"

	// historySchemaVersion tracks the local SQLite schema for the embedded history.
	// Bump this when you perform breaking schema changes and add migrations.
	historySchemaVersion = 1
)

// HistoryPath returns the full path to the session's embedded history database file.
func HistoryPath(sessionRoot string) string {
	return filepath.Join(sessionRoot, HistoryDirName, HistoryFileName)
}

// InitOrOpenHistory ensures that the per-session SQLite history exists at .mme/history.sqlite,
// opens the database, enables WAL mode, and ensures the meta/version tables exist.
// The returned *sql.DB is ready for use. Callers may close it when no longer needed.
func InitOrOpenHistory(sessionRoot string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "history_init").With(
		slog.String("root", sessionRoot),
	)
	if strings.TrimSpace(sessionRoot) == "" {
		return nil, errors.New("session root is required")
	}
	if err := os.MkdirAll(filepath.Join(sessionRoot, HistoryDirName), 0o755); err != nil {
		l.Error("create .mme dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create .mme dir: %w", err)
	}

	path := HistoryPath(sessionRoot)
	// Use a URI with shared cache and set busy timeout. Convert to forward slashes for SQLite URI.
	uriPath := filepath.ToSlash(path)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", uriPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Set reasonable connection pool limits for embedded usage.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Ensure WAL mode is active.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureHistorySchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure history schema failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("history ready", slog.String("path", path))
	return db, nil
}

func ensureHistorySchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS measurements (
			rowid_pk       INTEGER PRIMARY KEY AUTOINCREMENT,
			id             TEXT NOT NULL,
			start_x        REAL NOT NULL,
			start_y        REAL NOT NULL,
			end_x          REAL NOT NULL,
			end_y          REAL NOT NULL,
			pixel_distance REAL NOT NULL,
			grid_distance  REAL NOT NULL,
			angle_degrees  REAL NOT NULL,
			label          TEXT NOT NULL DEFAULT '',
			recorded_at    TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_measurements_recorded ON measurements(recorded_at);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	// Seed or update single-row version info
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, historySchemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// language=SQL
// dialect=SQLite
const insertMeasurementSQL = `INSERT INTO measurements
	(id, start_x, start_y, end_x, end_y, pixel_distance, grid_distance, angle_degrees, label, recorded_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// language=SQL
// dialect=SQLite
const listRecentSQL = `SELECT id, start_x, start_y, end_x, end_y, pixel_distance, grid_distance, angle_degrees, label, recorded_at
	FROM measurements ORDER BY rowid_pk DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const pruneHistorySQL = `DELETE FROM measurements WHERE rowid_pk NOT IN (
	SELECT rowid_pk FROM measurements ORDER BY rowid_pk DESC LIMIT ?
)`

// HistoryRecord is one persisted completed measurement with its record time.
type HistoryRecord struct {
	Measurement domain.Measurement
	RecordedAt  time.Time
}

// HistoryStore persists completed measurements into the session's embedded
// SQLite database. It satisfies the engine's history recorder hook. A zero
// KeepLast disables pruning.
type HistoryStore struct {
	Root     string
	KeepLast int
}

// NewHistoryStore returns a store rooted at the given session directory.
func NewHistoryStore(root string, keepLast int) *HistoryStore {
	return &HistoryStore{Root: root, KeepLast: keepLast}
}

// Record inserts a completed measurement and prunes old rows beyond KeepLast.
func (s *HistoryStore) Record(m domain.Measurement) error {
	if s == nil || strings.TrimSpace(s.Root) == "" {
		return errors.New("history store has no root")
	}
	db, err := InitOrOpenHistory(s.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = db.ExecContext(ctx, insertMeasurementSQL,
		m.ID, m.Start.X, m.Start.Y, m.End.X, m.End.Y,
		m.PixelDistance, m.GridDistance, m.AngleDegrees, m.Label,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert measurement: %w", err)
	}
	if s.KeepLast > 0 {
		if _, err := db.ExecContext(ctx, pruneHistorySQL, s.KeepLast); err != nil {
			return fmt.Errorf("prune history: %w", err)
		}
	}
	return nil
}

// Recent returns up to limit most recent history records, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]HistoryRecord, error) {
	if s == nil || strings.TrimSpace(s.Root) == "" {
		return nil, errors.New("history store has no root")
	}
	if limit <= 0 {
		limit = 50
	}
	db, err := InitOrOpenHistory(s.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, listRecentSQL, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []HistoryRecord
	for rows.Next() {
		var rec HistoryRecord
		var tsStr string
		m := &rec.Measurement
		if err := rows.Scan(&m.ID, &m.Start.X, &m.Start.Y, &m.End.X, &m.End.Y,
			&m.PixelDistance, &m.GridDistance, &m.AngleDegrees, &m.Label, &tsStr); err != nil {
			return nil, err
		}
		m.State = domain.MeasurementCompleted
		rec.RecordedAt, _ = time.Parse(time.RFC3339Nano, tsStr)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Clear removes all history records.
func (s *HistoryStore) Clear(ctx context.Context) error {
	if s == nil || strings.TrimSpace(s.Root) == "" {
		return errors.New("history store has no root")
	}
	db, err := InitOrOpenHistory(s.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, `DELETE FROM measurements`)
	return err
}
