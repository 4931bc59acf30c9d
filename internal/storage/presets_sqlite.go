package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"intervaltimer/internal/core/model"
)

const presetsDBFileName = "presets.db"

// SQLitePresetStore keeps presets in a SQLite database.
type SQLitePresetStore struct {
	db *sql.DB
}

// NewSQLitePresetStore opens or creates dir/presets.db.
func NewSQLitePresetStore(dir string) (*SQLitePresetStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return OpenSQLitePresetStore(filepath.Join(dir, presetsDBFileName))
}

// OpenSQLitePresetStore opens the database at dsn.
func OpenSQLitePresetStore(dsn string) (*SQLitePresetStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open presets db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open presets db: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLitePresetStore{db: db}
	if err := store.initTables(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (store *SQLitePresetStore) initTables() error {
	_, err := store.db.Exec(`
		CREATE TABLE IF NOT EXISTS presets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			work_ms INTEGER NOT NULL,
			rest_ms INTEGER NOT NULL,
			intervals INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create presets table: %w", err)
	}
	return nil
}

// Load returns the preset with the given ID.
func (store *SQLitePresetStore) Load(id string) (model.Preset, error) {
	row := store.db.QueryRow(`
		SELECT id, name, work_ms, rest_ms, intervals
		FROM presets
		WHERE id = ?
	`, id)

	preset, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Preset{}, fmt.Errorf("load preset %s: %w", id, model.ErrPresetNotFound)
	}
	if err != nil {
		return model.Preset{}, fmt.Errorf("load preset %s: %w", id, err)
	}
	return preset, nil
}

// Save stores a new preset.
func (store *SQLitePresetStore) Save(name string, interval model.TimeIntervalConfig) (model.Preset, error) {
	if err := model.ValidatePreset(name, interval); err != nil {
		return model.Preset{}, err
	}

	preset := model.Preset{ID: newPresetID(), Name: cleanName(name), Interval: interval}
	_, err := store.db.Exec(`
		INSERT INTO presets (id, name, work_ms, rest_ms, intervals, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, preset.ID, preset.Name, interval.Work.Milliseconds(), interval.Rest.Milliseconds(), interval.Intervals, time.Now().UTC())
	if err != nil {
		return model.Preset{}, fmt.Errorf("insert preset: %w", err)
	}
	return preset, nil
}

// Update replaces the name and interval of an existing preset.
func (store *SQLitePresetStore) Update(preset model.Preset) error {
	if err := model.ValidatePreset(preset.Name, preset.Interval); err != nil {
		return err
	}

	result, err := store.db.Exec(`
		UPDATE presets
		SET name = ?, work_ms = ?, rest_ms = ?, intervals = ?
		WHERE id = ?
	`, cleanName(preset.Name), preset.Interval.Work.Milliseconds(), preset.Interval.Rest.Milliseconds(), preset.Interval.Intervals, preset.ID)
	if err != nil {
		return fmt.Errorf("update preset %s: %w", preset.ID, err)
	}
	return requireAffected(result, "update", preset.ID)
}

// List returns all presets sorted by name.
func (store *SQLitePresetStore) List() ([]model.Preset, error) {
	rows, err := store.db.Query(`
		SELECT id, name, work_ms, rest_ms, intervals
		FROM presets
	`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var presets []model.Preset
	for rows.Next() {
		preset, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("list presets: %w", err)
		}
		presets = append(presets, preset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	sortPresets(presets)
	return presets, nil
}

// Delete removes the preset with the given ID.
func (store *SQLitePresetStore) Delete(id string) error {
	result, err := store.db.Exec(`DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete preset %s: %w", id, err)
	}
	return requireAffected(result, "delete", id)
}

// Close closes the database.
func (store *SQLitePresetStore) Close() error {
	return store.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (model.Preset, error) {
	var (
		preset         model.Preset
		workMs, restMs int64
	)
	if err := row.Scan(&preset.ID, &preset.Name, &workMs, &restMs, &preset.Interval.Intervals); err != nil {
		return model.Preset{}, err
	}
	preset.Interval.Work = time.Duration(workMs) * time.Millisecond
	preset.Interval.Rest = time.Duration(restMs) * time.Millisecond
	return preset, nil
}

func requireAffected(result sql.Result, action, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s preset %s: %w", action, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s preset %s: %w", action, id, model.ErrPresetNotFound)
	}
	return nil
}
