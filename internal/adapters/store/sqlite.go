// Package store implements ports.DeploymentStore backed by SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"slipway/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS deployments (
	id           TEXT PRIMARY KEY,
	app_name     TEXT NOT NULL,
	image        TEXT NOT NULL,
	container_id TEXT NOT NULL DEFAULT '',
	port         INTEGER NOT NULL,
	status       TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_deployments_app ON deployments(app_name);
`

type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the deployment database at path.
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, d domain.Deployment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deployments (id, app_name, image, container_id, port, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			image = excluded.image,
			container_id = excluded.container_id,
			port = excluded.port,
			status = excluded.status`,
		d.ID, d.AppName, d.Image, d.ContainerID, d.Port, d.Status,
		d.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save deployment: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Deployment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, app_name, image, container_id, port, status, created_at
		FROM deployments WHERE id = ?`, id)
	d, err := scanDeployment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Deployment{}, fmt.Errorf("%w: %s", domain.ErrDeploymentNotFound, id)
	}
	if err != nil {
		return domain.Deployment{}, fmt.Errorf("get deployment: %w", err)
	}
	return d, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]domain.Deployment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, app_name, image, container_id, port, status, created_at
		FROM deployments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}
	defer rows.Close()

	var out []domain.Deployment
	for rows.Next() {
		d, err := scanDeployment(rows)
		if err != nil {
			return nil, fmt.Errorf("list deployments: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) SetStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE deployments SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return requireRow(res, id)
}

func (s *SQLiteStore) SetContainer(ctx context.Context, id, containerID string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE deployments SET container_id = ? WHERE id = ?`, containerID, id)
	if err != nil {
		return fmt.Errorf("set container: %w", err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrDeploymentNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeployment(row rowScanner) (domain.Deployment, error) {
	var d domain.Deployment
	var created string
	if err := row.Scan(&d.ID, &d.AppName, &d.Image, &d.ContainerID, &d.Port, &d.Status, &created); err != nil {
		return domain.Deployment{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return domain.Deployment{}, fmt.Errorf("parse created_at: %w", err)
	}
	d.CreatedAt = t
	return d, nil
}
