package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/codebugger/internal/database"
)

// SQLStore keeps projects in the projects and project_files tables
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a project store over an opened database
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, id string) (*Project, error) {
	p := &Project{ID: id}
	var source, createdAt string
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind(`SELECT name, source, created_at FROM projects WHERE id = ?`), id).
		Scan(&p.Name, &source, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", id, err)
	}
	p.Source = Source(source)
	if p.CreatedAt, err = database.ParseTime(createdAt); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		s.db.Rebind(`SELECT file_index, name, path, size, content, secret_findings
			FROM project_files WHERE project_id = ? ORDER BY file_index`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to load files of project %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var f File
		if err := rows.Scan(&f.Index, &f.Name, &f.Path, &f.Size, &f.Content, &f.SecretFindings); err != nil {
			return nil, fmt.Errorf("failed to scan project file: %w", err)
		}
		p.Files = append(p.Files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read project files: %w", err)
	}
	return p, nil
}

func (s *SQLStore) Put(ctx context.Context, p *Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteProject(ctx, s.db, tx, p.ID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		s.db.Rebind(`INSERT INTO projects (id, name, source, created_at) VALUES (?, ?, ?, ?)`),
		p.ID, p.Name, string(p.Source), database.FormatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	insertFile := s.db.Rebind(`INSERT INTO project_files
		(project_id, file_index, name, path, size, content, secret_findings)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for _, f := range p.Files {
		if _, err := tx.ExecContext(ctx, insertFile,
			p.ID, f.Index, f.Name, f.Path, f.Size, f.Content, f.SecretFindings); err != nil {
			return fmt.Errorf("failed to insert project file %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM projects WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM project_files WHERE project_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete project files: %w", err)
	}
	return tx.Commit()
}

func (s *SQLStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT p.id, p.name, p.source, p.created_at,
			(SELECT COUNT(*) FROM project_files f WHERE f.project_id = p.id)
		FROM projects p ORDER BY p.created_at, p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		var source, createdAt string
		if err := rows.Scan(&sm.ID, &sm.Name, &source, &createdAt, &sm.FileCount); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		sm.Source = Source(source)
		if sm.CreatedAt, err = database.ParseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ts := database.FormatTime(cutoff)
	if _, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM project_files WHERE project_id IN
		(SELECT id FROM projects WHERE created_at < ?)`), ts); err != nil {
		return 0, fmt.Errorf("failed to delete expired project files: %w", err)
	}
	res, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM projects WHERE created_at < ?`), ts)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired projects: %w", err)
	}
	n, _ := res.RowsAffected()
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit expiry: %w", err)
	}
	return int(n), nil
}

func deleteProject(ctx context.Context, db *database.DB, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, db.Rebind(`DELETE FROM project_files WHERE project_id = ?`), id); err != nil {
		return fmt.Errorf("failed to clear project files: %w", err)
	}
	if _, err := tx.ExecContext(ctx, db.Rebind(`DELETE FROM projects WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to clear project: %w", err)
	}
	return nil
}
