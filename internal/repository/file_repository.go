package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type File struct {
	ID         string
	Name       string
	ContentURL *string
	SharedOn   time.Time
	ProjectID  string
	CreatedAt  time.Time
}

type FileRepository interface {
	Create(ctx context.Context, file *File) error
	FindByID(ctx context.Context, id string) (*File, error)
	FindAll(ctx context.Context) ([]*File, error)
	FindByProjectID(ctx context.Context, projectID string) ([]*File, error)
	FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*File, error)
	Delete(ctx context.Context, id string) error
}

type pgFileRepository struct {
	pool *pgxpool.Pool
}

func NewFileRepository(pool *pgxpool.Pool) FileRepository {
	return &pgFileRepository{pool: pool}
}

const fileColumns = `id, name, content_url, shared_on, project_id, created_at`

func scanFile(row pgx.Row) (*File, error) {
	f := &File{}
	err := row.Scan(&f.ID, &f.Name, &f.ContentURL, &f.SharedOn, &f.ProjectID, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *pgFileRepository) queryFiles(ctx context.Context, query string, args ...interface{}) ([]*File, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (r *pgFileRepository) Create(ctx context.Context, file *File) error {
	query := `
		INSERT INTO files (name, content_url, shared_on, project_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		file.Name, file.ContentURL, file.SharedOn, file.ProjectID,
	).Scan(&file.ID, &file.CreatedAt)
}

func (r *pgFileRepository) FindByID(ctx context.Context, id string) (*File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`
	f, err := scanFile(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *pgFileRepository) FindAll(ctx context.Context) ([]*File, error) {
	query := `SELECT ` + fileColumns + ` FROM files ORDER BY shared_on DESC`
	return r.queryFiles(ctx, query)
}

func (r *pgFileRepository) FindByProjectID(ctx context.Context, projectID string) ([]*File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE project_id = $1 ORDER BY shared_on DESC`
	return r.queryFiles(ctx, query, projectID)
}

func (r *pgFileRepository) FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*File, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + fileColumns + ` FROM files WHERE project_id = ANY($1) ORDER BY shared_on DESC`
	return r.queryFiles(ctx, query, projectIDs)
}

func (r *pgFileRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM files WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
