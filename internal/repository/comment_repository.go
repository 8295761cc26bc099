package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Comment struct {
	ID         string
	Content    string
	TaskID     string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id string) (*Comment, error)
	FindAll(ctx context.Context) ([]*Comment, error)
	FindByTaskID(ctx context.Context, taskID string) ([]*Comment, error)
	FindByTaskIDs(ctx context.Context, taskIDs []string) ([]*Comment, error)
	Delete(ctx context.Context, id string) error
}

type pgCommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &pgCommentRepository{pool: pool}
}

const commentSelect = `
	SELECT c.id, c.content, c.task_id, c.author_id, m.name, c.created_at
	FROM comments c
	JOIN members m ON c.author_id = m.id
`

func scanComment(row pgx.Row) (*Comment, error) {
	c := &Comment{}
	err := row.Scan(&c.ID, &c.Content, &c.TaskID, &c.AuthorID, &c.AuthorName, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgCommentRepository) queryComments(ctx context.Context, query string, args ...interface{}) ([]*Comment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func (r *pgCommentRepository) Create(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (content, task_id, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		comment.Content, comment.TaskID, comment.AuthorID,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *pgCommentRepository) FindByID(ctx context.Context, id string) (*Comment, error) {
	query := commentSelect + ` WHERE c.id = $1`
	c, err := scanComment(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgCommentRepository) FindAll(ctx context.Context) ([]*Comment, error) {
	query := commentSelect + ` ORDER BY c.created_at DESC`
	return r.queryComments(ctx, query)
}

func (r *pgCommentRepository) FindByTaskID(ctx context.Context, taskID string) ([]*Comment, error) {
	query := commentSelect + ` WHERE c.task_id = $1 ORDER BY c.created_at`
	return r.queryComments(ctx, query, taskID)
}

func (r *pgCommentRepository) FindByTaskIDs(ctx context.Context, taskIDs []string) ([]*Comment, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	query := commentSelect + ` WHERE c.task_id = ANY($1) ORDER BY c.created_at DESC`
	return r.queryComments(ctx, query, taskIDs)
}

func (r *pgCommentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM comments WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
