package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Member struct {
	ID         string
	UserID     string
	Name       string
	Role       string
	IsActive   bool
	ArchivedAt *time.Time
	CreatedAt  time.Time
}

type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	// FindByID looks a member up regardless of archived state. Archive and
	// unarchive both go through this lookup; filtering archived members here
	// would make them impossible to restore.
	FindByID(ctx context.Context, id string) (*Member, error)
	FindByUserID(ctx context.Context, userID string) (*Member, error)
	FindAll(ctx context.Context, includeArchived bool) ([]*Member, error)
	Update(ctx context.Context, member *Member) error
	SetArchived(ctx context.Context, id string, archivedAt *time.Time) error
}

type pgMemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &pgMemberRepository{pool: pool}
}

func (r *pgMemberRepository) Create(ctx context.Context, member *Member) error {
	query := `
		INSERT INTO members (user_id, name, role)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at
	`
	return r.pool.QueryRow(ctx, query,
		member.UserID, member.Name, member.Role,
	).Scan(&member.ID, &member.IsActive, &member.CreatedAt)
}

func (r *pgMemberRepository) FindByID(ctx context.Context, id string) (*Member, error) {
	query := `
		SELECT id, user_id, name, role, is_active, archived_at, created_at
		FROM members WHERE id = $1
	`
	m := &Member{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.UserID, &m.Name, &m.Role, &m.IsActive, &m.ArchivedAt, &m.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMemberRepository) FindByUserID(ctx context.Context, userID string) (*Member, error) {
	query := `
		SELECT id, user_id, name, role, is_active, archived_at, created_at
		FROM members WHERE user_id = $1
	`
	m := &Member{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&m.ID, &m.UserID, &m.Name, &m.Role, &m.IsActive, &m.ArchivedAt, &m.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMemberRepository) FindAll(ctx context.Context, includeArchived bool) ([]*Member, error) {
	query := `
		SELECT id, user_id, name, role, is_active, archived_at, created_at
		FROM members
		WHERE ($1 OR is_active)
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query, includeArchived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Name, &m.Role, &m.IsActive, &m.ArchivedAt, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func (r *pgMemberRepository) Update(ctx context.Context, member *Member) error {
	query := `
		UPDATE members SET name = $2, role = $3
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, member.ID, member.Name, member.Role)
	return err
}

func (r *pgMemberRepository) SetArchived(ctx context.Context, id string, archivedAt *time.Time) error {
	query := `
		UPDATE members SET is_active = $2, archived_at = $3
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, archivedAt == nil, archivedAt)
	return err
}
