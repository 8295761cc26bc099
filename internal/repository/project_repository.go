package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Project struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	FindAll(ctx context.Context) ([]*Project, error)
	FindByCreator(ctx context.Context, memberID string) ([]*Project, error)
	FindByMemberID(ctx context.Context, memberID string) ([]*Project, error)
	FindRecent(ctx context.Context, limit int) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error

	// Membership operations
	AddMember(ctx context.Context, projectID, memberID string) error
	RemoveMember(ctx context.Context, projectID, memberID string) error
	FindMembers(ctx context.Context, projectID string) ([]*Member, error)
	FindMemberIDs(ctx context.Context, projectID string) ([]string, error)
	HasMember(ctx context.Context, projectID, memberID string) (bool, error)
}

type pgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgProjectRepository{pool: pool}
}

const projectColumns = `id, name, description, start_date, end_date, status, created_by, created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate,
		&p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgProjectRepository) Create(ctx context.Context, project *Project) error {
	query := `
		INSERT INTO projects (name, description, start_date, end_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		project.Name, project.Description, project.StartDate, project.EndDate,
		project.Status, project.CreatedBy,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *pgProjectRepository) FindByID(ctx context.Context, id string) (*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgProjectRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]*Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *pgProjectRepository) FindAll(ctx context.Context) ([]*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC`
	return r.queryProjects(ctx, query)
}

func (r *pgProjectRepository) FindByCreator(ctx context.Context, memberID string) ([]*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE created_by = $1 ORDER BY created_at DESC`
	return r.queryProjects(ctx, query, memberID)
}

func (r *pgProjectRepository) FindByMemberID(ctx context.Context, memberID string) ([]*Project, error) {
	query := `
		SELECT p.id, p.name, p.description, p.start_date, p.end_date, p.status, p.created_by, p.created_at, p.updated_at
		FROM projects p
		JOIN project_members pm ON p.id = pm.project_id
		WHERE pm.member_id = $1
		ORDER BY p.created_at DESC
	`
	return r.queryProjects(ctx, query, memberID)
}

func (r *pgProjectRepository) FindRecent(ctx context.Context, limit int) ([]*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC LIMIT $1`
	return r.queryProjects(ctx, query, limit)
}

func (r *pgProjectRepository) Update(ctx context.Context, project *Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, start_date = $4, end_date = $5, status = $6, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		project.ID, project.Name, project.Description,
		project.StartDate, project.EndDate, project.Status,
	)
	return err
}

func (r *pgProjectRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// AddMember is idempotent: re-adding an existing member is a no-op.
func (r *pgProjectRepository) AddMember(ctx context.Context, projectID, memberID string) error {
	query := `
		INSERT INTO project_members (project_id, member_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, member_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, projectID, memberID)
	return err
}

// RemoveMember is idempotent: removing an absent member is a no-op.
func (r *pgProjectRepository) RemoveMember(ctx context.Context, projectID, memberID string) error {
	query := `DELETE FROM project_members WHERE project_id = $1 AND member_id = $2`
	_, err := r.pool.Exec(ctx, query, projectID, memberID)
	return err
}

func (r *pgProjectRepository) FindMembers(ctx context.Context, projectID string) ([]*Member, error) {
	query := `
		SELECT m.id, m.user_id, m.name, m.role, m.is_active, m.archived_at, m.created_at
		FROM project_members pm
		JOIN members m ON pm.member_id = m.id
		WHERE pm.project_id = $1
		ORDER BY pm.joined_at
	`
	rows, err := r.pool.Query(ctx, query, projectID)
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

func (r *pgProjectRepository) FindMemberIDs(ctx context.Context, projectID string) ([]string, error) {
	query := `SELECT member_id FROM project_members WHERE project_id = $1`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberIDs []string
	for rows.Next() {
		var memberID string
		if err := rows.Scan(&memberID); err != nil {
			return nil, err
		}
		memberIDs = append(memberIDs, memberID)
	}
	return memberIDs, nil
}

func (r *pgProjectRepository) HasMember(ctx context.Context, projectID, memberID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM project_members
			WHERE project_id = $1 AND member_id = $2
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, projectID, memberID).Scan(&exists)
	return exists, err
}
