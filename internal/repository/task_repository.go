package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Task struct {
	ID          string
	Name        string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	Priority    string
	ProjectID   string
	AssigneeID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	FindAll(ctx context.Context) ([]*Task, error)
	FindByProjectID(ctx context.Context, projectID string) ([]*Task, error)
	FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*Task, error)
	FindByAssignee(ctx context.Context, memberID string) ([]*Task, error)
	FindOverdue(ctx context.Context, today time.Time) ([]*Task, error)
	Update(ctx context.Context, task *Task) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateAssignee(ctx context.Context, id string, assigneeID *string) error
	Delete(ctx context.Context, id string) error
}

type pgTaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &pgTaskRepository{pool: pool}
}

const taskColumns = `id, name, description, start_date, end_date, status, priority, project_id, assignee_id, created_at, updated_at`

func scanTask(row pgx.Row) (*Task, error) {
	t := &Task{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.StartDate, &t.EndDate,
		&t.Status, &t.Priority, &t.ProjectID, &t.AssigneeID,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTaskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]*Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *pgTaskRepository) Create(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (name, description, start_date, end_date, status, priority, project_id, assignee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		task.Name, task.Description, task.StartDate, task.EndDate,
		task.Status, task.Priority, task.ProjectID, task.AssigneeID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *pgTaskRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	t, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTaskRepository) FindAll(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC`
	return r.queryTasks(ctx, query)
}

func (r *pgTaskRepository) FindByProjectID(ctx context.Context, projectID string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, projectID)
}

func (r *pgTaskRepository) FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*Task, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ANY($1) ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, projectIDs)
}

func (r *pgTaskRepository) FindByAssignee(ctx context.Context, memberID string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assignee_id = $1 ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, memberID)
}

func (r *pgTaskRepository) FindOverdue(ctx context.Context, today time.Time) ([]*Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE end_date < $1 AND status != 'Terminé'
		ORDER BY end_date
	`
	return r.queryTasks(ctx, query, today)
}

func (r *pgTaskRepository) Update(ctx context.Context, task *Task) error {
	query := `
		UPDATE tasks
		SET name = $2, description = $3, start_date = $4, end_date = $5,
		    status = $6, priority = $7, assignee_id = $8, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		task.ID, task.Name, task.Description, task.StartDate, task.EndDate,
		task.Status, task.Priority, task.AssigneeID,
	)
	return err
}

func (r *pgTaskRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, status)
	return err
}

func (r *pgTaskRepository) UpdateAssignee(ctx context.Context, id string, assigneeID *string) error {
	query := `UPDATE tasks SET assignee_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, assigneeID)
	return err
}

func (r *pgTaskRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
