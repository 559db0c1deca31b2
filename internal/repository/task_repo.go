package repository

import (
	"context"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListTasks(ctx context.Context) ([]models.DailyTask, error) {
	query := `SELECT id, title, category, points FROM daily_tasks ORDER BY id ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.DailyTask, 0)
	for rows.Next() {
		var task models.DailyTask
		if err := rows.Scan(&task.ID, &task.Title, &task.Category, &task.Points); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, taskID string) (*models.DailyTask, error) {
	var task models.DailyTask
	err := r.db.QueryRow(
		ctx,
		`SELECT id, title, category, points FROM daily_tasks WHERE id = $1`,
		taskID,
	).Scan(&task.ID, &task.Title, &task.Category, &task.Points)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CompletedTaskIDs lists the task ids the user completed on the given day.
func (r *TaskRepository) CompletedTaskIDs(
	ctx context.Context,
	userID int64,
	day time.Time,
) ([]string, error) {
	query := `
		SELECT task_id
		FROM task_completions
		WHERE user_id = $1 AND completed_on = $2::date
		ORDER BY task_id ASC
	`
	rows, err := r.db.Query(ctx, query, userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// MarkCompleted records a completion for the day; repeating the call is a
// no-op thanks to the primary key on (user_id, task_id, completed_on).
func (r *TaskRepository) MarkCompleted(
	ctx context.Context,
	userID int64,
	taskID string,
	day time.Time,
) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO task_completions (user_id, task_id, completed_on)
		VALUES ($1, $2, $3::date)
		ON CONFLICT (user_id, task_id, completed_on) DO NOTHING
	`, userID, taskID, day)
	return err
}
