// Package tasks reads and patches household tasks in PostgreSQL.
package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/roomboard/internal/common"
	"github.com/dmitrijs2005/roomboard/internal/dbx"
	"github.com/dmitrijs2005/roomboard/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByGroup returns the tasks of a group by due date; undated tasks last.
func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Task, error) {
	query := `SELECT id, name, description, assigned_to, completed, due_date, group_id, created_at FROM tasks
		WHERE group_id = $1
		ORDER BY due_date ASC NULLS LAST
		`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := make([]models.Task, 0)
	for rows.Next() {
		var (
			t          models.Task
			assignedTo sql.NullString
			due        sql.NullTime
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &assignedTo, &t.Completed, &due, &t.GroupID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if assignedTo.Valid {
			id := assignedTo.String
			t.AssignedTo = &id
		}
		if due.Valid {
			d := due.Time
			t.DueDate = &d
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return result, nil
}

// Update writes the patched columns of task id. Exactly one row must be
// affected; none is common.ErrTaskNotFound.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.TaskPatch) error {
	cols := patch.Columns()
	if len(cols) == 0 {
		return common.ErrEmptyPatch
	}

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c.Name, i+1)
		args = append(args, c.Value)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(cols)+1)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("task %s: %w", id, common.ErrTaskNotFound)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
