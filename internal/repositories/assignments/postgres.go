// Package assignments reads the task_assignments junction table.
package assignments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/roomboard/internal/dbx"
	"github.com/dmitrijs2005/roomboard/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByTaskIDs returns the assignment rows of the given tasks in the order
// they were assigned. An empty id list returns an empty result without
// touching the database.
func (r *PostgresRepository) ListByTaskIDs(ctx context.Context, taskIDs []string) ([]models.Assignment, error) {
	result := make([]models.Assignment, 0)
	if len(taskIDs) == 0 {
		return result, nil
	}

	query := `SELECT task_id, user_id, assigned_at FROM task_assignments
		WHERE task_id IN (` + dbx.Placeholders(1, len(taskIDs)) + `)
		ORDER BY assigned_at ASC`

	rows, err := r.db.QueryContext(ctx, query, dbx.Args(taskIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to select assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.TaskID, &a.UserID, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return result, nil
}
