// Package remote is the data boundary of the group data store: the scoped
// reads and the single partial write it performs against the household
// database.
package remote

import (
	"context"

	"github.com/dmitrijs2005/roomboard/internal/models"
)

// Source is everything the group data store needs from the remote side.
// Implementations must be safe for concurrent use; the store issues the
// four base reads in parallel.
type Source interface {
	// GetGroup fails with common.ErrGroupNotFound when there is no row.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListUsers(ctx context.Context, groupID string) ([]models.User, error)
	ListImages(ctx context.Context, groupID string) ([]models.Image, error)
	ListTasks(ctx context.Context, groupID string) ([]models.Task, error)
	ListAssignments(ctx context.Context, taskIDs []string) ([]models.Assignment, error)
	UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) error
}
