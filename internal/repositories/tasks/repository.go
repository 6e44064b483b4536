package tasks

import (
	"context"

	"github.com/dmitrijs2005/roomboard/internal/models"
)

type Repository interface {
	ListByGroup(ctx context.Context, groupID string) ([]models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) error
}
