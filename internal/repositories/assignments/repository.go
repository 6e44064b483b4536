package assignments

import (
	"context"

	"github.com/dmitrijs2005/roomboard/internal/models"
)

type Repository interface {
	ListByTaskIDs(ctx context.Context, taskIDs []string) ([]models.Assignment, error)
}
