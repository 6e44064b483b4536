package groups

import (
	"context"

	"github.com/dmitrijs2005/roomboard/internal/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Group, error)
}
