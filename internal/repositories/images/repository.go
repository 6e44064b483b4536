package images

import (
	"context"

	"github.com/dmitrijs2005/roomboard/internal/models"
)

type Repository interface {
	ListByGroup(ctx context.Context, groupID string) ([]models.Image, error)
	Create(ctx context.Context, image *models.Image) error
}
