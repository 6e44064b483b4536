package users

import (
	"context"

	"github.com/dmitrijs2005/roomboard/internal/models"
)

type Repository interface {
	ListByGroup(ctx context.Context, groupID string) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
