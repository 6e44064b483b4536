// Package groups reads household rows from PostgreSQL.
package groups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

// GetByID returns the group row. A missing row is common.ErrGroupNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	query :=
		`SELECT id, building_name, apartment_number, created_at FROM groups
		 WHERE id = $1
		 `

	g := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.BuildingName, &g.ApartmentNumber, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("group %s: %w", id, common.ErrGroupNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return g, nil
}
