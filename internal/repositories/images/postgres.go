// Package images stores gallery metadata in PostgreSQL. The photo bytes
// live in object storage.
package images

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/roomboard/internal/dbx"
	"github.com/dmitrijs2005/roomboard/internal/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByGroup returns the gallery of a group, newest first.
func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Image, error) {
	query := `SELECT id, url, title, category, group_id, created_by, created_at FROM images
		WHERE group_id = $1
		ORDER BY created_at DESC
		`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to select images: %w", err)
	}
	defer rows.Close()

	result := make([]models.Image, 0)
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.URL, &img.Title, &img.Category, &img.GroupID, &img.CreatedBy, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		result = append(result, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate images: %w", err)
	}
	return result, nil
}

// Create inserts an image row, assigning ID and CreatedAt when empty.
func (r *PostgresRepository) Create(ctx context.Context, image *models.Image) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO images (id, url, title, category, group_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		image.ID, image.URL, image.Title, image.Category, image.GroupID, image.CreatedBy, image.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}
	return nil
}
