// Package users reads roommate profiles from PostgreSQL.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/roomboard/internal/common"
	"github.com/dmitrijs2005/roomboard/internal/dbx"
	"github.com/dmitrijs2005/roomboard/internal/models"
)

const userColumns = `id, name, email, phone, date_of_birth, bio, allergies, special_needs, pets, group_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u       models.User
		dob     sql.NullTime
		groupID sql.NullString
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &dob, &u.Bio, &u.Allergies, &u.SpecialNeeds, &u.Pets, &groupID)
	if err != nil {
		return models.User{}, err
	}
	if dob.Valid {
		t := dob.Time
		u.DateOfBirth = &t
	}
	if groupID.Valid {
		g := groupID.String
		u.GroupID = &g
	}
	return u, nil
}

// ListByGroup returns the members of a group ordered by name.
func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE group_id = $1
		ORDER BY name ASC
		`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	result := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return result, nil
}

// GetByID returns a single user. A missing row is common.ErrUserNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, common.ErrUserNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &u, nil
}
