package remote

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/roomboard/internal/models"
	"github.com/dmitrijs2005/roomboard/internal/repositories/repomanager"
)

var _ Source = (*PostgresSource)(nil)

// PostgresSource implements Source with the PostgreSQL repositories.
type PostgresSource struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostgresSource(db *sql.DB, rm repomanager.RepositoryManager) *PostgresSource {
	return &PostgresSource{db: db, repomanager: rm}
}

func (s *PostgresSource) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.repomanager.Groups(s.db).GetByID(ctx, groupID)
}

func (s *PostgresSource) ListUsers(ctx context.Context, groupID string) ([]models.User, error) {
	return s.repomanager.Users(s.db).ListByGroup(ctx, groupID)
}

func (s *PostgresSource) ListImages(ctx context.Context, groupID string) ([]models.Image, error) {
	return s.repomanager.Images(s.db).ListByGroup(ctx, groupID)
}

func (s *PostgresSource) ListTasks(ctx context.Context, groupID string) ([]models.Task, error) {
	return s.repomanager.Tasks(s.db).ListByGroup(ctx, groupID)
}

func (s *PostgresSource) ListAssignments(ctx context.Context, taskIDs []string) ([]models.Assignment, error) {
	return s.repomanager.Assignments(s.db).ListByTaskIDs(ctx, taskIDs)
}

func (s *PostgresSource) UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) error {
	return s.repomanager.Tasks(s.db).Update(ctx, taskID, patch)
}
