package groupdata

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/roomboard/internal/models"
	"github.com/dmitrijs2005/roomboard/internal/remote"
	"golang.org/x/sync/errgroup"
)

type reads struct {
	group       *models.Group
	users       []models.User
	images      []models.Image
	tasks       []models.Task
	assignments []models.Assignment
}

// load performs the scoped reads of one fetch. The four base reads run in
// parallel; assignments follow once the task ids are known. The first error
// cancels the rest and nothing is returned.
func load(ctx context.Context, src remote.Source, groupID string) (*reads, error) {
	var r reads

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		group, err := src.GetGroup(gctx, groupID)
		if err != nil {
			return fmt.Errorf("load group: %w", err)
		}
		r.group = group
		return nil
	})
	g.Go(func() error {
		users, err := src.ListUsers(gctx, groupID)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		r.users = users
		return nil
	})
	g.Go(func() error {
		images, err := src.ListImages(gctx, groupID)
		if err != nil {
			return fmt.Errorf("load images: %w", err)
		}
		r.images = images
		return nil
	})
	g.Go(func() error {
		tasks, err := src.ListTasks(gctx, groupID)
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		r.tasks = tasks
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(r.tasks) == 0 {
		r.assignments = []models.Assignment{}
		return &r, nil
	}

	ids := make([]string, len(r.tasks))
	for i, t := range r.tasks {
		ids[i] = t.ID
	}
	assignments, err := src.ListAssignments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}
	r.assignments = assignments
	return &r, nil
}
