package groupdata

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/roomboard/internal/common"
	"github.com/dmitrijs2005/roomboard/internal/metrics"
	"github.com/dmitrijs2005/roomboard/internal/models"
)

// UpdateTask merges patch into the task in the snapshot and the cache, then
// writes it to the remote source. A remote failure is returned but the local
// change is kept; callers reconcile with Refetch or a compensating update.
// Concurrent updates of one task are last-write-wins.
func (s *Store) UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) error {
	return s.updateTask(ctx, taskID, patch, false)
}

// UpdateTaskWithRollback is UpdateTask, except that on a remote failure the
// task is restored to its value before the edit, unless another edit of the
// same task or a fetch has replaced it since.
func (s *Store) UpdateTaskWithRollback(ctx context.Context, taskID string, patch models.TaskPatch) error {
	return s.updateTask(ctx, taskID, patch, true)
}

func (s *Store) updateTask(ctx context.Context, taskID string, patch models.TaskPatch, rollback bool) error {
	if patch.IsEmpty() {
		return common.ErrEmptyPatch
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return common.ErrStoreClosed
	}
	if s.groupID == "" {
		s.mu.Unlock()
		return common.ErrNoGroup
	}
	groupID := s.groupID
	prev, ver, found := s.applyPatchLocked(taskID, patch)
	data := s.data
	s.mu.Unlock()

	log := s.log.With("group_id", groupID, "task_id", taskID)
	if found {
		s.saveCache(context.WithoutCancel(ctx), groupID, ver, data, s.now())
	} else {
		log.Debug(ctx, "task not in snapshot, writing remotely only")
	}

	rctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	if err := s.source.UpdateTask(rctx, taskID, patch); err != nil {
		s.metrics.TaskUpdate(metrics.ResultError)
		log.Error(ctx, "task update failed", "error", err, "rollback", rollback && found)
		if rollback && found {
			s.revert(ctx, groupID, taskID, prev, ver)
		}
		return fmt.Errorf("update task %s: %w", taskID, err)
	}

	s.metrics.TaskUpdate(metrics.ResultOK)
	return nil
}

// applyPatchLocked rewrites the task slice copy-on-write so that State
// values handed out earlier stay untouched.
func (s *Store) applyPatchLocked(taskID string, patch models.TaskPatch) (models.Task, uint64, bool) {
	idx := s.data.FindTask(taskID)
	if idx < 0 {
		return models.Task{}, 0, false
	}

	tasks := slices.Clone(s.data.Tasks)
	prev := tasks[idx].Task
	patch.Apply(&tasks[idx].Task)
	s.data = s.data.WithTasks(tasks)
	s.version++
	s.lastMutation[taskID] = s.version
	return prev, s.version, true
}

func (s *Store) revert(ctx context.Context, groupID, taskID string, prev models.Task, ver uint64) {
	s.mu.Lock()
	idx := s.data.FindTask(taskID)
	if s.closed || s.groupID != groupID || s.lastMutation[taskID] != ver || idx < 0 {
		s.mu.Unlock()
		return
	}
	tasks := slices.Clone(s.data.Tasks)
	tasks[idx].Task = prev
	s.data = s.data.WithTasks(tasks)
	s.version++
	delete(s.lastMutation, taskID)
	ver, data := s.version, s.data
	s.mu.Unlock()

	s.saveCache(context.WithoutCancel(ctx), groupID, ver, data, s.now())
}
