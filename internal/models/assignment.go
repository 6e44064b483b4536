package models

import "time"

// Assignment is a task_assignments junction row linking a task to one of
// its assignees.
type Assignment struct {
	TaskID     string    `json:"task_id"`
	UserID     string    `json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
