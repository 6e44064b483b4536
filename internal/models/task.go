package models

import (
	"slices"
	"time"
)

// Task is a household chore.
//
// AssignedTo is the single primary assignee. It is independent of the
// many-to-many assignments; the two are kept side by side and never merged.
type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	AssignedTo  *string    `json:"assigned_to"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	GroupID     string     `json:"group_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskWithAssignees is a Task joined with its assignment rows.
type TaskWithAssignees struct {
	Task
	// Assignees are the resolved users in assignment fetch order. Ids that
	// did not resolve are skipped.
	Assignees []User `json:"assignees"`
	// AssignedUserIDs is the raw id list, unresolved ids included.
	AssignedUserIDs []string `json:"assigned_task_ids"`
}

// IsAssigned reports whether userID appears in the assignment rows.
func (t TaskWithAssignees) IsAssigned(userID string) bool {
	return slices.Contains(t.AssignedUserIDs, userID)
}

// PrimaryAssigneeDiverges reports whether the primary assignee is set but
// missing from the assignment rows.
func (t TaskWithAssignees) PrimaryAssigneeDiverges() bool {
	return t.AssignedTo != nil && !t.IsAssigned(*t.AssignedTo)
}

// TaskPatch is a partial task update. Nil fields are left untouched.
// ClearAssignee sets the primary assignee to NULL and wins over AssignedTo.
type TaskPatch struct {
	Name          *string
	Description   *string
	Completed     *bool
	DueDate       *time.Time
	AssignedTo    *string
	ClearAssignee bool
}

// Column is one column/value pair of a patch.
type Column struct {
	Name  string
	Value any
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Apply merges the patch into t.
func (p TaskPatch) Apply(t *Task) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	switch {
	case p.ClearAssignee:
		t.AssignedTo = nil
	case p.AssignedTo != nil:
		id := *p.AssignedTo
		t.AssignedTo = &id
	}
}

// Columns lists the patched columns in a stable order.
func (p TaskPatch) Columns() []Column {
	var cols []Column
	if p.Name != nil {
		cols = append(cols, Column{Name: "name", Value: *p.Name})
	}
	if p.Description != nil {
		cols = append(cols, Column{Name: "description", Value: *p.Description})
	}
	if p.Completed != nil {
		cols = append(cols, Column{Name: "completed", Value: *p.Completed})
	}
	if p.DueDate != nil {
		cols = append(cols, Column{Name: "due_date", Value: *p.DueDate})
	}
	switch {
	case p.ClearAssignee:
		cols = append(cols, Column{Name: "assigned_to", Value: nil})
	case p.AssignedTo != nil:
		cols = append(cols, Column{Name: "assigned_to", Value: *p.AssignedTo})
	}
	return cols
}

// SetCompleted is the patch used by the dashboard checkbox.
func SetCompleted(done bool) TaskPatch {
	return TaskPatch{Completed: &done}
}
