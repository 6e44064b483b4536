package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTaskPatch_Apply_MergesOnlySetFields(t *testing.T) {
	due := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	task := Task{ID: "10", Name: "Dishes", Description: "kitchen", AssignedTo: strPtr("1")}

	name := "Trash"
	TaskPatch{Name: &name, DueDate: &due}.Apply(&task)

	assert.Equal(t, "Trash", task.Name)
	assert.Equal(t, "kitchen", task.Description)
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Equal(*task.DueDate))
	require.NotNil(t, task.AssignedTo)
	assert.Equal(t, "1", *task.AssignedTo)
	assert.False(t, task.Completed)
}

func TestTaskPatch_Apply_ClearAssigneeWins(t *testing.T) {
	task := Task{AssignedTo: strPtr("1")}
	TaskPatch{AssignedTo: strPtr("2"), ClearAssignee: true}.Apply(&task)
	assert.Nil(t, task.AssignedTo)
}

func TestTaskPatch_Apply_DoesNotAliasPatchPointers(t *testing.T) {
	id := "2"
	task := Task{}
	TaskPatch{AssignedTo: &id}.Apply(&task)
	id = "3"
	assert.Equal(t, "2", *task.AssignedTo)
}

func TestTaskPatch_Columns_StableOrder(t *testing.T) {
	done := true
	desc := "d"
	cols := TaskPatch{Completed: &done, Description: &desc, ClearAssignee: true}.Columns()

	require.Len(t, cols, 3)
	assert.Equal(t, Column{Name: "description", Value: "d"}, cols[0])
	assert.Equal(t, Column{Name: "completed", Value: true}, cols[1])
	assert.Equal(t, Column{Name: "assigned_to", Value: nil}, cols[2])
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())
	assert.False(t, SetCompleted(false).IsEmpty())
}

func TestTaskWithAssignees_PrimaryAssigneeDiverges(t *testing.T) {
	tests := []struct {
		name string
		task TaskWithAssignees
		want bool
	}{
		{name: "no primary", task: TaskWithAssignees{AssignedUserIDs: []string{"1"}}, want: false},
		{name: "primary listed", task: TaskWithAssignees{Task: Task{AssignedTo: strPtr("1")}, AssignedUserIDs: []string{"2", "1"}}, want: false},
		{name: "primary missing", task: TaskWithAssignees{Task: Task{AssignedTo: strPtr("3")}, AssignedUserIDs: []string{"1"}}, want: true},
		{name: "primary without rows", task: TaskWithAssignees{Task: Task{AssignedTo: strPtr("3")}}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.PrimaryAssigneeDiverges())
		})
	}
}

func TestGroupData_Helpers(t *testing.T) {
	d := EmptyGroupData()
	assert.False(t, d.Valid(), "no group means not adoptable")
	assert.Equal(t, -1, d.FindTask("10"))

	d.Group = &Group{ID: "g1"}
	d.Users = []User{{ID: "1", Name: "Ann"}}
	d.Tasks = []TaskWithAssignees{{Task: Task{ID: "10"}}}
	assert.True(t, d.Valid())
	assert.Equal(t, 0, d.FindTask("10"))

	u, ok := d.UserByID("1")
	assert.True(t, ok)
	assert.Equal(t, "Ann", u.Name)
	_, ok = d.UserByID("99")
	assert.False(t, ok)

	copied := d.WithTasks([]TaskWithAssignees{})
	assert.Len(t, d.Tasks, 1)
	assert.Empty(t, copied.Tasks)
}
