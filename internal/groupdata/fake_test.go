package groupdata

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/roomboard/internal/models"
)

var errBoom = errors.New("boom")

func ptr[T any](v T) *T { return &v }

type updateCall struct {
	taskID string
	patch  models.TaskPatch
}

// fakeSource serves fixed rows. groupHook, when set, runs inside every
// GetGroup call with the 1-based call number and may block or replace the
// group.
type fakeSource struct {
	mu          sync.Mutex
	group       *models.Group
	users       []models.User
	images      []models.Image
	tasks       []models.Task
	assignments []models.Assignment

	errs       map[string]error
	calls      map[string]int
	assignArgs [][]string
	updates    []updateCall

	groupHook  func(ctx context.Context, call int) (*models.Group, error)
	updateHook func(call int) error
}

func newFakeSource() *fakeSource {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	due := at.Add(48 * time.Hour)
	return &fakeSource{
		group: &models.Group{ID: "g1", BuildingName: "Maple Court", ApartmentNumber: "4B", CreatedAt: at},
		users: []models.User{
			{ID: "1", Name: "Alice", Email: "alice@example.com", GroupID: ptr("g1")},
			{ID: "2", Name: "Bob", Email: "bob@example.com", GroupID: ptr("g1")},
		},
		images: []models.Image{
			{ID: "i1", URL: "g1/i1.jpg", Title: "Kitchen", Category: "home", GroupID: "g1", CreatedBy: "1", CreatedAt: at},
		},
		tasks: []models.Task{
			{ID: "10", Name: "Trash", GroupID: "g1", DueDate: &due, CreatedAt: at},
		},
		assignments: []models.Assignment{
			{TaskID: "10", UserID: "1", AssignedAt: at},
			{TaskID: "10", UserID: "2", AssignedAt: at.Add(time.Minute)},
		},
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (f *fakeSource) enter(name string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.calls[name], f.errs[name]
}

func (f *fakeSource) setErr(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
}

func (f *fakeSource) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	n, err := f.enter("GetGroup")
	if f.groupHook != nil {
		return f.groupHook(ctx, n)
	}
	if err != nil {
		return nil, err
	}
	g := *f.group
	g.ID = groupID
	return &g, nil
}

func (f *fakeSource) ListUsers(ctx context.Context, groupID string) ([]models.User, error) {
	if _, err := f.enter("ListUsers"); err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeSource) ListImages(ctx context.Context, groupID string) ([]models.Image, error) {
	if _, err := f.enter("ListImages"); err != nil {
		return nil, err
	}
	return f.images, nil
}

func (f *fakeSource) ListTasks(ctx context.Context, groupID string) ([]models.Task, error) {
	if _, err := f.enter("ListTasks"); err != nil {
		return nil, err
	}
	return f.tasks, nil
}

func (f *fakeSource) ListAssignments(ctx context.Context, taskIDs []string) ([]models.Assignment, error) {
	_, err := f.enter("ListAssignments")
	f.mu.Lock()
	f.assignArgs = append(f.assignArgs, taskIDs)
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.assignments, nil
}

func (f *fakeSource) UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) error {
	n, err := f.enter("UpdateTask")
	f.mu.Lock()
	f.updates = append(f.updates, updateCall{taskID: taskID, patch: patch})
	hook := f.updateHook
	f.mu.Unlock()
	if hook != nil {
		return hook(n)
	}
	return err
}

// memKV is an in-memory kv.Repository that counts accesses.
type memKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	writes  int
	failSet error
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}}
}

func (m *memKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *memKV) Set(ctx context.Context, key string, value []byte) error {
	return m.SetMany(ctx, map[string][]byte{key: value})
}

func (m *memKV) SetMany(ctx context.Context, values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.failSet != nil {
		return m.failSet
	}
	for k, v := range values {
		m.data[k] = append([]byte(nil), v...)
	}
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) Close() error { return nil }

func (m *memKV) accesses() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets, m.writes
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
