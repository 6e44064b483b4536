package models

// GroupData is one consistent snapshot of a household.
type GroupData struct {
	Group       *Group              `json:"group"`
	Users       []User              `json:"users"`
	Images      []ImageWithCreator  `json:"images"`
	Tasks       []TaskWithAssignees `json:"tasks"`
	Assignments []Assignment        `json:"assigned_tasks"`
}

// EmptyGroupData returns a snapshot with no group and empty collections.
func EmptyGroupData() GroupData {
	return GroupData{
		Users:       []User{},
		Images:      []ImageWithCreator{},
		Tasks:       []TaskWithAssignees{},
		Assignments: []Assignment{},
	}
}

// FindTask returns the index of the task with the given id, or -1.
func (d GroupData) FindTask(id string) int {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// UserByID returns the fetched user with the given id.
func (d GroupData) UserByID(id string) (User, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Valid reports whether every collection is present, which is what a
// decoded cache entry must satisfy to be adopted.
func (d GroupData) Valid() bool {
	return d.Group != nil && d.Users != nil && d.Images != nil && d.Tasks != nil && d.Assignments != nil
}

// WithTasks returns a copy of d sharing everything but the task slice.
func (d GroupData) WithTasks(tasks []TaskWithAssignees) GroupData {
	d.Tasks = tasks
	return d
}
