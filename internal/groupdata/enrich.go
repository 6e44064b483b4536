package groupdata

import (
	"github.com/dmitrijs2005/roomboard/internal/models"
)

// Enrich joins the raw reads of one fetch into a snapshot. It never fails:
// dangling user references resolve to nil creators and are skipped in
// assignee lists. The second return value counts tasks whose primary
// assignee is missing from their assignment rows.
func Enrich(group *models.Group, users []models.User, images []models.Image, tasks []models.Task, assignments []models.Assignment) (models.GroupData, int) {
	data := models.EmptyGroupData()
	data.Group = group
	if users != nil {
		data.Users = users
	}
	if assignments != nil {
		data.Assignments = assignments
	}

	usersByID := make(map[string]*models.User, len(data.Users))
	for i := range data.Users {
		usersByID[data.Users[i].ID] = &data.Users[i]
	}

	assigned := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		assigned[t.ID] = []string{}
	}
	for _, a := range data.Assignments {
		assigned[a.TaskID] = append(assigned[a.TaskID], a.UserID)
	}

	data.Images = make([]models.ImageWithCreator, 0, len(images))
	for _, img := range images {
		enriched := models.ImageWithCreator{Image: img}
		if u, ok := usersByID[img.CreatedBy]; ok {
			creator := *u
			enriched.Creator = &creator
		}
		data.Images = append(data.Images, enriched)
	}

	divergent := 0
	data.Tasks = make([]models.TaskWithAssignees, 0, len(tasks))
	for _, t := range tasks {
		ids := assigned[t.ID]
		assignees := make([]models.User, 0, len(ids))
		for _, id := range ids {
			if u, ok := usersByID[id]; ok {
				assignees = append(assignees, *u)
			}
		}
		enriched := models.TaskWithAssignees{
			Task:            t,
			Assignees:       assignees,
			AssignedUserIDs: ids,
		}
		if enriched.PrimaryAssigneeDiverges() {
			divergent++
		}
		data.Tasks = append(data.Tasks, enriched)
	}

	return data, divergent
}
