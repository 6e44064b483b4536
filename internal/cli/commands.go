package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/roomboard/internal/common"
	"github.com/dmitrijs2005/roomboard/internal/models"
)

var errUsage = errors.New("usage")

func (a *App) Login(ctx context.Context, args []string) error {
	token := a.token
	a.token = ""
	if len(args) > 0 {
		token = args[0]
	}
	if token == "" {
		var err error
		token, err = GetSecret(a.out, "Session token")
		if err != nil {
			a.printf("Error reading token: %v\n", err)
			return err
		}
	}

	userID, groupID, err := a.resolver.ResolveGroupID(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTokenExpired):
			a.printf("Session expired, sign in again\n")
		case errors.Is(err, common.ErrInvalidToken):
			a.printf("Invalid session token\n")
		default:
			a.printf("Login failed: %v\n", err)
		}
		return err
	}
	a.userID = userID

	if err := a.store.Activate(ctx, groupID); err != nil {
		a.printf("Error: %v\n", err)
		return err
	}
	if groupID == "" {
		a.printf("Signed in as %s. You are not part of a household yet.\n", userID)
	} else {
		a.printf("Signed in as %s, household %s\n", userID, groupID)
	}
	return nil
}

func (a *App) Group(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: group <id>|none\n")
		return errUsage
	}
	groupID := args[0]
	if groupID == "none" {
		groupID = ""
	}
	if err := a.store.Activate(ctx, groupID); err != nil {
		a.printf("Error: %v\n", err)
		return err
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	st := a.store.State()
	if st.GroupID == "" {
		a.printf("No household selected\n")
		return nil
	}
	if st.Data.Group == nil {
		if st.Err != nil {
			a.printf("Could not load household: %s\n", st.ErrorMessage())
		} else {
			a.printf("Loading...\n")
		}
		return nil
	}

	g := st.Data.Group
	a.printf("%s, apt %s\n", g.BuildingName, g.ApartmentNumber)
	open := 0
	for _, t := range st.Data.Tasks {
		if !t.Completed {
			open++
		}
	}
	a.printf("  roommates: %d\n  tasks: %d (%d open)\n  photos: %d\n",
		len(st.Data.Users), len(st.Data.Tasks), open, len(st.Data.Images))
	a.printf("  %s\n", freshness(st.FetchedAt, st.FromCache))
	if st.Err != nil {
		a.printf("  last refresh failed: %s\n", st.ErrorMessage())
	}
	return nil
}

func (a *App) Tasks(ctx context.Context, args []string) error {
	st := a.store.State()
	if len(st.Data.Tasks) == 0 {
		a.printf("No tasks\n")
		return nil
	}
	for _, t := range st.Data.Tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		due := "no due date"
		if t.DueDate != nil {
			due = "due " + t.DueDate.Format(time.DateOnly)
		}
		names := make([]string, 0, len(t.Assignees))
		for _, u := range t.Assignees {
			names = append(names, u.Name)
		}
		who := "unassigned"
		if len(names) > 0 {
			who = strings.Join(names, ", ")
		}
		a.printf("%s %s  %s  (%s; %s)\n", box, t.ID, t.Name, due, who)
	}
	return nil
}

func (a *App) Users(ctx context.Context, args []string) error {
	st := a.store.State()
	if len(st.Data.Users) == 0 {
		a.printf("No roommates\n")
		return nil
	}
	for _, u := range st.Data.Users {
		a.printf("%s  %s <%s>", u.ID, u.Name, u.Email)
		if u.Phone != "" {
			a.printf("  %s", u.Phone)
		}
		if u.Allergies != "" {
			a.printf("  allergies: %s", u.Allergies)
		}
		a.printf("\n")
	}
	return nil
}

func (a *App) Images(ctx context.Context, args []string) error {
	st := a.store.State()
	if len(st.Data.Images) == 0 {
		a.printf("No photos\n")
		return nil
	}
	for _, img := range st.Data.Images {
		by := "former roommate"
		if img.Creator != nil {
			by = img.Creator.Name
		}
		a.printf("%s  %q [%s] by %s, %s\n", img.ID, img.Title, img.Category, by, img.CreatedAt.Format(time.DateOnly))
		if a.gallery == nil {
			continue
		}
		url, err := a.gallery.ViewURL(ctx, img.URL)
		if err != nil {
			a.log.Warn(ctx, "presign failed", "image_id", img.ID, "error", err)
			continue
		}
		a.printf("    %s\n", url)
	}
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	return a.setCompleted(ctx, args, true)
}

func (a *App) Undo(ctx context.Context, args []string) error {
	return a.setCompleted(ctx, args, false)
}

func (a *App) setCompleted(ctx context.Context, args []string, done bool) error {
	if len(args) != 1 {
		a.printf("Usage: done|undo <task>\n")
		return errUsage
	}
	err := a.store.UpdateTask(ctx, args[0], models.SetCompleted(done))
	if err != nil {
		a.printf("Update failed: %v\nThe local change was kept; run 'refetch' to reload.\n", err)
		return err
	}
	a.printf("OK\n")
	return nil
}

func (a *App) Refetch(ctx context.Context, args []string) error {
	if err := a.store.Refetch(ctx); err != nil {
		a.printf("Refetch failed: %v\n", err)
		return err
	}
	a.printf("Up to date\n")
	return nil
}

func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) < 3 {
		a.printf("Usage: upload <path> <category> <title>\n")
		return errUsage
	}
	if !a.isLoggedIn() {
		a.printf("Sign in first\n")
		return common.ErrInvalidToken
	}
	st := a.store.State()
	if st.GroupID == "" {
		a.printf("No household selected\n")
		return common.ErrNoGroup
	}
	if a.gallery == nil {
		a.printf("Gallery storage is not configured\n")
		return errors.New("no gallery")
	}

	path, category, title := args[0], args[1], strings.Join(args[2:], " ")
	content, err := readFile(path)
	if err != nil {
		a.printf("Error reading file: %v\n", err)
		return err
	}

	img, err := a.gallery.Upload(ctx, st.GroupID, a.userID, title, category, filepath.Base(path), content)
	if err != nil {
		a.printf("Upload failed: %v\n", err)
		return err
	}
	a.printf("Uploaded %s (%d bytes)\n", img.ID, len(content))
	return nil
}

func (a *App) Status(ctx context.Context, args []string) error {
	st := a.store.State()
	group := st.GroupID
	if group == "" {
		group = "none"
	}
	a.printf("household: %s\nloading: %t\nfetching: %t\n", group, st.Loading, st.Fetching)
	if !st.FetchedAt.IsZero() {
		a.printf("%s\n", freshness(st.FetchedAt, st.FromCache))
	}
	if st.Err != nil {
		a.printf("error: %s\n", st.ErrorMessage())
	}
	if m := a.Mode(); m != "" {
		a.printf("mode: %s\n", m)
	}
	return nil
}

func freshness(at time.Time, fromCache bool) string {
	src := "database"
	if fromCache {
		src = "local cache"
	}
	return fmt.Sprintf("from %s, %s", src, at.Format(time.DateTime))
}
