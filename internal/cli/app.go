package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/roomboard/internal/groupdata"
	"github.com/dmitrijs2005/roomboard/internal/logging"
	"github.com/dmitrijs2005/roomboard/internal/models"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type DataStore interface {
	Activate(ctx context.Context, groupID string) error
	Refetch(ctx context.Context) error
	UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) error
	State() groupdata.State
}

type GroupResolver interface {
	ResolveGroupID(ctx context.Context, token string) (userID, groupID string, err error)
}

type Gallery interface {
	Upload(ctx context.Context, groupID, userID, title, category, fileName string, content []byte) (*models.Image, error)
	ViewURL(ctx context.Context, key string) (string, error)
}

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

type App struct {
	store    DataStore
	resolver GroupResolver
	gallery  Gallery
	log      logging.Logger

	token  string
	userID string

	mu   sync.Mutex
	mode Mode

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the shell. token, when non-empty, is used for the first
// login instead of prompting.
func NewApp(store DataStore, resolver GroupResolver, gallery Gallery, log logging.Logger, token string, in io.Reader, out io.Writer) *App {
	return &App{
		store:    store,
		resolver: resolver,
		gallery:  gallery,
		log:      log,
		token:    token,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) isLoggedIn() bool {
	return a.userID != ""
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(context.Background(), "sync mode changed", "mode", mode)
	}
}

// Run signs in with the configured token (if any) and serves commands from
// the app's input until EOF or exit.
func (a *App) Run(ctx context.Context, watchInterval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.printf("Welcome to roomboard (type 'help' for commands)\n")
	if a.token != "" {
		_ = a.Login(ctx, nil)
	}

	go a.StartSyncWatcher(ctx, watchInterval)

	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

// StartSyncWatcher flips the mode to offline while the last fetch failed and
// back to online once one succeeds.
func (a *App) StartSyncWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st := a.store.State()
			if st.GroupID == "" {
				continue
			}
			if st.Err != nil {
				a.setMode(ModeOffline)
			} else if !st.FetchedAt.IsZero() {
				a.setMode(ModeOnline)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) status() string {
	st := a.store.State()
	s := ""
	if st.Data.Group != nil {
		s = fmt.Sprintf("%s %s", st.Data.Group.BuildingName, st.Data.Group.ApartmentNumber)
	}
	if m := a.Mode(); m != "" {
		if s != "" {
			s += " "
		}
		s += string(m)
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}
