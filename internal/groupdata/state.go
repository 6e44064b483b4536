package groupdata

import (
	"time"

	"github.com/dmitrijs2005/roomboard/internal/models"
)

// State is the read model of a Store. Data shares memory with the store and
// must be treated as read-only.
type State struct {
	GroupID string
	Data    models.GroupData

	// Loading is set on activation and cleared once something current can be
	// shown: a fresh cache entry was adopted or a fetch finished.
	Loading bool
	// Fetching reports whether any fetch is in flight.
	Fetching bool

	// Err is the outcome of the last applied fetch. The snapshot in Data is
	// the last good one regardless.
	Err       error
	FetchedAt time.Time
	FromCache bool
}

// ErrorMessage is Err as text, or "" when the last fetch succeeded.
func (s State) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}
