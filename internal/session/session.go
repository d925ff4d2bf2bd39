package session

import (
	"context"
	"errors"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

var ErrNotFound = errors.New("session not found")

// Store keeps the active conversations. Implementations hand out copies: a session
// returned by Get is owned by the caller until it is passed back to Save.
type Store interface {
	// Create inserts s unless a session with the same id exists, in which case the
	// existing one is returned and created is false.
	Create(ctx context.Context, s models.Session) (stored models.Session, created bool, err error)
	Get(ctx context.Context, id string) (models.Session, error)
	// Save overwrites an existing session. Saving a session that was deleted in the
	// meantime returns ErrNotFound and does not bring it back.
	Save(ctx context.Context, s models.Session) error
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
