package tournament

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest        = errors.New("invalid_request")
	ErrNotFound              = errors.New("not_found")
	ErrFull                  = errors.New("tournament_full")
	ErrDuplicateRegistration = errors.New("duplicate_registration")
	ErrWinnerNotRegistered   = errors.New("winner_not_registered")
	ErrInvalidState          = errors.New("invalid_state")
	ErrNotEnoughPlayers      = errors.New("not_enough_players")
	ErrMatchNotFound         = errors.New("match_not_found")
	ErrMatchNotReady         = errors.New("match_not_ready")
	ErrMatchDecided          = errors.New("match_already_decided")
	ErrWinnerNotInMatch      = errors.New("winner_not_in_match")
)

// PersistenceWarning reports that the catalog could not be written to the
// key-value store. The in-memory state is still updated.
type PersistenceWarning struct {
	Key string
	Err error
}

func (w *PersistenceWarning) Error() string {
	return fmt.Sprintf("persist %s: %v", w.Key, w.Err)
}

func (w *PersistenceWarning) Unwrap() error {
	return w.Err
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidRequest}, args...)...)
}

func stateErr(t *Tournament, want Status) error {
	return fmt.Errorf("%w: tournament %s is %s, want %s", ErrInvalidState, t.ID, t.Status, want)
}
