package admin

import "errors"

var (
	// ErrBusy is returned when the row already has a mutation in flight
	ErrBusy = errors.New("this row is busy, try again in a moment")
	// ErrNotConfirmed is returned by deletes that were not confirmed
	ErrNotConfirmed = errors.New("please confirm the delete")
	// ErrNameRequired is returned when a first or last name is blank
	ErrNameRequired = errors.New("first and last name are required")
	// ErrInvalidStatus is returned for a status outside pending, accepted and declined
	ErrInvalidStatus = errors.New("invalid RSVP status")
	// ErrMissingID is returned when a mutation names no household or guest
	ErrMissingID = errors.New("missing household or guest id")
)

// IsValidation reports whether err was raised before reaching the data service
func IsValidation(err error) bool {
	return errors.Is(err, ErrNotConfirmed) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrMissingID)
}
