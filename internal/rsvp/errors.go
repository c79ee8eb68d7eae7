package rsvp

import "errors"

// Validation errors are raised locally without contacting the data service.
var (
	ErrNameIncomplete = errors.New("please enter your first and last name")
	ErrIncomplete     = errors.New("please choose for everyone before continuing")
	ErrChooseMember   = errors.New("please choose a member")
	ErrWriteNote      = errors.New("please write a note")
	ErrDuplicateNote  = errors.New("that member already added a note")
	ErrInvalidMember  = errors.New("invalid member selection")
	ErrInvalidChoice  = errors.New("choose accept or decline")
	ErrWrongStep      = errors.New("that action is not available on this step")
)

var (
	// ErrGuestNotFound covers both zero and ambiguous name matches
	ErrGuestNotFound = errors.New("name not found, please check spelling")
	// ErrRosterLoad means the household members could not be fetched
	ErrRosterLoad = errors.New("unable to load household members")
)

var validationErrors = []error{
	ErrNameIncomplete, ErrIncomplete, ErrChooseMember, ErrWriteNote,
	ErrDuplicateNote, ErrInvalidMember, ErrInvalidChoice, ErrWrongStep,
}

// IsValidation reports whether err was raised locally, before any network call
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
