package rsvp

import (
	"context"
	"strings"

	"wedding-rsvp/internal/models"
)

// Step is a position in the RSVP wizard
type Step int

const (
	StepIdentify Step = iota + 1
	StepAttendance
	StepNotes
	StepReview
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepIdentify:
		return "identify"
	case StepAttendance:
		return "attendance"
	case StepNotes:
		return "notes"
	case StepReview:
		return "review"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Wizard is one guest's pass through the four RSVP steps. It owns the
// session's roster, choices and notes; persistence is delegated to the
// Directory. A Wizard is not safe for concurrent use.
type Wizard struct {
	dir Directory

	step     Step
	fullName string
	guest    *models.Guest
	members  []models.Guest
	choices  map[string]models.RSVPStatus

	notes       []models.Note
	draftMember string
	draftText   string

	err       error
	noteErr   error
	submitErr error
}

// NewWizard starts a wizard on the identify step
func NewWizard(dir Directory) *Wizard {
	w := &Wizard{dir: dir}
	w.reset()
	return w
}

func (w *Wizard) reset() {
	w.step = StepIdentify
	w.guest = nil
	w.members = nil
	w.choices = make(map[string]models.RSVPStatus)
	w.notes = nil
	w.draftMember = ""
	w.draftText = ""
	w.err = nil
	w.noteErr = nil
	w.submitErr = nil
}

// Lookup resolves the guest by name and loads their household. A roster
// failure still advances to the attendance step, with an empty roster and an
// error, so the only way on is to start over.
func (w *Wizard) Lookup(ctx context.Context, fullName string) error {
	if w.step != StepIdentify {
		return ErrWrongStep
	}
	w.err = nil
	w.fullName = fullName

	guest, err := LookupGuest(ctx, w.dir, fullName)
	if err != nil {
		w.err = err
		return err
	}

	w.guest = &guest
	w.submitErr = nil
	w.step = StepAttendance

	members, err := LoadRoster(ctx, w.dir, guest.HouseholdID)
	if err != nil {
		w.members = nil
		w.choices = make(map[string]models.RSVPStatus)
		w.err = ErrRosterLoad
		return err
	}

	w.members = members
	w.choices = make(map[string]models.RSVPStatus, len(members))
	for _, m := range members {
		w.choices[m.ID] = ""
	}
	return nil
}

// Choose records a member's answer, overwriting any earlier one
func (w *Wizard) Choose(memberID string, status models.RSVPStatus) error {
	if w.step != StepAttendance {
		return ErrWrongStep
	}
	if !status.IsAnswer() {
		return ErrInvalidChoice
	}
	if _, ok := w.member(memberID); !ok {
		return ErrInvalidMember
	}
	w.choices[memberID] = status
	return nil
}

// AllChosen reports whether every member of a non-empty roster has answered
func (w *Wizard) AllChosen() bool {
	if len(w.members) == 0 {
		return false
	}
	for _, m := range w.members {
		if !w.choices[m.ID].IsAnswer() {
			return false
		}
	}
	return true
}

// ContinueToNotes moves past attendance once everyone has answered
func (w *Wizard) ContinueToNotes() error {
	if w.step != StepAttendance {
		return ErrWrongStep
	}
	if !w.AllChosen() {
		return ErrIncomplete
	}
	w.step = StepNotes
	return nil
}

// SetDraft keeps the note form's inputs between requests
func (w *Wizard) SetDraft(memberID, text string) {
	w.draftMember = memberID
	w.draftText = text
}

// AddNote attaches the draft note to a member. On failure nothing changes
// except the note error.
func (w *Wizard) AddNote(memberID, text string) error {
	if w.step != StepNotes {
		return ErrWrongStep
	}
	w.noteErr = nil
	w.SetDraft(memberID, text)

	if err := w.validateNote(memberID, text); err != nil {
		w.noteErr = err
		return err
	}

	m, _ := w.member(memberID)
	w.notes = append(w.notes, models.Note{
		GuestID:        m.ID,
		Message:        strings.TrimSpace(text),
		SenderName:     m.FullName(),
		SenderLastName: m.LastName,
	})
	w.SetDraft("", "")
	return nil
}

func (w *Wizard) validateNote(memberID, text string) error {
	if memberID == "" {
		return ErrChooseMember
	}
	if strings.TrimSpace(text) == "" {
		return ErrWriteNote
	}
	if w.HasNote(memberID) {
		return ErrDuplicateNote
	}
	if _, ok := w.member(memberID); !ok {
		return ErrInvalidMember
	}
	return nil
}

// RemoveNote drops a member's note; removing a missing note is a no-op
func (w *Wizard) RemoveNote(memberID string) error {
	if w.step != StepNotes {
		return ErrWrongStep
	}
	kept := w.notes[:0]
	for _, n := range w.notes {
		if n.GuestID != memberID {
			kept = append(kept, n)
		}
	}
	w.notes = kept
	return nil
}

// ContinueToReview leaves the notes step; skipping and continuing are the same
func (w *Wizard) ContinueToReview() error {
	if w.step != StepNotes {
		return ErrWrongStep
	}
	w.step = StepReview
	return nil
}

// Back returns to an earlier step. Forward state is kept, except that going
// back to identify resets the whole session.
func (w *Wizard) Back(to Step) error {
	if w.step == StepSubmitted || to < StepIdentify || to >= w.step {
		return ErrWrongStep
	}
	switch to {
	case StepIdentify:
		w.reset()
	case StepAttendance:
		w.noteErr = nil
		w.submitErr = nil
	case StepNotes:
		w.submitErr = nil
	}
	w.step = to
	return nil
}

// Submission assembles the batched request from the current session state
func (w *Wizard) Submission() models.Submission {
	sub := models.Submission{
		Updates: make([]models.StatusUpdate, 0, len(w.members)),
		Notes:   append([]models.Note{}, w.notes...),
	}
	if w.guest != nil {
		sub.HouseholdID = w.guest.HouseholdID
	}
	for _, m := range w.members {
		sub.Updates = append(sub.Updates, models.StatusUpdate{GuestID: m.ID, Status: w.choices[m.ID]})
	}
	return sub
}

// Submit sends every answer and note in one call. Any service error is kept
// verbatim and leaves the session untouched for another attempt.
func (w *Wizard) Submit(ctx context.Context) (models.Submission, error) {
	if w.step != StepReview {
		return models.Submission{}, ErrWrongStep
	}
	w.submitErr = nil
	if w.guest == nil || !w.AllChosen() {
		w.submitErr = ErrIncomplete
		return models.Submission{}, ErrIncomplete
	}

	sub := w.Submission()
	if err := w.dir.SubmitRSVP(ctx, sub); err != nil {
		w.submitErr = err
		return models.Submission{}, err
	}
	w.step = StepSubmitted
	return sub, nil
}

// StartOver resets the session to the identify step
func (w *Wizard) StartOver() {
	w.reset()
	w.fullName = ""
}

func (w *Wizard) member(id string) (models.Guest, bool) {
	for _, m := range w.members {
		if m.ID == id {
			return m, true
		}
	}
	return models.Guest{}, false
}

// Step returns the current step
func (w *Wizard) Step() Step { return w.step }

// FullName is the last name entered on the identify step
func (w *Wizard) FullName() string { return w.fullName }

// Guest is the guest resolved by Lookup, if any
func (w *Wizard) Guest() (models.Guest, bool) {
	if w.guest == nil {
		return models.Guest{}, false
	}
	return *w.guest, true
}

// Members returns a copy of the roster
func (w *Wizard) Members() []models.Guest {
	return append([]models.Guest(nil), w.members...)
}

// Choice returns a member's answer, empty while unchosen
func (w *Wizard) Choice(memberID string) models.RSVPStatus { return w.choices[memberID] }

// Notes returns a copy of the accumulated notes
func (w *Wizard) Notes() []models.Note {
	return append([]models.Note(nil), w.notes...)
}

// HasNote reports whether the member already has a note
func (w *Wizard) HasNote(memberID string) bool {
	for _, n := range w.notes {
		if n.GuestID == memberID {
			return true
		}
	}
	return false
}

// Draft returns the note form's pending inputs
func (w *Wizard) Draft() (memberID, text string) { return w.draftMember, w.draftText }

// Err is the identify or roster error shown on the first two steps
func (w *Wizard) Err() error { return w.err }

// NoteErr is the last note validation error
func (w *Wizard) NoteErr() error { return w.noteErr }

// SubmitErr is the last submission error
func (w *Wizard) SubmitErr() error { return w.submitErr }
