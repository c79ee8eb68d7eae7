package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/hlog"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/rsvp"
)

type memberView struct {
	Guest   models.Guest
	Choice  models.RSVPStatus
	HasNote bool
}

type rsvpView struct {
	Step        string
	StepNumber  int
	FullName    string
	Error       string
	Members     []memberView
	AllChosen   bool
	Notes       []models.Note
	DraftMember string
	DraftText   string
	NoteError   string
	SubmitError string
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func newRSVPView(w *rsvp.Wizard) rsvpView {
	v := rsvpView{
		Step:        w.Step().String(),
		StepNumber:  int(w.Step()),
		FullName:    w.FullName(),
		Error:       errText(w.Err()),
		AllChosen:   w.AllChosen(),
		Notes:       w.Notes(),
		NoteError:   errText(w.NoteErr()),
		SubmitError: errText(w.SubmitErr()),
	}
	v.DraftMember, v.DraftText = w.Draft()
	for _, m := range w.Members() {
		v.Members = append(v.Members, memberView{Guest: m, Choice: w.Choice(m.ID), HasNote: w.HasNote(m.ID)})
	}
	return v
}

// withWizard runs fn against the caller's wizard, refreshing the session cookie
func (s *Server) withWizard(w http.ResponseWriter, r *http.Request, fn func(*rsvp.Wizard)) {
	var id string
	if c, err := r.Cookie(wizardCookie); err == nil {
		id = c.Value
	}
	id = s.sessions.With(id, fn)
	s.setCookie(w, wizardCookie, id, s.now().Add(s.cfg.WizardTTL))
}

// rsvpAction parses the form, applies fn, then redirects back to the wizard.
// Errors the wizard does not keep itself are rendered inline instead.
func (s *Server) rsvpAction(w http.ResponseWriter, r *http.Request, fn func(*rsvp.Wizard) error) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var (
		err  error
		view rsvpView
	)
	s.withWizard(w, r, func(wz *rsvp.Wizard) {
		err = fn(wz)
		view = newRSVPView(wz)
	})
	if err == nil {
		http.Redirect(w, r, "/rsvp", http.StatusSeeOther)
		return
	}

	status := http.StatusUnprocessableEntity
	if !rsvp.IsValidation(err) && !errors.Is(err, rsvp.ErrGuestNotFound) {
		status = http.StatusBadGateway
		hlog.FromRequest(r).Warn().Err(err).Str("step", view.Step).Msg("rsvp action failed")
	}
	flash := ""
	if view.Error == "" && view.NoteError == "" && view.SubmitError == "" {
		flash = err.Error()
	}
	s.render(w, r, status, "rsvp", flash, view)
}

func (s *Server) rsvpPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var view rsvpView
	s.withWizard(w, r, func(wz *rsvp.Wizard) { view = newRSVPView(wz) })
	s.render(w, r, http.StatusOK, "rsvp", "", view)
}

func (s *Server) rsvpLookup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.rsvpAction(w, r, func(wz *rsvp.Wizard) error {
		err := wz.Lookup(r.Context(), r.PostFormValue("full_name"))
		if err != nil && wz.Step() == rsvp.StepAttendance {
			// roster failures are shown on the attendance step
			hlog.FromRequest(r).Error().Err(err).Msg("failed to load household")
			return nil
		}
		return err
	})
}

func (s *Server) rsvpChoose(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.rsvpAction(w, r, func(wz *rsvp.Wizard) error {
		return wz.Choose(r.PostFormValue("guest_id"), models.RSVPStatus(r.PostFormValue("status")))
	})
}

func (s *Server) rsvpContinue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.rsvpAction(w, r, func(wz *rsvp.Wizard) error { return wz.ContinueToNotes() })
}

func (s *Server) rsvpAddNote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.rsvpAction(w, r, func(wz *rsvp.Wizard) error {
		return wz.AddNote(r.PostFormValue("guest_id"), r.PostFormValue("message"))
	})
}

func (s *Server) rsvpRemoveNote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.rsvpAction(w, r, func(wz *rsvp.Wizard) error { return wz.RemoveNote(r.PostFormValue("guest_id")) })
}

func (s *Server) rsvpReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.rsvpAction(w, r, func(wz *rsvp.Wizard) error { return wz.ContinueToReview() })
}

func (s *Server) rsvpBack(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.rsvpAction(w, r, func(wz *rsvp.Wizard) error {
		step, err := strconv.Atoi(r.PostFormValue("step"))
		if err != nil {
			return rsvp.ErrWrongStep
		}
		return wz.Back(rsvp.Step(step))
	})
}

func (s *Server) rsvpSubmit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.rsvpAction(w, r, func(wz *rsvp.Wizard) error {
		sub, err := wz.Submit(r.Context())
		if err != nil {
			if wz.SubmitErr() != nil {
				// kept on the review step for display
				hlog.FromRequest(r).Warn().Err(err).Msg("rsvp submission failed")
				return nil
			}
			return err
		}
		hlog.FromRequest(r).Info().
			Str("household_id", sub.HouseholdID).
			Int("updates", len(sub.Updates)).
			Int("notes", len(sub.Notes)).
			Msg("rsvp submitted")
		s.notify(wz.Members(), sub)
		return nil
	})
}

func (s *Server) rsvpStartOver(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.rsvpAction(w, r, func(wz *rsvp.Wizard) error {
		wz.StartOver()
		return nil
	})
}

// notify hands the submission to the notifier without holding up the guest
func (s *Server) notify(members []models.Guest, sub models.Submission) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.RSVPSubmitted(ctx, members, sub); err != nil {
			s.log.Error().Err(err).Str("household_id", sub.HouseholdID).Msg("failed to send rsvp notification")
		}
	}()
}
