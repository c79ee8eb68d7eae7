package web

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/hlog"

	"wedding-rsvp/internal/models"
)

type homeView struct {
	DaysLeft int
	HasDate  bool
	Passed   bool
}

func (s *Server) home(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var v homeView
	if when := s.cfg.WeddingTime(); !when.IsZero() {
		v.HasDate = true
		days := math.Ceil(when.Sub(s.now()).Hours() / 24)
		if days <= 0 {
			v.Passed = true
		} else {
			v.DaysLeft = int(days)
		}
	}
	s.render(w, r, http.StatusOK, "home", "", v)
}

func (s *Server) info(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	info := models.Info{
		Name:    s.cfg.ServiceName,
		Version: s.cfg.AppVersion,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(models.Error{Error: "database unavailable"})
			return
		}
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
