package adapthttp

import (
	"net/http"

	"pettrack/internal/app"
	"pettrack/internal/domain"
)

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	pet, ok := s.petFromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		goal, err := s.goals.ActiveGoal(ctx, pet.ID)
		if err == app.ErrNoActiveGoal {
			writeJSON(w, http.StatusOK, map[string]any{"goal": nil})
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": goal})

	case http.MethodPut:
		var body struct {
			GoalType string  `json:"goalType"`
			TargetKg float64 `json:"targetKg"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		goal, err := s.goals.SetGoal(ctx, pet.ID, domain.GoalType(body.GoalType), body.TargetKg)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": goal})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	pet, ok := s.petFromRequest(w, r)
	if !ok {
		return
	}
	status, err := s.goals.Progress(r.Context(), pet.ID)
	if err == app.ErrNoActiveGoal || err == app.ErrNoWeightHistory {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleGoalClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	pet, ok := s.petFromRequest(w, r)
	if !ok {
		return
	}
	if err := s.goals.ClearGoal(r.Context(), pet.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
