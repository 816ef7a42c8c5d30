package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"pettrack/internal/app"
	"pettrack/internal/domain"
)

func (s *Server) handlePets(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		pets, err := s.pets.List(r.Context(), user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": pets})

	case http.MethodPost:
		var body struct {
			Name      string `json:"name"`
			Species   string `json:"species"`
			Breed     string `json:"breed"`
			BirthDate string `json:"birthDate"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		var birthDate *time.Time
		if body.BirthDate != "" {
			t, err := time.ParseInLocation("2006-01-02", body.BirthDate, time.Local)
			if err != nil {
				writeError(w, http.StatusBadRequest, errors.New("birthDate must be yyyy-mm-dd"))
				return
			}
			birthDate = &t
		}
		pet, err := s.pets.Create(r.Context(), user.ID, body.Name, body.Species, body.Breed, birthDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"pet": pet})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePetDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)

	var body struct {
		ID int64 `json:"id"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.pets.Delete(r.Context(), user.ID, body.ID); err != nil {
		if err == app.ErrPetNotFound {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// petFromRequest resolves the "pet" query parameter to a pet owned by
// the requesting user, writing the error response itself on failure.
func (s *Server) petFromRequest(w http.ResponseWriter, r *http.Request) (*domain.Pet, bool) {
	petID, ok := int64Query(r, "pet")
	if !ok {
		writeError(w, http.StatusBadRequest, errors.New("pet query parameter is required"))
		return nil, false
	}
	user := userFromContext(r)
	pet, err := s.pets.Get(r.Context(), user.ID, petID)
	if err != nil {
		if err == app.ErrPetNotFound {
			writeError(w, http.StatusNotFound, err)
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return pet, true
}
