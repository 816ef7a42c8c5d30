package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"pettrack/internal/app"
	"pettrack/internal/domain"
)

func (s *Server) handleFoodSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := s.nutrition.SearchFood(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleFoodAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Name           string  `json:"name"`
		Brand          string  `json:"brand"`
		KcalPerServing float64 `json:"kcalPerServing"`
		ServingGrams   float64 `json:"servingGrams"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	item, err := s.nutrition.AddFood(r.Context(), body.Name, body.Brand, body.KcalPerServing, body.ServingGrams)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": item})
}

func (s *Server) handleMeals(w http.ResponseWriter, r *http.Request) {
	pet, ok := s.petFromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		limit := intQuery(r, "limit", 14)
		items, err := s.nutrition.ListRecentMeals(ctx, pet.ID, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body struct {
			FoodID      int64   `json:"foodId"`
			Servings    float64 `json:"servings"`
			Description string  `json:"description"`
			Kcal        float64 `json:"kcal"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		var meal *domain.MealEvent
		var err error
		if body.FoodID != 0 {
			meal, err = s.nutrition.LogMeal(ctx, pet.ID, body.FoodID, body.Servings)
		} else {
			meal, err = s.nutrition.LogFreeMeal(ctx, pet.ID, body.Description, body.Kcal)
		}
		if err == app.ErrFoodNotFound {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"meal": meal})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMealsToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	pet, ok := s.petFromRequest(w, r)
	if !ok {
		return
	}
	status, err := s.nutrition.TodayCalorieStatus(r.Context(), pet.ID, localDayString(time.Now()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleMealsUndoLast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	pet, ok := s.petFromRequest(w, r)
	if !ok {
		return
	}
	deleted, id, err := s.nutrition.UndoLastMeal(r.Context(), pet.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted, "id": id})
}

func (s *Server) handleCalorieGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	pet, ok := s.petFromRequest(w, r)
	if !ok {
		return
	}
	var body struct {
		DailyKcal float64 `json:"dailyKcal"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.DailyKcal == 0 {
		writeError(w, http.StatusBadRequest, errors.New("dailyKcal is required"))
		return
	}
	if err := s.nutrition.SetCalorieGoal(r.Context(), pet.ID, body.DailyKcal); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
