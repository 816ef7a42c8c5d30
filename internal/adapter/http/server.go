// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"pettrack/internal/app"
)

// OIDCConfig holds the optional SSO configuration for the server.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	pets      *app.PetService
	weight    *app.WeightService
	goals     *app.GoalService
	nutrition *app.NutritionService
	charts    *app.ChartsService
	authSvc   *app.AuthService

	oidcConfig OIDCConfig
	webDir     string

	// disableAuth bypasses session checks; used by handler tests.
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(ps *app.PetService, ws *app.WeightService, gs *app.GoalService, ns *app.NutritionService, cs *app.ChartsService, as *app.AuthService, oidcConfig OIDCConfig, webDir string) *Server {
	return &Server{
		pets:       ps,
		weight:     ws,
		goals:      gs,
		nutrition:  ns,
		charts:     cs,
		authSvc:    as,
		oidcConfig: oidcConfig,
		webDir:     webDir,
	}
}

// WithoutAuth disables session validation; handler tests use it to hit
// protected routes directly.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	protected := http.NewServeMux()
	protected.HandleFunc("/pets", s.handlePets)
	protected.HandleFunc("/pets/delete", s.handlePetDelete)

	protected.HandleFunc("/weight/today", s.handleWeightToday)
	protected.HandleFunc("/weight/recent", s.handleWeightRecent)
	protected.HandleFunc("/weight/undo-last", s.handleWeightUndoLast)

	protected.HandleFunc("/goal", s.handleGoal)
	protected.HandleFunc("/goal/progress", s.handleGoalProgress)
	protected.HandleFunc("/goal/clear", s.handleGoalClear)

	protected.HandleFunc("/food/search", s.handleFoodSearch)
	protected.HandleFunc("/food", s.handleFoodAdd)
	protected.HandleFunc("/meals", s.handleMeals)
	protected.HandleFunc("/meals/today", s.handleMealsToday)
	protected.HandleFunc("/meals/undo-last", s.handleMealsUndoLast)
	protected.HandleFunc("/calorie-goal", s.handleCalorieGoal)

	protected.HandleFunc("/charts/daily", s.handleChartsDaily)

	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return withNoCache(root)
}
