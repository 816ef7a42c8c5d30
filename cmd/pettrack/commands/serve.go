package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	adapthttp "pettrack/internal/adapter/http"
	"pettrack/internal/adapter/memory"
	"pettrack/internal/adapter/postgres"
	"pettrack/internal/app"
	"pettrack/internal/domain"
)

func serveCmd() *cobra.Command {
	var useMemory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, closeFn, err := openRepos(useMemory)
			if err != nil {
				return err
			}
			defer closeFn()

			oidcCfg, err := buildOIDC(cmd.Context())
			if err != nil {
				return err
			}

			weightSvc := app.NewWeightService(repos.weights)
			srv := adapthttp.New(
				app.NewPetService(repos.pets),
				weightSvc,
				app.NewGoalService(repos.goals, weightSvc),
				app.NewNutritionService(repos.nutrition),
				app.NewChartsService(repos.weights, repos.nutrition),
				app.NewAuthService(repos.users, repos.sessions),
				oidcCfg,
				cfg.Server.WebDir,
			)

			log.Printf("listening on %s", cfg.Server.Addr)
			if err := http.ListenAndServe(cfg.Server.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useMemory, "memory", false, "use the in-memory store instead of PostgreSQL")
	return cmd
}

type repoSet struct {
	pets      domain.PetRepository
	weights   domain.WeightRepository
	goals     domain.GoalRepository
	nutrition domain.NutritionRepository
	users     domain.UserRepository
	sessions  domain.SessionRepository
}

func openRepos(useMemory bool) (repoSet, func(), error) {
	if useMemory {
		db := memory.New()
		return repoSet{
			pets:      db,
			weights:   db,
			goals:     db,
			nutrition: db,
			users:     db,
			sessions:  db.NewSessionRepo(),
		}, func() {}, nil
	}

	if cfg.Database.URL == "" {
		return repoSet{}, nil, errors.New("database.url (or DATABASE_URL) is required")
	}
	db, err := postgres.Open(cfg.Database.URL)
	if err != nil {
		return repoSet{}, nil, fmt.Errorf("db open: %w", err)
	}
	return repoSet{
		pets:      db,
		weights:   db,
		goals:     db,
		nutrition: db,
		users:     db,
		sessions:  postgres.NewSessionRepo(db),
	}, func() { _ = db.Close() }, nil
}

func buildOIDC(ctx context.Context) (adapthttp.OIDCConfig, error) {
	if !cfg.OIDC.Enabled() {
		return adapthttp.OIDCConfig{}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	provider, err := oidc.NewProvider(ctx, cfg.OIDC.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, fmt.Errorf("oidc provider: %w", err)
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			RedirectURL:  cfg.OIDC.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}
