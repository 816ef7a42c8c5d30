package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pettrack/internal/adapter/postgres"
	"pettrack/internal/app"
)

func addUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-user <username>",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Database.URL == "" {
				return errors.New("database.url (or DATABASE_URL) is required")
			}
			db, err := postgres.Open(cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("db open: %w", err)
			}
			defer func() { _ = db.Close() }()

			fmt.Print("Password: ")
			password, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return err
			}
			if len(password) == 0 {
				return errors.New("password must not be empty")
			}

			hash, err := app.HashPassword(string(password))
			if err != nil {
				return err
			}
			user, err := db.Create(cmd.Context(), args[0], hash)
			if err != nil {
				return err
			}
			fmt.Printf("created user %q (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
}
