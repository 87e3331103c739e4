package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"socialnetwork/cmd/app"
	"socialnetwork/internal/config"
	"socialnetwork/internal/database"
	"socialnetwork/internal/logger"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/service"
)

var cfg *config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:   "socialnetwork",
		Short: "Profiles, posts and follows over a REST API",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.LoadConfig()
			logger.Init(cfg.Log)
		},
		RunE: runServe,
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd(), createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY is not set")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Serve(ctx)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.ConnectDB(cfg)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := db.RunMigrations(); err != nil {
				return err
			}

			count, err := service.NewTablesService(repository.NewTablesRepository(db.DB)).CountTables(cmd.Context())
			if err != nil {
				return err
			}

			logrus.WithField("tables", count).Info("Schema is up to date")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var req repository.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a staff account that may delete any profile or post",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Email == "" || len(req.Password) < 6 {
				return errors.New("--email and a --password of at least 6 characters are required")
			}
			req.IsStaff = true

			db, err := database.ConnectDB(cfg)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			auth := service.NewAuthService(repository.NewUserRepository(db.DB), cfg)

			user, err := auth.Register(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			logrus.WithFields(logrus.Fields{
				"user_id": user.UserID,
				"email":   user.Email,
			}).Info("Staff account created")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&req.Password, "password", "", "admin password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "admin first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "admin last name")

	return cmd
}
