package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/snnyvrz/shelfshare/internal/auth"
	"github.com/snnyvrz/shelfshare/internal/db"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/validation"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func migrate(ctx context.Context, database *gorm.DB) error {
	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := repository.NewGormGroupRepository(database).SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed groups: %w", err)
	}
	log.Info().Msg("schema migrated and default groups seeded")
	return nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and seed the default groups and permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.ConnectWithRetry(cfg)
		if err != nil {
			return err
		}
		return migrate(cmd.Context(), database)
	},
}

var (
	superuserEmail    string
	superuserPassword string
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an active staff superuser",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !validation.PasswordOK(superuserPassword) {
			return errors.New("password must be at least 8 characters and contain a letter and a digit")
		}

		database, err := db.ConnectWithRetry(cfg)
		if err != nil {
			return err
		}

		hash, err := auth.HashPassword(superuserPassword)
		if err != nil {
			return err
		}

		user := model.User{
			Email:        superuserEmail,
			PasswordHash: hash,
			IsActive:     true,
			IsStaff:      true,
			IsSuperuser:  true,
		}
		if err := repository.NewGormUserRepository(database).Create(cmd.Context(), &user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("a user with email %s already exists", superuserEmail)
			}
			return err
		}

		log.Info().Str("email", user.Email).Str("id", user.ID.String()).Msg("superuser created")
		return nil
	},
}

var purgeSessionsCmd = &cobra.Command{
	Use:   "purge-sessions",
	Short: "Delete expired sessions from the database store",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.ConnectWithRetry(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		n, err := auth.NewGormSessionStore(database).PurgeExpired(ctx)
		if err != nil {
			return err
		}
		log.Info().Int64("deleted", n).Msg("expired sessions purged")
		return nil
	},
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "login email")
	createSuperuserCmd.Flags().StringVar(&superuserPassword, "password", "", "password")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	_ = createSuperuserCmd.MarkFlagRequired("password")
}
