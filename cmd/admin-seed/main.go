// Command admin-seed creates an administrator account.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/auth"
	"github.com/YusovID/fraud-registry/internal/config"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/YusovID/fraud-registry/internal/repository/postgres"
	"github.com/YusovID/fraud-registry/pkg/logger/slogpretty"
)

const minPasswordLen = 8

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("admin-seed", flag.ContinueOnError)
	username := fs.String("username", "", "administrator username")
	password := fs.String("password", os.Getenv("ADMIN_PASSWORD"), "administrator password (defaults to $ADMIN_PASSWORD)")
	role := fs.String("role", string(domain.RoleModerator), "SUPER_ADMIN or MODERATOR")

	if err := fs.Parse(args); err != nil {
		return err
	}

	admin, err := newAdmin(*username, *password, *role)
	if err != nil {
		return err
	}

	log := slogpretty.SetupLogger("local")

	pg, err := config.LoadPostgres()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(ctx, *pg, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer db.Close()

	if err := postgres.NewAdminRepository(db.DB(), log).CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			log.Warn("admin already exists", slog.String("username", admin.Username))
			return nil
		}

		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Info("admin created",
		slog.Int64("id", admin.ID),
		slog.String("username", admin.Username),
		slog.String("role", string(admin.Role)),
	)

	return nil
}

func newAdmin(username, password, role string) (*domain.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("-username is required")
	}

	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	r := domain.AdminRole(strings.ToUpper(role))
	if !r.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &domain.Admin{Username: username, PasswordHash: hash, Role: r}, nil
}
