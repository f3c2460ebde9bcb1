//go:build integration

package postgres

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testDB *sqlx.DB
	logger *slog.Logger
)

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx := context.Background()
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	pgContainer, err := postgres.Run(ctx,
		"postgres:17",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			log.Printf("could not stop postgres container: %s", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %s", err)
	}

	testDB, err = sqlx.Connect("postgres", connStr)
	if err != nil {
		log.Fatalf("failed to connect to test postgres: %s", err)
	}
	defer testDB.Close()

	_, b, _, _ := runtime.Caller(0)
	migrationsPath := filepath.Join(filepath.Dir(b), "../../../migrations")
	sourceURL := "file://" + filepath.ToSlash(migrationsPath)

	migrator, err := migrate.New(sourceURL, connStr)
	if err != nil {
		log.Fatalf("failed to create migrator with url '%s': %s", sourceURL, err)
	}

	if err = migrator.Up(); err != nil {
		log.Fatalf("failed to run migrations: %s", err)
	}

	return m.Run()
}

func truncateTables(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec("TRUNCATE TABLE report_images, reports, admins, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func strptr(s string) *string { return &s }

func seedUser(t *testing.T, googleID, email string) *domain.User {
	t.Helper()

	u, err := NewUserRepository(testDB, logger).UpsertGoogleUser(context.Background(), domain.GoogleProfile{
		GoogleID: googleID,
		Email:    email,
		Name:     "User " + googleID,
	}, time.Now())
	require.NoError(t, err)

	return u
}

func seedAdmin(t *testing.T, username string) *domain.Admin {
	t.Helper()

	a := &domain.Admin{Username: username, PasswordHash: "hash", Role: domain.RoleModerator}
	require.NoError(t, NewAdminRepository(testDB, logger).CreateAdmin(context.Background(), a))

	return a
}

func seedReport(t *testing.T, ownerID int64, email, phone string) *domain.Report {
	t.Helper()

	rep, err := domain.NewReport{
		Email:       email,
		Phone:       phone,
		Description: "took the money and disappeared",
	}.Build(ownerID)
	require.NoError(t, err)

	require.NoError(t, NewReportRepository(testDB, logger).CreateReport(context.Background(), testDB, &rep))

	return &rep
}

// withTx runs fn in a transaction and commits it.
func withTx(t *testing.T, fn func(tx *sqlx.Tx) error) error {
	t.Helper()

	tx, err := testDB.BeginTxx(context.Background(), nil)
	require.NoError(t, err)

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
