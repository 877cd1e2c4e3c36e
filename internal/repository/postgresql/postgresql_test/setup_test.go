package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
)

// ErrNoTestDatabase is returned when TEST_DATABASE_URL is not set.
var ErrNoTestDatabase = errors.New("TEST_DATABASE_URL is not set")

type TestDatabaseSetup struct {
	DB            *database.DB
	migrationsDir string
}

// NewTestDatabase connects to the database named by TEST_DATABASE_URL.
// The database is wiped by ResetSchema, so point it at a throwaway instance.
func NewTestDatabase(ctx context.Context, migrationsDir string) (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, ErrNoTestDatabase
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, 4, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db, migrationsDir: migrationsDir}, nil
}

// ResetSchema drops every table and recreates the schema from the init migration.
func (t *TestDatabaseSetup) ResetSchema(ctx context.Context) error {
	for _, name := range []string{"0001_init.down.sql", "0001_init.up.sql"} {
		script, err := os.ReadFile(filepath.Join(t.migrationsDir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		// No arguments, so pgx uses the simple protocol and accepts multiple statements.
		if _, err := t.DB.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}

// TruncateAllTables empties every table while keeping the schema.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"payroll_settings",
		"payslips",
		"attendance_deductions",
		"salaries",
		"attendances",
		"refresh_tokens",
		"users",
		"contracts",
		"employees",
		"contract_types",
		"departments",
		"positions",
		"role_permissions",
		"roles",
		"permissions",
		"tenants",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
