// Package migrations creates and upgrades the task schema. Each dialect has
// its own directory of numbered NNNNNN_name.up.sql files; data migrations
// written in Go are registered with RegisterGoMigration and run for every
// dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed sqlite/*.sql mysql/*.sql
var migrationsFS embed.FS

// Migration is one numbered schema step. SQL migrations carry Statements,
// Go migrations carry Up.
type Migration struct {
	Version    int
	Name       string
	Statements []string
	Up         GoMigrationFunc
}

// GoMigrationFunc runs inside the transaction of its migration
type GoMigrationFunc func(ctx context.Context, tx *sql.Tx) error

var goMigrations = map[int]Migration{}

// RegisterGoMigration adds a Go migration. It is meant to be called from init
// and panics when version is already registered.
func RegisterGoMigration(version int, name string, up GoMigrationFunc) {
	if _, dup := goMigrations[version]; dup {
		panic(fmt.Sprintf("migrations: duplicate Go migration version %d", version))
	}
	goMigrations[version] = Migration{Version: version, Name: name, Up: up}
}

var migrationsTable = map[string]string{
	"sqlite": `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	"mysql": `
	CREATE TABLE IF NOT EXISTS migrations (
		version INT PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// RunMigrations applies every migration for dialect that has not been
// recorded in the migrations table. Running it again is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB, dialect string) error {
	ddl, ok := migrationsTable[dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", dialect)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := Load(dialect)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		if err := applyMigration(ctx, db, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}
	}

	return nil
}

// Load reads the embedded migrations for dialect, merges the registered Go
// migrations and returns them in version order.
func Load(dialect string) ([]Migration, error) {
	entries, err := migrationsFS.ReadDir(dialect)
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	seen := make(map[int]bool)
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		version := extractVersion(entry.Name())
		if version == 0 {
			continue
		}

		body, err := migrationsFS.ReadFile(path.Join(dialect, entry.Name()))
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, Migration{
			Version:    version,
			Name:       strings.TrimSuffix(entry.Name(), ".up.sql"),
			Statements: splitStatements(string(body)),
		})
		seen[version] = true
	}

	for version, migration := range goMigrations {
		if seen[version] {
			return nil, fmt.Errorf("migration %d is defined in both SQL and Go", version)
		}
		migrations = append(migrations, migration)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func getAppliedMigrations(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// applyMigration runs the statements and records the version in one
// transaction. MySQL commits DDL implicitly, so there only the bookkeeping
// row is transactional.
func applyMigration(ctx context.Context, db *sql.DB, migration Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, stmt := range migration.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return err
		}
	}

	if migration.Up != nil {
		if err := migration.Up(ctx, tx); err != nil {
			tx.Rollback()
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO migrations (version) VALUES (?)", migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// splitStatements breaks a file on ';' since the MySQL driver rejects
// multi-statement Exec calls by default.
func splitStatements(body string) []string {
	var stmts []string
	for _, part := range strings.Split(body, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}
