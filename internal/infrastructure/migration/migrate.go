package migration

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers used by the SQL backends
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql
var migrations embed.FS

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

var ErrUnknownDialect = errors.New("unknown migration dialect")

// Migrator is the part of migrate.Migrate used here.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine builds a Migrator, so tests can avoid touching a real database.
type MigrationEngine func(src source.Driver, databaseURL string) (Migrator, error)

type Migration struct {
	dialect     Dialect
	databaseURL string
	engine      MigrationEngine
}

func NewMigration(dialect Dialect, databaseURL string, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		dialect:     dialect,
		databaseURL: databaseURL,
		engine:      engine,
	}
}

// DefaultEngine runs the embedded migrations against a real database.
func DefaultEngine(src source.Driver, databaseURL string) (Migrator, error) {
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// SQLiteURL turns a database file path into a migrate sqlite3 URL.
func SQLiteURL(path string) string {
	return "sqlite3://" + path
}

// PostgresURL rewrites a postgres DSN to the scheme of the pgx/v5 migrate driver.
func PostgresURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}
	return dsn
}

func (mg *Migration) source() (source.Driver, error) {
	switch mg.dialect {
	case DialectSQLite, DialectPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, mg.dialect)
	}
	return iofs.New(migrations, "sql/"+string(mg.dialect))
}

// Up applies all pending migrations. ErrNoChange is not an error.
func (mg *Migration) Up() (err error) {
	src, err := mg.source()
	if err != nil {
		return err
	}

	m, err := mg.engine(src, mg.databaseURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source error: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database error: %w", dberr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
