package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
)

// SQLiteConnector implements the Connector interface for SQLite files
type SQLiteConnector struct {
	db *sql.DB
}

// NewSQLiteConnector opens a SQLite database. The connection string may be a
// plain path, a file: URI, or sqlite://path.
func NewSQLiteConnector(ctx context.Context, connectionString string, options map[string]string) (interfaces.Connector, error) {
	dsn := sqliteDSN(connectionString, options)

	log := logging.New("connector:sqlite")
	log.Debugf("Opening SQLite database")

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One session, so an in-memory database is not split across connections.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	log.Debugf("SQLite database opened successfully")
	return &SQLiteConnector{db: db}, nil
}

func sqliteDSN(connectionString string, options map[string]string) string {
	dsn := strings.TrimPrefix(connectionString, "sqlite://")
	if len(options) == 0 {
		return dsn
	}

	values := url.Values{}
	for key, value := range options {
		values.Set(key, value)
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + values.Encode()
}

// Query executes a SQL statement against SQLite
func (s *SQLiteConnector) Query(ctx context.Context, statement string) (domain.Table, error) {
	rows, err := s.db.QueryContext(ctx, statement)
	if err != nil {
		return domain.Table{}, err
	}
	defer rows.Close()

	return scanTable(rows)
}

// Ping checks the database file is reachable
func (s *SQLiteConnector) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *SQLiteConnector) Close() error {
	if s.db == nil {
		return nil
	}
	logging.New("connector:sqlite").Debugf("Closing SQLite database")
	return s.db.Close()
}
