package interfaces

import (
	"context"

	"github.com/hyperterse/reportdeck/core/domain"
)

// Connector is the shared database handle every report runs through.
type Connector interface {
	// Query runs a statement and materializes the full result set.
	// Column order follows the select list and row order follows the database.
	Query(ctx context.Context, statement string) (domain.Table, error)

	// Ping checks the handle can reach the database
	Ping(ctx context.Context) error

	// Close closes the connector and releases resources
	Close() error
}

// ConnectionProvider lazily opens and memoizes a single Connector.
type ConnectionProvider interface {
	// Get returns the shared connector, opening it on first use
	Get(ctx context.Context) (Connector, error)

	// Close releases the connector if one was opened
	Close() error
}
