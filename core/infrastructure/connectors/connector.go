package connectors

import (
	"context"
	"fmt"

	"github.com/hyperterse/reportdeck/core/config"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
)

// NewConnector opens a connector for the configured database and verifies it
// with a ping.
func NewConnector(ctx context.Context, db config.Database) (interfaces.Connector, error) {
	if db.ConnectionString == "" {
		return nil, fmt.Errorf("database is missing a connection string")
	}

	switch connector := db.EffectiveConnector(); connector {
	case config.ConnectorPostgres:
		return NewPostgresConnector(ctx, db.ConnectionString, db.Options)
	case config.ConnectorMySQL:
		return NewMySQLConnector(ctx, db.ConnectionString, db.Options)
	case config.ConnectorSQLite:
		return NewSQLiteConnector(ctx, db.ConnectionString, db.Options)
	case "":
		return nil, fmt.Errorf("unable to infer connector from connection string; set database.connector")
	default:
		return nil, fmt.Errorf("unsupported connector type '%s'", connector)
	}
}

// OpenerFor returns an Opener bound to the configured database.
func OpenerFor(db config.Database) Opener {
	return func(ctx context.Context) (interfaces.Connector, error) {
		return NewConnector(ctx, db)
	}
}
