package connectors

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
)

// PostgresConnector implements the Connector interface for PostgreSQL using pgx/v5
type PostgresConnector struct {
	pool *pgxpool.Pool
}

// NewPostgresConnector creates a new PostgreSQL connector using pgx/v5.
// The pool holds a single session unless pool_max_conns is set explicitly.
func NewPostgresConnector(ctx context.Context, connectionString string, options map[string]string) (interfaces.Connector, error) {
	connectionString, err := appendPostgresOptions(connectionString, options)
	if err != nil {
		return nil, err
	}

	log := logging.New("connector:postgres")
	log.Debugf("Opening PostgreSQL connection (pgx/v5)")

	cfg, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres connection string: %w", err)
	}
	if _, ok := options["pool_max_conns"]; !ok && !strings.Contains(connectionString, "pool_max_conns") {
		cfg.MaxConns = 1
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection pool: %w", err)
	}

	log.Debugf("Testing connection with ping")
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	log.Debugf("PostgreSQL connection opened successfully")
	return &PostgresConnector{pool: pool}, nil
}

// appendPostgresOptions merges connector options into a URL or keyword/value
// connection string.
func appendPostgresOptions(connectionString string, options map[string]string) (string, error) {
	if len(options) == 0 {
		return connectionString, nil
	}

	if strings.HasPrefix(connectionString, "postgres://") || strings.HasPrefix(connectionString, "postgresql://") {
		parsedURL, err := url.Parse(connectionString)
		if err != nil {
			return "", fmt.Errorf("failed to parse postgres connection string: %w", err)
		}
		query := parsedURL.Query()
		for key, value := range options {
			query.Set(key, value)
		}
		parsedURL.RawQuery = query.Encode()
		return parsedURL.String(), nil
	}

	parts := make([]string, 0, len(options))
	for key, value := range options {
		parts = append(parts, fmt.Sprintf("%s=%s", key, value))
	}
	return strings.TrimRight(connectionString, " ") + " " + strings.Join(parts, " "), nil
}

// Query executes a SQL statement against PostgreSQL
func (p *PostgresConnector) Query(ctx context.Context, statement string) (domain.Table, error) {
	rows, err := p.pool.Query(ctx, statement)
	if err != nil {
		return domain.Table{}, err
	}
	defer rows.Close()

	fieldDescriptions := rows.FieldDescriptions()
	table := domain.Table{
		Columns: make([]string, len(fieldDescriptions)),
		Rows:    []domain.Row{},
	}
	for i, fd := range fieldDescriptions {
		table.Columns[i] = fd.Name
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return domain.Table{}, fmt.Errorf("failed to get row values: %w", err)
		}

		row := make(domain.Row, len(table.Columns))
		for i, col := range table.Columns {
			if i < len(values) {
				row[col] = normalizePostgresValue(values[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return domain.Table{}, fmt.Errorf("error iterating rows: %w", err)
	}

	return table, nil
}

// normalizePostgresValue turns pgx wire types into plain Go scalars.
// AVG, SUM and STDDEV over integers come back as NUMERIC.
func normalizePostgresValue(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		return normalizeNumeric(val)
	case pgtype.Interval:
		if !val.Valid {
			return nil
		}
		value, err := val.Value()
		if err != nil {
			return nil
		}
		return value
	case [16]byte:
		return uuid.UUID(val).String()
	case []byte:
		return string(val)
	default:
		return val
	}
}

// normalizeNumeric returns a float64 when it formats back to the same decimal
// and the exact decimal text otherwise. NaN and infinities stay text.
func normalizeNumeric(n pgtype.Numeric) any {
	if !n.Valid {
		return nil
	}
	value, err := n.Value()
	if err != nil {
		return n
	}
	text, ok := value.(string)
	if !ok {
		return value
	}

	exact, ok := new(big.Rat).SetString(text)
	if !ok {
		return text
	}
	f, _ := exact.Float64()
	if math.IsInf(f, 0) {
		return text
	}
	roundTrip, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok || roundTrip.Cmp(exact) != 0 {
		return text
	}
	return f
}

// Ping checks the pool can reach the server
func (p *PostgresConnector) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the database connection pool
func (p *PostgresConnector) Close() error {
	if p.pool != nil {
		log := logging.New("connector:postgres")
		log.Debugf("Closing PostgreSQL connection pool")
		p.pool.Close()
		log.Debugf("PostgreSQL connection pool closed")
	}
	return nil
}
