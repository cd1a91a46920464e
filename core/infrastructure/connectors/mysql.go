package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
)

// MySQLConnector implements the Connector interface for MySQL
type MySQLConnector struct {
	db *sql.DB
}

// NewMySQLConnector creates a new MySQL connector. Both mysql:// URLs and
// native DSNs are accepted.
func NewMySQLConnector(ctx context.Context, connectionString string, options map[string]string) (interfaces.Connector, error) {
	dsn, err := mysqlDSN(connectionString, options)
	if err != nil {
		return nil, err
	}

	log := logging.New("connector:mysql")
	log.Debugf("Opening MySQL connection")

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}
	db.SetMaxOpenConns(1)

	log.Debugf("Testing connection with ping")
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping mysql database: %w", err)
	}

	log.Debugf("MySQL connection opened successfully")
	return &MySQLConnector{db: db}, nil
}

// Query executes a SQL statement against MySQL
func (m *MySQLConnector) Query(ctx context.Context, statement string) (domain.Table, error) {
	rows, err := m.db.QueryContext(ctx, statement)
	if err != nil {
		return domain.Table{}, err
	}
	defer rows.Close()

	return scanTable(rows)
}

// Ping checks the server is reachable
func (m *MySQLConnector) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

// mysqlDSN converts a mysql:// URL (or a native DSN) plus options into a
// driver DSN. Date columns are parsed into time.Time.
func mysqlDSN(connectionString string, options map[string]string) (string, error) {
	var cfg *mysql.Config
	if strings.HasPrefix(connectionString, "mysql://") {
		parsedURL, err := url.Parse(connectionString)
		if err != nil {
			return "", fmt.Errorf("failed to parse mysql connection string: %w", err)
		}

		cfg = mysql.NewConfig()
		cfg.User = parsedURL.User.Username()
		cfg.Passwd, _ = parsedURL.User.Password()
		cfg.Net = "tcp"
		port := parsedURL.Port()
		if port == "" {
			port = "3306"
		}
		cfg.Addr = parsedURL.Hostname() + ":" + port
		cfg.DBName = strings.TrimPrefix(parsedURL.Path, "/")
		for key, values := range parsedURL.Query() {
			if len(values) > 0 {
				setMySQLParam(cfg, key, values[0])
			}
		}
	} else {
		parsed, err := mysql.ParseDSN(connectionString)
		if err != nil {
			return "", fmt.Errorf("failed to parse mysql connection string: %w", err)
		}
		cfg = parsed
	}

	cfg.ParseTime = true
	for key, value := range options {
		setMySQLParam(cfg, key, value)
	}
	return cfg.FormatDSN(), nil
}

func setMySQLParam(cfg *mysql.Config, key, value string) {
	if key == "parseTime" {
		return
	}
	if cfg.Params == nil {
		cfg.Params = make(map[string]string)
	}
	cfg.Params[key] = value
}

// Close closes the database connection
func (m *MySQLConnector) Close() error {
	if m.db != nil {
		log := logging.New("connector:mysql")
		log.Debugf("Closing MySQL connection pool")
		err := m.db.Close()
		if err != nil {
			log.Errorf("Error closing MySQL connection: %v", err)
		} else {
			log.Debugf("MySQL connection pool closed")
		}
		return err
	}
	return nil
}
