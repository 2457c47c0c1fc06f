package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// Driver names a supported database
type Driver string

const (
	Postgres Driver = "postgres"
	MySQL    Driver = "mysql"
	SQLite   Driver = "sqlite"
)

// ParseDriver accepts a few common spellings of the driver names
func ParseDriver(name string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx", "pg":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("unsupported driver: %s (use postgres, mysql or sqlite)", name)
}

// Conn is a database connection that DDL can be applied to
type Conn interface {
	Driver() Driver
	Exec(ctx context.Context, stmt string) error
	// QueryStrings runs a query returning a single text column
	QueryStrings(ctx context.Context, query string, args ...interface{}) ([]string, error)
	Close() error
}

// Open connects to the database and checks it is reachable
func Open(ctx context.Context, driver Driver, dsn string) (Conn, error) {
	if dsn == "" {
		return nil, fmt.Errorf("no connection string for %s", driver)
	}
	switch driver {
	case Postgres:
		return openPostgres(ctx, dsn)
	case MySQL:
		return openSQL(ctx, MySQL, "mysql", dsn)
	case SQLite:
		return openSQL(ctx, SQLite, "sqlite", dsn)
	}
	return nil, fmt.Errorf("unsupported driver: %s", driver)
}

type pgConn struct {
	pool *pgxpool.Pool
}

func openPostgres(ctx context.Context, dsn string) (*pgConn, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return &pgConn{pool: pool}, nil
}

func (c *pgConn) Driver() Driver { return Postgres }

func (c *pgConn) Exec(ctx context.Context, stmt string) error {
	_, err := c.pool.Exec(ctx, stmt)
	return err
}

func (c *pgConn) QueryStrings(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (c *pgConn) Close() error {
	c.pool.Close()
	return nil
}

type sqlConn struct {
	driver Driver
	db     *sql.DB
}

func openSQL(ctx context.Context, driver Driver, driverName, dsn string) (*sqlConn, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == SQLite {
		// every connection to ":memory:" is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &sqlConn{driver: driver, db: db}, nil
}

func (c *sqlConn) Driver() Driver { return c.driver }

func (c *sqlConn) Exec(ctx context.Context, stmt string) error {
	_, err := c.db.ExecContext(ctx, stmt)
	return err
}

func (c *sqlConn) QueryStrings(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (c *sqlConn) Close() error {
	return c.db.Close()
}
