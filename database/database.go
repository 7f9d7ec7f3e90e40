// Package database applies split statements to a database, one at a time
// and in source order. It never inspects statement semantics beyond the
// classifier's IsEmpty; the server is the judge of validity.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/go-sql-driver/mysql"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sqldef/sqlsplit/parser"
)

type Config struct {
	Type     string // mysql, postgres, sqlite3, mssql
	DbName   string
	User     string
	Password string
	Host     string
	Port     int
	Socket   string
}

// Open opens a database handle for the config. For sqlite3, DbName is the
// file path and the connection settings are ignored.
func Open(config Config) (*sql.DB, error) {
	driver, dsn, err := buildDSN(config)
	if err != nil {
		return nil, err
	}
	return sql.Open(driver, dsn)
}

func buildDSN(config Config) (driver string, dsn string, err error) {
	switch config.Type {
	case "mysql":
		return "mysql", mysqlBuildDSN(config), nil
	case "postgres":
		return "postgres", postgresBuildDSN(config), nil
	case "sqlite3":
		return "sqlite3", config.DbName, nil
	case "mssql":
		return "sqlserver", mssqlBuildDSN(config), nil
	default:
		return "", "", fmt.Errorf("unknown database type: %s", config.Type)
	}
}

func mysqlBuildDSN(config Config) string {
	c := mysql.NewConfig()
	c.User = config.User
	c.Passwd = config.Password
	c.DBName = config.DbName
	if config.Socket == "" {
		c.Net = "tcp"
		c.Addr = fmt.Sprintf("%s:%d", config.Host, config.Port)
	} else {
		c.Net = "unix"
		c.Addr = config.Socket
	}
	return c.FormatDSN()
}

func postgresBuildDSN(config Config) string {
	host := config.Socket
	if host == "" {
		host = fmt.Sprintf("%s:%d", config.Host, config.Port)
	}

	options := ""
	if sslmode, ok := os.LookupEnv("PGSSLMODE"); ok {
		options = "?sslmode=" + url.QueryEscape(sslmode)
	}

	return fmt.Sprintf("postgres://%s@%s/%s%s",
		url.UserPassword(config.User, config.Password), host, config.DbName, options)
}

func mssqlBuildDSN(config Config) string {
	query := url.Values{}
	query.Add("database", config.DbName)
	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(config.User, config.Password),
		Host:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// RunStatements executes every non-empty statement from the stream in one
// transaction, in order. The first failure rolls everything back and is
// reported with the statement's source position.
func RunStatements(ctx context.Context, db *sql.DB, stream *parser.StatementStream) error {
	transaction, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for {
		stmt, ok := stream.Next()
		if !ok {
			break
		}
		if stmt.IsEmpty() {
			continue
		}
		start := stmt.Tokens()[0].Start
		slog.Debug("executing statement", "line", start.Line, "column", start.Column)
		if _, err := transaction.ExecContext(ctx, stmt.Text()); err != nil {
			transaction.Rollback()
			return fmt.Errorf("statement at line %d, column %d: %w", start.Line, start.Column, err)
		}
	}
	return transaction.Commit()
}
