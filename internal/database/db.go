package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
)

// Open connects to MySQL or Postgres, depending on driver, and verifies
// the connection.  Queries are traced through otelsql.
func Open(driver, user, pass, host, port, name string) (*sqlx.DB, error) {
	dsn, err := dataSourceName(driver, user, pass, host, port, name)
	if err != nil {
		return nil, err
	}

	sqlDB, err := otelsql.Open(driver, dsn, otelsql.WithDBName(name))
	if err != nil {
		return nil, err
	}
	db := sqlx.NewDb(sqlDB, driver)

	// Pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func dataSourceName(driver, user, pass, host, port, name string) (string, error) {
	switch driver {
	case "mysql":
		auth := user
		if pass != "" {
			auth = fmt.Sprintf("%s:%s", user, pass)
		}
		// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
		return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			auth, host, port, name), nil
	case "postgres":
		u := url.URL{
			Scheme:   "postgres",
			Host:     host + ":" + port,
			Path:     "/" + name,
			RawQuery: "sslmode=disable",
		}
		if pass != "" {
			u.User = url.UserPassword(user, pass)
		} else {
			u.User = url.User(user)
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported sql driver %q", driver)
	}
}
