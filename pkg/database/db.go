package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Config struct {
	DSN            string
	MaxConns       int
	Timeout        time.Duration
	TimeZone       string
	ClientEncoding string
}

// Connect opens a *sqlx.DB and verifies connectivity with a ping
func Connect(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	maxConns := cfg.MaxConns
	if maxConns == 0 {
		maxConns = 5
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	// Apply session-level settings if provided
	if cfg.TimeZone != "" || cfg.ClientEncoding != "" {
		connCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cfg.TimeZone != "" {
			if _, err := db.ExecContext(connCtx, "SET TIME ZONE "+quoteLiteral(cfg.TimeZone)); err != nil {
				db.Close()
				return nil, fmt.Errorf("set time zone: %w", err)
			}
		}
		if cfg.ClientEncoding != "" {
			if _, err := db.ExecContext(connCtx, "SET client_encoding = "+quoteLiteral(cfg.ClientEncoding)); err != nil {
				db.Close()
				return nil, fmt.Errorf("set client_encoding: %w", err)
			}
		}
	}
	return db, nil
}

// quoteLiteral escapes single quotes and wraps the value in single quotes
// so it can be used safely in SET ... statements which don't accept
// parameter placeholders for the right-hand side.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
