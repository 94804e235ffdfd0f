package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq" // Import postgres driver
)

const createTeamsTable = `
	CREATE TABLE IF NOT EXISTS teams (
		team_id SERIAL PRIMARY KEY,
		team_name VARCHAR(100) NOT NULL,
		team_logo_url VARCHAR(255),
		leader_in_game_name VARCHAR(100),
		leader_real_name VARCHAR(100),
		contact_number VARCHAR(20),
		email VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

const createPlayersTable = `
	CREATE TABLE IF NOT EXISTS players (
		player_id SERIAL PRIMARY KEY,
		team_id INT NOT NULL REFERENCES teams (team_id) ON DELETE CASCADE,
		player_slot SMALLINT NOT NULL,
		in_game_name VARCHAR(100),
		bgmi_id VARCHAR(50)
	)`

// Connect opens the pooled database handle. The connection itself is lazy:
// a store that is down at startup must not prevent the service from running,
// so no ping happens here.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureSchema creates the teams and players tables if they do not exist yet,
// using a single borrowed connection. Failure is logged and swallowed: the
// process keeps serving, and requests against a missing table surface as
// ordinary store errors.
func EnsureSchema(ctx context.Context, db *sql.DB, logger *slog.Logger) {
	conn, err := db.Conn(ctx)
	if err != nil {
		logger.Error("schema init: failed to acquire connection", slog.Any("error", err))
		return
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("schema init: failed to release connection", slog.Any("error", closeErr))
		}
	}()

	for _, stmt := range []string{createTeamsTable, createPlayersTable} {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			logger.Error("schema init failed", slog.Any("error", err))
			return
		}
	}

	logger.Info("database schema ensured")
}
