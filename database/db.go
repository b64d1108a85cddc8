package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// ValidationError reports input the database refused: constraint
// violations and malformed values.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// classify turns Postgres data exceptions (class 22) and integrity
// violations (class 23) into ValidationError.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case "22", "23":
			return &ValidationError{Err: errors.New(pgErr.Message)}
		}
	}
	return err
}

type DB struct {
	Pool *pgxpool.Pool
	log  *logrus.Logger
}

func Connect(ctx context.Context, databaseURL string, logger *logrus.Logger) (*DB, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established")
	return &DB{Pool: pool, log: logger}, nil
}

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *DB) Close() {
	db.Pool.Close()
	db.log.Info("Database connection closed")
}

// timed logs an operation's duration at debug level when the returned
// func is called.
func (db *DB) timed(op string, fields logrus.Fields) func() {
	start := time.Now()
	return func() {
		db.log.WithFields(fields).WithField("duration", time.Since(start)).Debug(op)
	}
}
