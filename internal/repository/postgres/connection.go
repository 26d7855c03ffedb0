package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver

	"github.com/dtroode/studyprofile-server/database"
)

const driverName = "pgx"

type Connection struct {
	*sql.DB
}

// NewConnection opens a pgx-backed pool, checks it and optionally applies migrations.
func NewConnection(ctx context.Context, dsn string, migrate bool) (*Connection, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, wrapErr("ping postgres", err)
	}

	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return &Connection{
		DB: db,
	}, nil
}

func (s *Connection) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *Connection) Ping(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("connection pool is nil")
	}
	if err := s.DB.PingContext(ctx); err != nil {
		return wrapErr("ping postgres", err)
	}
	return nil
}
