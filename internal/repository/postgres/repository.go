package postgres

import (
	"context"
	"database/sql"

	"github.com/dtroode/studyprofile-server/internal/model"
)

var (
	_ model.ProfileStore = (*ProfileRepository)(nil)
	_ model.ProfileTx    = (*profileTx)(nil)
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries holds every statement; it runs on the pool or inside a transaction.
type queries struct {
	q querier
}

type ProfileRepository struct {
	queries
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{
		queries: queries{q: db.DB},
		db:      db,
	}
}

type profileTx struct {
	queries
}

// WithinTx runs fn in a database transaction that is committed only when fn
// returns nil.
func (r *ProfileRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx model.ProfileTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, &profileTx{queries{q: tx}}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("commit transaction", err)
	}
	committed = true
	return nil
}

func (r *ProfileRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
