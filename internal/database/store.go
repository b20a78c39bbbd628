package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxStarter is satisfied by *pgxpool.Pool and *pgx.Conn
type TxStarter interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is Queries bound to a pool that can also run several queries in one
// transaction
type Store struct {
	*Queries
	pool TxStarter
}

func NewStore(pool TxStarter) *Store {
	return &Store{
		Queries: New(pool),
		pool:    pool,
	}
}

// ExecTx runs fn with queries bound to a single transaction. The transaction
// is committed only when fn returns nil.
func (s *Store) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction, %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(s.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RelinkCfHandle moves the user to a different codeforces handle. Solved
// problems of the previous handle are dropped and the sync stamp cleared, so
// nothing of the old account is served until the next sync.
func (s *Store) RelinkCfHandle(ctx context.Context, arg RelinkUserCfHandleParams) (User, error) {
	var user User
	err := s.ExecTx(ctx, func(q *Queries) error {
		if _, err := q.DeleteSolvedProblemsByUser(ctx, arg.ID); err != nil {
			return err
		}
		var err error
		user, err = q.RelinkUserCfHandle(ctx, arg)
		return err
	})
	return user, err
}
