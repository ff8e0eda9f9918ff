package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/01moynul/storefront-golang/internal/port"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the PostgreSQL implementation of port.Store.
type Store struct {
	pool *pgxpool.Pool // nil when bound to a transaction
	q    dbtx
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

// NewWithTx binds a Store to an existing transaction owned by the caller.
func NewWithTx(tx pgx.Tx) *Store {
	return &Store{q: tx}
}

func (s *Store) Products() port.ProductRepository { return &productRepository{q: s.q} }
func (s *Store) Users() port.UserRepository       { return &userRepository{q: s.q} }
func (s *Store) Orders() port.OrderRepository     { return &orderRepository{q: s.q} }

func (s *Store) InTx(ctx context.Context, fn func(tx port.Store) error) (txErr error) {
	// If we're already in a transaction (pool is nil), just use it
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		rollbackErr := tx.Rollback(ctx)
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
		}
	}()

	if err := fn(NewWithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return port.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", port.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
