package store

import (
	"context"
	"database/sql"
	"fmt"
	"pediacenter/pkg/model"

	"github.com/Masterminds/squirrel"
)

const TableName = "bookings"

const createTableSQL = `CREATE TABLE IF NOT EXISTS bookings (
	seq             INTEGER PRIMARY KEY,
	slot_start      TEXT NOT NULL,
	provider        TEXT NOT NULL,
	child_name      TEXT NOT NULL,
	status          TEXT NOT NULL,
	confirmation_id TEXT NOT NULL DEFAULT ''
)`

// insertBatchSize keeps each INSERT well under the 65535 bind parameter limit.
const insertBatchSize = 1000

var bookingColumns = []string{"seq", "slot_start", "provider", "child_name", "status", "confirmation_id"}

// PostgresStore keeps one row per booking; seq preserves list order.
type PostgresStore struct {
	db      *sql.DB
	builder squirrel.StatementBuilderType
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// EnsureSchema creates the bookings table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("%w: EnsureSchema: %v", ErrExecQuery, err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]*model.Booking, error) {
	query, args, err := s.builder.
		Select(bookingColumns...).
		From(TableName).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		var (
			seq int
			b   model.Booking
		)
		if err := rows.Scan(&seq, &b.SlotStart, &b.Provider, &b.ChildName, &b.Status, &b.ConfirmationID); err != nil {
			return nil, fmt.Errorf("%w: Load: %v", ErrScanRow, err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Load - iterate rows: %v", ErrExecQuery, err)
	}

	return prepare(bookings), nil
}

func (s *PostgresStore) Save(ctx context.Context, bookings []*model.Booking) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: Save - begin transaction: %v", ErrExecQuery, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	deleteQuery, deleteArgs, err := s.builder.Delete(TableName).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err = tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: Save - execute delete: %v", ErrExecQuery, err)
	}

	for start := 0; start < len(bookings); start += insertBatchSize {
		end := min(start+insertBatchSize, len(bookings))

		insert := s.builder.Insert(TableName).Columns(bookingColumns...)
		for i := start; i < end; i++ {
			b := bookings[i]
			insert = insert.Values(i, b.SlotStart, b.Provider, b.ChildName, b.Status, b.ConfirmationID)
		}

		insertQuery, insertArgs, buildErr := insert.ToSql()
		if buildErr != nil {
			err = fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, buildErr)
			return err
		}
		if _, err = tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("%w: Save - execute insert: %v", ErrExecQuery, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: Save - commit: %v", ErrExecQuery, err)
	}
	return nil
}
