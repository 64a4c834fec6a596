// Package transactionrepo manages repository layer of ledger transactions.
package transactionrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/moabank/bankbook/internal/accountrepo"
	"github.com/moabank/bankbook/internal/domain"
	"github.com/moabank/bankbook/pkg/dbpkg"
	"github.com/moabank/bankbook/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS scoped to an already open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const transactionColumns = `id, account_id, amount, io_type, method, balance_after, description, created_at`

func scanTransaction(row *sql.Row) (domain.Transaction, error) {
	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Amount,
		&t.IOType,
		&t.Method,
		&t.BalanceAfter,
		&t.Description,
		&t.CreatedAt,
	)

	return t, err
}

const createQuery = `
INSERT INTO
    transactions (account_id, amount, io_type, method, balance_after, description, created_at)
VALUES
    ($1, $2, $3, $4, $5, $6, COALESCE($7, now()))
RETURNING ` + transactionColumns

// Create appends a ledger entry carrying the balance snapshot and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.PostTransactionParams, balanceAfter decimal.Decimal) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	createdAt := sql.NullTime{Time: arg.CreatedAt, Valid: !arg.CreatedAt.IsZero()}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.Amount,
		arg.IOType,
		arg.Method,
		balanceAfter,
		arg.Description,
		createdAt,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransaction(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

// List returns the owner's transactions matching the given filters, newest first.
func (r *RepoPGS) List(ctx context.Context, ownerID uuid.UUID, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var (
		sb   strings.Builder
		args []interface{}
	)

	sb.WriteString(`
SELECT t.id, t.account_id, t.amount, t.io_type, t.method, t.balance_after, t.description, t.created_at
FROM transactions t
JOIN accounts a ON a.id = t.account_id
WHERE a.owner_id = $1`)
	args = append(args, ownerID)

	addFilter := func(clause string, v interface{}) {
		args = append(args, v)
		fmt.Fprintf(&sb, " AND "+clause, len(args))
	}

	if arg.AccountID.Valid {
		addFilter("t.account_id = $%d", arg.AccountID.UUID)
	}

	if arg.IOType != "" {
		addFilter("t.io_type = $%d", arg.IOType)
	}

	if arg.Method != "" {
		addFilter("t.method = $%d", arg.Method)
	}

	if arg.MinAmount.Valid {
		addFilter("t.amount >= $%d", arg.MinAmount.Decimal)
	}

	if arg.MaxAmount.Valid {
		addFilter("t.amount <= $%d", arg.MaxAmount.Decimal)
	}

	if !arg.From.IsZero() {
		addFilter("t.created_at >= $%d", arg.From)
	}

	if !arg.To.IsZero() {
		addFilter("t.created_at <= $%d", arg.To)
	}

	sb.WriteString(" ORDER BY t.created_at DESC")

	args = append(args, arg.Limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))

	args = append(args, arg.Offset)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Amount,
			&t.IOType,
			&t.Method,
			&t.BalanceAfter,
			&t.Description,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateAnnotationQuery = `
UPDATE transactions
SET description = COALESCE($1, description),
    method = COALESCE(NULLIF($2, ''), method)
WHERE id = $3
RETURNING ` + transactionColumns

// UpdateAnnotation changes the description and method of a transaction.
// Amount, io_type, balance_after and account are never touched; the ledger
// stays append-only with respect to its financial fields.
func (r *RepoPGS) UpdateAnnotation(ctx context.Context, arg domain.UpdateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateAnnotationQuery,
		arg.Description,
		string(arg.Method),
		arg.ID,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

// PostTransaction applies one deposit or withdrawal to exactly one account
// and appends the corresponding ledger entry.
//
// It locks the account row, re-reads the balance under the lock, validates
// the withdrawal against it, and persists the new balance together with the
// new entry inside a single database transaction. Concurrent posts against
// the same account serialize on the row lock; posts against different
// accounts do not block each other.
func (r *RepoPGS) PostTransaction(ctx context.Context, arg domain.PostTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var result domain.Transaction

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := NewTxRepoPGS(tx)

	account, err := accountRepo.GetForUpdate(ctx, arg.AccountID)
	if err != nil {
		return result, err
	}

	if arg.IOType == domain.Withdraw && account.Balance.LessThan(arg.Amount) {
		l.Info().
			Str("account_id", arg.AccountID.String()).
			Str("balance", account.Balance.String()).
			Str("amount", arg.Amount.String()).
			Msg("withdrawal exceeds balance")

		return result, domain.ErrInsufficientBalance
	}

	if arg.IOType == domain.Deposit {
		account.Balance = account.Balance.Add(arg.Amount)
	} else {
		account.Balance = account.Balance.Sub(arg.Amount)
	}

	if _, err := accountRepo.Update(ctx, account); err != nil {
		return result, err
	}

	result, err = transactionRepo.Create(ctx, arg, account.Balance)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return result, nil
}
