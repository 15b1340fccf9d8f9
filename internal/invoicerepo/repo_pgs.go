// Package invoicerepo manages repository layer of invoices.
package invoicerepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-petr/invoice-dash/internal/domain"
	"github.com/go-petr/invoice-dash/pkg/dbpkg"
	"github.com/go-petr/invoice-dash/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates invoice repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns invoice RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
	invoices (customer_id, amount, status, date)
VALUES
	($1, $2, $3, $4)
RETURNING id, customer_id, amount, status, date
`

// Create inserts the invoice and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateInvoiceParams) (domain.Invoice, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.CustomerID,
		arg.Amount,
		arg.Status,
		arg.Date,
	)

	var (
		inv  domain.Invoice
		date time.Time
	)

	err := row.Scan(
		&inv.ID,
		&inv.CustomerID,
		&inv.Amount,
		&inv.Status,
		&date,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "invoices_customer_id_fkey" {
				return inv, domain.ErrCustomerNotFound
			}
		}

		return inv, errorspkg.ErrInternal
	}

	inv.Date = date.Format(domain.DateLayout)

	return inv, nil
}

const updateQuery = `
UPDATE invoices
SET customer_id = $1, amount = $2, status = $3
WHERE id = $4
`

// Update sets customer, amount and status for the row matching the given id.
// A missing id is not distinguished from a no-op success.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateInvoiceParams) error {
	l := zerolog.Ctx(ctx)

	_, err := r.db.ExecContext(ctx, updateQuery,
		arg.CustomerID,
		arg.Amount,
		arg.Status,
		arg.ID,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "invoices_customer_id_fkey" {
				return domain.ErrCustomerNotFound
			}
		}

		return errorspkg.ErrInternal
	}

	return nil
}

const deleteQuery = `
DELETE FROM invoices
WHERE id = $1
`

// Delete removes the invoice with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteQuery, id)
	return err
}

const getQuery = `
SELECT
	id, customer_id, amount, status, date
FROM invoices
WHERE id = $1
`

// Get returns the invoice with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Invoice, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var (
		inv  domain.Invoice
		date time.Time
	)

	err := row.Scan(
		&inv.ID,
		&inv.CustomerID,
		&inv.Amount,
		&inv.Status,
		&date,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return inv, domain.ErrInvoiceNotFound
		}

		return inv, errorspkg.ErrInternal
	}

	inv.Date = date.Format(domain.DateLayout)

	return inv, nil
}

const listQuery = `
SELECT
	id, customer_id, amount, status, date
FROM invoices
ORDER BY date DESC, id
LIMIT $1 OFFSET $2
`

// List returns the specified page of invoices, newest first.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Invoice, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Invoice{}

	for rows.Next() {
		var (
			inv  domain.Invoice
			date time.Time
		)

		if err := rows.Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &inv.Status, &date); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		inv.Date = date.Format(domain.DateLayout)

		items = append(items, inv)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
