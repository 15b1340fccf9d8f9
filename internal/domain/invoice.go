// Package domain provides definitions of all entities.
package domain

import "errors"

var (
	// ErrInvoiceNotFound indicates that the invoice is not found.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrCustomerNotFound indicates that the customer for the invoice is not found.
	ErrCustomerNotFound = errors.New("customer not found")
)

// Invoice status values.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Statuses lists all valid invoice statuses.
var Statuses = []string{StatusPending, StatusPaid}

// DateLayout is the calendar date format invoices are stored and served with.
const DateLayout = "2006-01-02"

// Invoice holds a single billing record. Amount is stored in cents.
type Invoice struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

// CreateInvoiceParams is the input data to insert an invoice.
type CreateInvoiceParams struct {
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

// UpdateInvoiceParams is the input data to update an invoice in place.
type UpdateInvoiceParams struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
}
