// Package invoiceservice manages business logic layer of invoices.
package invoiceservice

import (
	"context"
	"strings"
	"time"

	"github.com/go-petr/invoice-dash/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// User-facing messages carried on the returned form state.
const (
	MsgMissingFields      = "Missing Fields. Failed to Create Invoice."
	MsgUpdateInvalid      = "Failed to update Invoice."
	MsgCreateFailed       = "Failed to create invoice"
	MsgUpdateFailed       = "Failed to update Invoice"
	MsgDeleteFailed       = "Database Error: Failed to Delete Invoice"
	MsgDeleted            = "Deleted invoice"
	MsgSelectCustomer     = "Please select a customer."
	MsgAmountNotANumber   = "Please enter a valid amount."
	MsgAmountNotGreater   = "Please enter an amount greater than $0."
	msgSelectStatusPrefix = "Please select an invoice status: "
)

// MsgSelectStatus names the valid status set.
var MsgSelectStatus = msgSelectStatusPrefix + strings.Join(domain.Statuses, " or ") + "."

// Repo provides data access layer interface needed by invoice service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package invoiceservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateInvoiceParams) (domain.Invoice, error)
	Update(ctx context.Context, arg domain.UpdateInvoiceParams) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Invoice, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Invoice, error)
}

// Service facilitates invoice service layer logic.
type Service struct {
	repo Repo
	// invoicesPath is the presentation path whose cached views a successful
	// mutation invalidates and navigates to.
	invoicesPath string
}

// New returns invoice service struct to manage invoice business logic.
func New(r Repo, invoicesPath string) *Service {
	return &Service{
		repo:         r,
		invoicesPath: invoicesPath,
	}
}

// parseForm coerces and validates raw form values. It returns a field-keyed
// map of messages collecting every failure, never just the first one.
func parseForm(form domain.InvoiceFormValues) (string, int64, string, map[string][]string) {
	errs := map[string][]string{}

	if form.CustomerID == "" {
		errs["customerId"] = append(errs["customerId"], MsgSelectCustomer)
	}

	var amount int64

	d, err := decimal.NewFromString(strings.TrimSpace(form.Amount))
	switch {
	case err != nil:
		errs["amount"] = append(errs["amount"], MsgAmountNotANumber)
	case !d.IsPositive():
		errs["amount"] = append(errs["amount"], MsgAmountNotGreater)
	default:
		amount = d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	}

	if form.Status != domain.StatusPending && form.Status != domain.StatusPaid {
		errs["status"] = append(errs["status"], MsgSelectStatus)
	}

	if len(errs) > 0 {
		return "", 0, "", errs
	}

	return form.CustomerID, amount, form.Status, nil
}

// Create validates the submitted invoice form and inserts a new invoice
// dated today. On success the returned state carries the invalidate and
// navigate signals; on any failure it carries redisplay data only.
func (s *Service) Create(ctx context.Context, prev domain.InvoiceFormState, form domain.InvoiceFormValues) domain.InvoiceFormState {
	l := zerolog.Ctx(ctx)

	customerID, amount, status, errs := parseForm(form)
	if errs != nil {
		l.Info().Interface("errors", errs).Msg("invoice create validation failed")

		return domain.InvoiceFormState{
			Errors:  errs,
			Message: MsgMissingFields,
		}
	}

	arg := domain.CreateInvoiceParams{
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
		Date:       time.Now().UTC().Format(domain.DateLayout),
	}

	if _, err := s.repo.Create(ctx, arg); err != nil {
		return domain.InvoiceFormState{Message: MsgCreateFailed}
	}

	return domain.InvoiceFormState{
		Effects: []domain.Effect{
			domain.Invalidate(s.invoicesPath),
			domain.Navigate(s.invoicesPath),
		},
	}
}

// Update validates the submitted invoice form and updates the row matching
// the out-of-band id. A non-existent id is not distinguished from a no-op
// success.
func (s *Service) Update(ctx context.Context, id string, prev domain.InvoiceFormState, form domain.InvoiceFormValues) domain.InvoiceFormState {
	customerID, amount, status, errs := parseForm(form)
	if errs != nil {
		return domain.InvoiceFormState{
			Errors:  errs,
			Message: MsgUpdateInvalid,
		}
	}

	arg := domain.UpdateInvoiceParams{
		ID:         id,
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
	}

	if err := s.repo.Update(ctx, arg); err != nil {
		return domain.InvoiceFormState{Message: MsgUpdateFailed}
	}

	return domain.InvoiceFormState{
		Effects: []domain.Effect{
			domain.Invalidate(s.invoicesPath),
			domain.Navigate(s.invoicesPath),
		},
	}
}

// Delete removes the invoice with the given id. It always reports through
// the returned state, never through an error.
func (s *Service) Delete(ctx context.Context, id string) domain.InvoiceFormState {
	l := zerolog.Ctx(ctx)

	if err := s.repo.Delete(ctx, id); err != nil {
		l.Error().Err(err).Send()

		return domain.InvoiceFormState{Message: MsgDeleteFailed}
	}

	return domain.InvoiceFormState{
		Message: MsgDeleted,
		Effects: []domain.Effect{
			domain.Invalidate(s.invoicesPath),
		},
	}
}

// Get returns the invoice with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.Invoice, error) {
	invoice, err := s.repo.Get(ctx, id)
	if err != nil {
		return invoice, err
	}

	return invoice, nil
}

// List returns the requested page of invoices.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Invoice, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	invoices, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}
