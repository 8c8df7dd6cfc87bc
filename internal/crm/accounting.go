package crm

import (
	"context"
	"log/slog"
	"slices"

	"github.com/isep-edu/crm-gateway/internal/models"
	"github.com/isep-edu/crm-gateway/internal/odoo"
)

const (
	moveModel     = "account.move"
	moveLineModel = "account.move.line"
	paymentModel  = "account.payment"
)

// Invoice move types
const (
	MoveTypeVendorBill      = "in_invoice"
	MoveTypeCustomerInvoice = "out_invoice"
)

var invoiceListFields = []string{
	"id", "name", "amount_total", "amount_residual",
	"invoice_date", "invoice_date_due", "state", "payment_state",
	"partner_id", "currency_id",
}

var invoiceDetailFields = append(invoiceListFields,
	"ref", "narration", "invoice_origin", "journal_id", "move_type",
)

// InvoiceFilter is the sparse filter-parameter object for invoice
// listing. Pending narrows to invoices that are not fully paid.
type InvoiceFilter struct {
	PartnerID int64
	Pending   bool
	DateFrom  string
	DateTo    string
}

func (f InvoiceFilter) domain(moveType string) Domain {
	d := Domain{{Field: "move_type", Op: "=", Value: moveType}}
	if f.PartnerID != 0 {
		d.add("partner_id", "=", f.PartnerID)
	}
	if f.Pending {
		d.add("payment_state", "!=", "paid")
	}
	if f.DateFrom != "" {
		d.add("invoice_date", ">=", f.DateFrom)
	}
	if f.DateTo != "" {
		d.add("invoice_date", "<=", f.DateTo)
	}
	return d
}

// PaymentFilter is the sparse filter-parameter object for payment
// listing. InvoiceID narrows to payments reconciled against one
// invoice; the relation is not queryable in the remote domain, so it
// filters the fetched page locally.
type PaymentFilter struct {
	PartnerID int64
	DateFrom  string
	DateTo    string
	InvoiceID int64
}

func (f PaymentFilter) Domain() Domain {
	var d Domain
	if f.PartnerID != 0 {
		d.add("partner_id", "=", f.PartnerID)
	}
	if f.DateFrom != "" {
		d.add("date", ">=", f.DateFrom)
	}
	if f.DateTo != "" {
		d.add("date", "<=", f.DateTo)
	}
	return d
}

// AccountingRepository serves the read-only accounting views: vendor
// bills, customer invoices, and payments. Accounting records carry no
// custom fields, so no field mapping applies.
type AccountingRepository struct {
	inv    odoo.Invoker
	logger *slog.Logger
	opts   Options
}

func NewAccountingRepository(inv odoo.Invoker, logger *slog.Logger, opts Options) *AccountingRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountingRepository{inv: inv, logger: logger, opts: opts}
}

// VendorBills returns supplier invoices matching the filter, newest
// first.
func (r *AccountingRepository) VendorBills(ctx context.Context, filter InvoiceFilter, limit int) ([]*models.Invoice, error) {
	return r.listInvoices(ctx, filter.domain(MoveTypeVendorBill), limit)
}

// CustomerInvoices returns customer invoices matching the filter,
// newest first.
func (r *AccountingRepository) CustomerInvoices(ctx context.Context, filter InvoiceFilter, limit int) ([]*models.Invoice, error) {
	return r.listInvoices(ctx, filter.domain(MoveTypeCustomerInvoice), limit)
}

func (r *AccountingRepository) listInvoices(ctx context.Context, domain Domain, limit int) ([]*models.Invoice, error) {
	r.logger.Debug("Listing invoices", "predicates", len(domain), "limit", limit)

	records, err := odoo.SearchRead(ctx, r.inv, moveModel, domain.Tuples(), odoo.SearchOptions{
		Fields: invoiceListFields,
		Limit:  r.opts.clamp(limit),
		Order:  "invoice_date desc",
	})
	if err != nil {
		return nil, err
	}

	invoices := make([]*models.Invoice, 0, len(records))
	for _, raw := range records {
		invoices = append(invoices, models.InvoiceFromRecord(models.Record(raw)))
	}
	return invoices, nil
}

// InvoiceDetails returns one invoice with its line items, or
// NotFoundError.
func (r *AccountingRepository) InvoiceDetails(ctx context.Context, id int64) (*models.Invoice, error) {
	domain := Domain{{Field: "id", Op: "=", Value: id}}
	records, err := odoo.SearchRead(ctx, r.inv, moveModel, domain.Tuples(), odoo.SearchOptions{
		Fields: invoiceDetailFields,
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &odoo.NotFoundError{Model: moveModel, ID: id}
	}

	invoice := models.InvoiceFromRecord(models.Record(records[0]))

	lineDomain := Domain{
		{Field: "move_id", Op: "=", Value: id},
		{Field: "exclude_from_invoice_tab", Op: "=", Value: false},
	}
	lineRecords, err := odoo.SearchRead(ctx, r.inv, moveLineModel, lineDomain.Tuples(), odoo.SearchOptions{
		Fields: []string{"name", "quantity", "price_unit", "price_subtotal", "price_total", "product_id", "account_id"},
	})
	if err != nil {
		return nil, err
	}
	for _, raw := range lineRecords {
		invoice.Lines = append(invoice.Lines, models.InvoiceLineFromRecord(models.Record(raw)))
	}

	return invoice, nil
}

// Payments returns payments matching the filter, newest first.
func (r *AccountingRepository) Payments(ctx context.Context, filter PaymentFilter, limit int) ([]*models.Payment, error) {
	domain := filter.Domain()
	r.logger.Debug("Listing payments", "predicates", len(domain), "limit", limit)

	records, err := odoo.SearchRead(ctx, r.inv, paymentModel, domain.Tuples(), odoo.SearchOptions{
		Fields: []string{
			"id", "name", "amount", "date", "state",
			"payment_type", "partner_id", "journal_id",
			"currency_id", "reconciled_invoice_ids", "payment_method_id",
		},
		Limit: r.opts.clamp(limit),
		Order: "date desc",
	})
	if err != nil {
		return nil, err
	}

	payments := make([]*models.Payment, 0, len(records))
	for _, raw := range records {
		p := models.PaymentFromRecord(models.Record(raw))
		if filter.InvoiceID != 0 && !slices.Contains(p.ReconciledInvoiceIDs, filter.InvoiceID) {
			continue
		}
		payments = append(payments, p)
	}
	return payments, nil
}
