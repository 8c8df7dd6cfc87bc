package crm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isep-edu/crm-gateway/internal/odoo"
)

func invoiceRecord(id int64, paymentState string) map[string]any {
	return map[string]any{
		"id":              id,
		"name":            "INV/2026/0042",
		"amount_total":    float64(9500),
		"amount_residual": float64(4500),
		"invoice_date":    "2026-03-01",
		"payment_state":   paymentState,
		"partner_id":      []any{int64(9), "Acme Corp"},
		"currency_id":     []any{int64(1), "EUR"},
	}
}

func TestAccountingVendorBills(t *testing.T) {
	inv := &scriptedInvoker{t: t, replies: []any{
		[]any{invoiceRecord(42, "partial")},
	}}
	repo := NewAccountingRepository(inv, nil, testOptions())

	bills, err := repo.VendorBills(context.Background(), InvoiceFilter{PartnerID: 9, Pending: true}, 0)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "INV/2026/0042", bills[0].Name)
	assert.Equal(t, "Partially Paid", bills[0].PaymentStateDisplay)
	assert.Equal(t, "EUR", bills[0].Currency)

	call := inv.calls[0]
	assert.Equal(t, "account.move", call.model)
	assert.Equal(t, []any{[]any{
		[]any{"move_type", "=", "in_invoice"},
		[]any{"partner_id", "=", int64(9)},
		[]any{"payment_state", "!=", "paid"},
	}}, call.args)
	assert.Equal(t, "invoice_date desc", call.kwargs["order"])
}

func TestAccountingCustomerInvoices(t *testing.T) {
	inv := &scriptedInvoker{t: t, replies: []any{[]any{}}}
	repo := NewAccountingRepository(inv, nil, testOptions())

	invoices, err := repo.CustomerInvoices(context.Background(), InvoiceFilter{DateFrom: "2026-01-01"}, 25)
	require.NoError(t, err)
	assert.Empty(t, invoices)

	call := inv.calls[0]
	assert.Equal(t, []any{[]any{
		[]any{"move_type", "=", "out_invoice"},
		[]any{"invoice_date", ">=", "2026-01-01"},
	}}, call.args)
	assert.Equal(t, 25, call.kwargs["limit"])
}

func TestAccountingInvoiceDetails(t *testing.T) {
	inv := &scriptedInvoker{t: t, replies: []any{
		[]any{invoiceRecord(42, "not_paid")},
		[]any{map[string]any{
			"name":           "MBA tuition",
			"quantity":       float64(1),
			"price_unit":     float64(9500),
			"price_subtotal": float64(9500),
			"product_id":     []any{int64(15), "MBA"},
		}},
	}}
	repo := NewAccountingRepository(inv, nil, testOptions())

	invoice, err := repo.InvoiceDetails(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), invoice.ID)
	require.Len(t, invoice.Lines, 1)
	assert.Equal(t, "MBA tuition", invoice.Lines[0].Name)
	assert.Equal(t, float64(9500), invoice.Lines[0].PriceUnit)

	lines := inv.calls[1]
	assert.Equal(t, "account.move.line", lines.model)
	assert.Equal(t, []any{[]any{
		[]any{"move_id", "=", int64(42)},
		[]any{"exclude_from_invoice_tab", "=", false},
	}}, lines.args)
}

func TestAccountingInvoiceDetailsNotFound(t *testing.T) {
	inv := &scriptedInvoker{t: t, replies: []any{[]any{}}}
	repo := NewAccountingRepository(inv, nil, testOptions())

	_, err := repo.InvoiceDetails(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, odoo.IsNotFound(err))
	assert.Len(t, inv.calls, 1, "line read must not follow a missing header")
}

func paymentRecord(id int64, invoiceIDs any) map[string]any {
	return map[string]any{
		"id":                     id,
		"name":                   "PAY/2026/0007",
		"amount":                 float64(4500),
		"date":                   "2026-03-10",
		"payment_type":           "inbound",
		"partner_id":             []any{int64(9), "Acme Corp"},
		"journal_id":             []any{int64(3), "Bank"},
		"reconciled_invoice_ids": invoiceIDs,
	}
}

func TestAccountingPayments(t *testing.T) {
	inv := &scriptedInvoker{t: t, replies: []any{
		[]any{paymentRecord(7, []any{int64(42)})},
	}}
	repo := NewAccountingRepository(inv, nil, testOptions())

	payments, err := repo.Payments(context.Background(), PaymentFilter{PartnerID: 9}, 0)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "Bank", payments[0].Journal)
	assert.Equal(t, []int64{42}, payments[0].ReconciledInvoiceIDs)

	call := inv.calls[0]
	assert.Equal(t, "account.payment", call.model)
	assert.Equal(t, []any{[]any{[]any{"partner_id", "=", int64(9)}}}, call.args)
	assert.Equal(t, "date desc", call.kwargs["order"])
}

func TestAccountingPaymentsInvoiceFilter(t *testing.T) {
	inv := &scriptedInvoker{t: t, replies: []any{
		[]any{
			paymentRecord(7, []any{int64(42)}),
			paymentRecord(8, []any{int64(99)}),
			paymentRecord(9, false),
		},
	}}
	repo := NewAccountingRepository(inv, nil, testOptions())

	payments, err := repo.Payments(context.Background(), PaymentFilter{InvoiceID: 42}, 0)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(7), payments[0].ID)
}
