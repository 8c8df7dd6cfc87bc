package models

// Invoice is the normalized view of an account.move record: a vendor
// bill or a customer invoice, depending on its move type.
type Invoice struct {
	ID                  int64         `json:"id"`
	Name                string        `json:"name"`
	AmountTotal         float64       `json:"amount_total"`
	AmountResidual      float64       `json:"amount_residual"`
	Date                string        `json:"date,omitempty"`
	DueDate             string        `json:"due_date,omitempty"`
	State               string        `json:"state,omitempty"`
	PaymentState        string        `json:"payment_state,omitempty"`
	PaymentStateDisplay string        `json:"payment_state_display,omitempty"`
	Partner             *Ref          `json:"partner,omitempty"`
	Currency            string        `json:"currency,omitempty"`
	Reference           string        `json:"reference,omitempty"`
	Origin              string        `json:"origin,omitempty"`
	Journal             *Ref          `json:"journal,omitempty"`
	MoveType            string        `json:"move_type,omitempty"`
	Lines               []InvoiceLine `json:"lines,omitempty"`
}

// InvoiceLine is one billed position of an invoice.
type InvoiceLine struct {
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	PriceUnit     float64 `json:"price_unit"`
	PriceSubtotal float64 `json:"price_subtotal"`
	PriceTotal    float64 `json:"price_total"`
	Product       *Ref    `json:"product,omitempty"`
	Account       *Ref    `json:"account,omitempty"`
}

// Payment is the normalized view of an account.payment record.
type Payment struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Amount               float64 `json:"amount"`
	Date                 string  `json:"date,omitempty"`
	State                string  `json:"state,omitempty"`
	PaymentType          string  `json:"payment_type,omitempty"`
	Partner              *Ref    `json:"partner,omitempty"`
	Journal              string  `json:"journal,omitempty"`
	Currency             string  `json:"currency,omitempty"`
	PaymentMethod        string  `json:"payment_method,omitempty"`
	ReconciledInvoiceIDs []int64 `json:"reconciled_invoice_ids,omitempty"`
}

// paymentStateDisplays maps the remote payment_state codes to readable
// labels.
var paymentStateDisplays = map[string]string{
	"not_paid":         "Not Paid",
	"in_payment":       "In Payment",
	"paid":             "Paid",
	"partial":          "Partially Paid",
	"reversed":         "Reversed",
	"invoicing_legacy": "Legacy",
}

// InvoiceFromRecord builds the normalized view of an account.move
// record.
func InvoiceFromRecord(rec Record) *Invoice {
	state := rec.Str("payment_state")
	display := paymentStateDisplays[state]
	if display == "" {
		display = state
	}

	inv := &Invoice{
		ID:                  rec.Int("id"),
		Name:                rec.Str("name"),
		AmountTotal:         rec.Float("amount_total"),
		AmountResidual:      rec.Float("amount_residual"),
		Date:                rec.Str("invoice_date"),
		DueDate:             rec.Str("invoice_date_due"),
		State:               rec.Str("state"),
		PaymentState:        state,
		PaymentStateDisplay: display,
		Partner:             rec.Ref("partner_id"),
		Reference:           rec.Str("ref"),
		Origin:              rec.Str("invoice_origin"),
		Journal:             rec.Ref("journal_id"),
		MoveType:            rec.Str("move_type"),
	}
	if currency := rec.Ref("currency_id"); currency != nil {
		inv.Currency = currency.Name
	}
	return inv
}

// InvoiceLineFromRecord builds one invoice line from an
// account.move.line record.
func InvoiceLineFromRecord(rec Record) InvoiceLine {
	return InvoiceLine{
		Name:          rec.Str("name"),
		Quantity:      rec.Float("quantity"),
		PriceUnit:     rec.Float("price_unit"),
		PriceSubtotal: rec.Float("price_subtotal"),
		PriceTotal:    rec.Float("price_total"),
		Product:       rec.Ref("product_id"),
		Account:       rec.Ref("account_id"),
	}
}

// PaymentFromRecord builds the normalized view of an account.payment
// record.
func PaymentFromRecord(rec Record) *Payment {
	p := &Payment{
		ID:          rec.Int("id"),
		Name:        rec.Str("name"),
		Amount:      rec.Float("amount"),
		Date:        rec.Str("date"),
		State:       rec.Str("state"),
		PaymentType: rec.Str("payment_type"),
		Partner:     rec.Ref("partner_id"),
	}
	if journal := rec.Ref("journal_id"); journal != nil {
		p.Journal = journal.Name
	}
	if currency := rec.Ref("currency_id"); currency != nil {
		p.Currency = currency.Name
	}
	if method := rec.Ref("payment_method_id"); method != nil {
		p.PaymentMethod = method.Name
	}
	for _, ref := range rec.Refs("reconciled_invoice_ids") {
		p.ReconciledInvoiceIDs = append(p.ReconciledInvoiceIDs, ref.ID)
	}
	return p
}
