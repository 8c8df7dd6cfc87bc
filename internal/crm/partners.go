package crm

import (
	"context"
	"log/slog"

	"github.com/isep-edu/crm-gateway/internal/models"
	"github.com/isep-edu/crm-gateway/internal/odoo"
)

const partnerModel = "res.partner"

var partnerFields = []string{
	"id", "name", "display_name", "email", "phone", "mobile", "website",
	"is_company", "customer_rank", "supplier_rank", "vat",
	"street", "street2", "city", "zip", "country_id", "state_id",
	"parent_id", "category_id", "create_date", "write_date", "active",
}

// PartnerCreate carries the fields of a new partner. Name is required.
type PartnerCreate struct {
	Name         string
	Email        string
	Phone        string
	Mobile       string
	Website      string
	IsCompany    bool
	VAT          string
	Street       string
	Street2      string
	City         string
	Zip          string
	CountryID    int64
	ParentID     int64
	CustomerRank int64
	SupplierRank int64
	CategoryIDs  []int64
}

// PartnerUpdate is a partial update; only non-nil fields are written.
type PartnerUpdate struct {
	Name         *string
	Email        *string
	Phone        *string
	Mobile       *string
	Website      *string
	IsCompany    *bool
	VAT          *string
	Street       *string
	Street2      *string
	City         *string
	Zip          *string
	CountryID    *int64
	CustomerRank *int64
	SupplierRank *int64
	CategoryIDs  []int64
}

// PartnerRepository performs contact/company operations against the
// remote server. Partner records carry no custom fields, so no field
// mapping applies.
type PartnerRepository struct {
	inv    odoo.Invoker
	logger *slog.Logger
	opts   Options
}

func NewPartnerRepository(inv odoo.Invoker, logger *slog.Logger, opts Options) *PartnerRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PartnerRepository{inv: inv, logger: logger, opts: opts}
}

// List returns partners matching the filter, ordered by name.
func (r *PartnerRepository) List(ctx context.Context, filter PartnerFilter, limit int) ([]*models.Partner, error) {
	domain := filter.Domain(nil)
	r.logger.Debug("Listing partners", "predicates", len(domain), "limit", limit)

	records, err := odoo.SearchRead(ctx, r.inv, partnerModel, domain.Tuples(), odoo.SearchOptions{
		Fields: partnerFields,
		Limit:  r.opts.clamp(limit),
		Order:  "name asc",
	})
	if err != nil {
		return nil, err
	}

	partners := make([]*models.Partner, 0, len(records))
	for _, raw := range records {
		partners = append(partners, models.PartnerFromRecord(models.Record(raw)))
	}
	return partners, nil
}

// Get returns one partner, or NotFoundError.
func (r *PartnerRepository) Get(ctx context.Context, id int64) (*models.Partner, error) {
	domain := Domain{{Field: "id", Op: "=", Value: id}}
	records, err := odoo.SearchRead(ctx, r.inv, partnerModel, domain.Tuples(), odoo.SearchOptions{
		Fields: partnerFields,
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &odoo.NotFoundError{Model: partnerModel, ID: id}
	}

	return models.PartnerFromRecord(models.Record(records[0])), nil
}

// Create validates required fields locally, then creates the partner
// and returns its id.
func (r *PartnerRepository) Create(ctx context.Context, in PartnerCreate) (int64, error) {
	if in.Name == "" {
		return 0, &odoo.ValidationError{Field: "name", Reason: "is required"}
	}

	values := map[string]any{
		"name":       in.Name,
		"is_company": in.IsCompany,
	}
	setIfString(values, "email", in.Email)
	setIfString(values, "phone", in.Phone)
	setIfString(values, "mobile", in.Mobile)
	setIfString(values, "website", in.Website)
	setIfString(values, "vat", in.VAT)
	setIfString(values, "street", in.Street)
	setIfString(values, "street2", in.Street2)
	setIfString(values, "city", in.City)
	setIfString(values, "zip", in.Zip)
	setIfInt(values, "country_id", in.CountryID)
	setIfInt(values, "parent_id", in.ParentID)
	setIfInt(values, "customer_rank", in.CustomerRank)
	setIfInt(values, "supplier_rank", in.SupplierRank)
	if len(in.CategoryIDs) > 0 {
		values["category_id"] = many2manySet(in.CategoryIDs)
	}

	id, err := odoo.Create(ctx, r.inv, partnerModel, values)
	if err != nil {
		return 0, err
	}

	r.logger.Info("Created partner", "id", id, "name", in.Name)
	return id, nil
}

// Update writes the supplied fields and returns the re-read record.
func (r *PartnerRepository) Update(ctx context.Context, id int64, in PartnerUpdate) (*models.Partner, error) {
	values := map[string]any{}
	setPtrString(values, "name", in.Name)
	setPtrString(values, "email", in.Email)
	setPtrString(values, "phone", in.Phone)
	setPtrString(values, "mobile", in.Mobile)
	setPtrString(values, "website", in.Website)
	setPtrString(values, "vat", in.VAT)
	setPtrString(values, "street", in.Street)
	setPtrString(values, "street2", in.Street2)
	setPtrString(values, "city", in.City)
	setPtrString(values, "zip", in.Zip)
	setPtrInt(values, "country_id", in.CountryID)
	setPtrInt(values, "customer_rank", in.CustomerRank)
	setPtrInt(values, "supplier_rank", in.SupplierRank)
	if in.IsCompany != nil {
		values["is_company"] = *in.IsCompany
	}
	if len(in.CategoryIDs) > 0 {
		values["category_id"] = many2manySet(in.CategoryIDs)
	}

	if len(values) == 0 {
		return nil, &odoo.ValidationError{Reason: "no fields provided for update"}
	}

	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := odoo.Write(ctx, r.inv, partnerModel, []int64{id}, values); err != nil {
		return nil, err
	}

	r.logger.Info("Updated partner", "id", id, "fields", len(values))
	return r.Get(ctx, id)
}

// many2manySet renders the replace-all write command for a
// many-to-many field.
func many2manySet(ids []int64) []any {
	list := make([]any, len(ids))
	for i, id := range ids {
		list[i] = id
	}
	return []any{[]any{6, 0, list}}
}
