package crm

import (
	"context"
	"log/slog"

	"github.com/isep-edu/crm-gateway/internal/models"
	"github.com/isep-edu/crm-gateway/internal/odoo"
)

const (
	leadModel     = "crm.lead"
	activityModel = "mail.activity"
)

// Options tunes behavior shared by the entity repositories. The
// effective list cap is the lesser of the caller's limit and MaxLimit;
// the server may still apply its own cap on top.
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

func (o Options) clamp(limit int) int {
	if limit <= 0 {
		limit = o.DefaultLimit
	}
	if limit <= 0 {
		limit = 100
	}
	if o.MaxLimit > 0 && limit > o.MaxLimit {
		limit = o.MaxLimit
	}
	return limit
}

// Generic field names requested on list reads. Custom fields are
// translated to their remote names at call time.
var leadListFields = []string{
	"id", "name", "type", "contact_name", "partner_name", "email_from",
	"phone", "mobile", "expected_revenue", "probability", "priority",
	"create_date", "write_date", "date_deadline", "stage_id", "team_id",
	"user_id", "partner_id", "description",
	"program_id", "canal_contacto", "programa_interes", "fecha_firma",
	"progress", "mautic_export", "mautic_id",
	"gr_source", "gr_campaingn", "gr_term",
}

// Extra fields requested on single-record reads.
var leadDetailFields = append(leadListFields,
	"website", "function", "street", "street2", "city", "zip",
	"date_open", "date_closed", "date_last_stage_update", "active",
	"color", "duracion_convenio", "correo_existe", "correo_revisado",
	"bool_interes",
)

// LeadCreate carries the fields of a new lead. Name is required; zero
// values are omitted from the remote payload.
type LeadCreate struct {
	Name            string
	ContactName     string
	EmailFrom       string
	Phone           string
	PartnerName     string
	Description     string
	TeamID          int64
	UserID          int64
	StageID         int64
	ExpectedRevenue float64
	Probability     float64
	ProgramID       int64
	CanalContacto   string
	ProgramaInteres string
}

// LeadUpdate is a partial update; only non-nil fields are written.
type LeadUpdate struct {
	Name            *string
	ContactName     *string
	EmailFrom       *string
	Phone           *string
	Description     *string
	StageID         *int64
	UserID          *int64
	TeamID          *int64
	ExpectedRevenue *float64
	Probability     *float64
	Priority        *string
	ProgramID       *int64
	CanalContacto   *string
	ProgramaInteres *string
	Progress        *float64
}

// ConvertOptions are the optional overrides applied during the
// lead→opportunity transition; zero values retain the existing record
// values.
type ConvertOptions struct {
	PartnerID int64
	UserID    int64
	TeamID    int64
}

// LeadRepository performs lead/opportunity operations against the
// remote server. It is stateless and safe for concurrent use.
type LeadRepository struct {
	inv    odoo.Invoker
	fields *FieldMap
	logger *slog.Logger
	opts   Options
}

func NewLeadRepository(inv odoo.Invoker, fields *FieldMap, logger *slog.Logger, opts Options) *LeadRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeadRepository{inv: inv, fields: fields, logger: logger, opts: opts}
}

// List returns leads matching the filter, newest first. An empty
// result is not an error.
func (r *LeadRepository) List(ctx context.Context, filter LeadFilter, limit int) ([]*models.Lead, error) {
	domain := filter.Domain(r.fields)
	r.logger.Debug("Listing leads", "predicates", len(domain), "limit", limit)

	records, err := odoo.SearchRead(ctx, r.inv, leadModel, domain.Tuples(), odoo.SearchOptions{
		Fields: r.fields.ToRemoteFields(leadListFields),
		Limit:  r.opts.clamp(limit),
		Order:  "create_date desc",
	})
	if err != nil {
		return nil, err
	}

	leads := make([]*models.Lead, 0, len(records))
	for _, raw := range records {
		leads = append(leads, models.LeadFromRecord(r.fields.FromRemote(raw)))
	}
	return leads, nil
}

// Get returns the full view of one lead, or NotFoundError.
func (r *LeadRepository) Get(ctx context.Context, id int64) (*models.Lead, error) {
	domain := Domain{{Field: "id", Op: "=", Value: id}}
	records, err := odoo.SearchRead(ctx, r.inv, leadModel, domain.Tuples(), odoo.SearchOptions{
		Fields: r.fields.ToRemoteFields(leadDetailFields),
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &odoo.NotFoundError{Model: leadModel, ID: id}
	}

	return models.LeadDetailFromRecord(r.fields.FromRemote(records[0])), nil
}

// Create validates required fields locally, then creates the lead and
// returns its id. New records always start as type "lead".
func (r *LeadRepository) Create(ctx context.Context, in LeadCreate) (int64, error) {
	if in.Name == "" {
		return 0, &odoo.ValidationError{Field: "name", Reason: "is required"}
	}

	values := map[string]any{
		"name": in.Name,
		"type": models.TypeLead,
	}
	setIfString(values, "contact_name", in.ContactName)
	setIfString(values, "email_from", in.EmailFrom)
	setIfString(values, "phone", in.Phone)
	setIfString(values, "partner_name", in.PartnerName)
	setIfString(values, "description", in.Description)
	setIfInt(values, "team_id", in.TeamID)
	setIfInt(values, "user_id", in.UserID)
	setIfInt(values, "stage_id", in.StageID)
	setIfFloat(values, "expected_revenue", in.ExpectedRevenue)
	setIfFloat(values, "probability", in.Probability)
	setIfInt(values, "program_id", in.ProgramID)
	setIfString(values, "canal_contacto", in.CanalContacto)
	setIfString(values, "programa_interes", in.ProgramaInteres)

	id, err := odoo.Create(ctx, r.inv, leadModel, r.fields.ToRemoteValues(values))
	if err != nil {
		return 0, err
	}

	r.logger.Info("Created lead", "id", id, "name", in.Name)
	return id, nil
}

// Update writes the supplied fields and returns the re-read record.
// An empty update set is rejected before any remote call.
func (r *LeadRepository) Update(ctx context.Context, id int64, in LeadUpdate) (*models.Lead, error) {
	values := map[string]any{}
	setPtrString(values, "name", in.Name)
	setPtrString(values, "contact_name", in.ContactName)
	setPtrString(values, "email_from", in.EmailFrom)
	setPtrString(values, "phone", in.Phone)
	setPtrString(values, "description", in.Description)
	setPtrInt(values, "stage_id", in.StageID)
	setPtrInt(values, "user_id", in.UserID)
	setPtrInt(values, "team_id", in.TeamID)
	setPtrFloat(values, "expected_revenue", in.ExpectedRevenue)
	setPtrFloat(values, "probability", in.Probability)
	setPtrString(values, "priority", in.Priority)
	setPtrInt(values, "program_id", in.ProgramID)
	setPtrString(values, "canal_contacto", in.CanalContacto)
	setPtrString(values, "programa_interes", in.ProgramaInteres)
	setPtrFloat(values, "progress", in.Progress)

	if len(values) == 0 {
		return nil, &odoo.ValidationError{Reason: "no fields provided for update"}
	}

	// Existence check so a missing id surfaces as NotFound rather than
	// a silent no-op write.
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := odoo.Write(ctx, r.inv, leadModel, []int64{id}, r.fields.ToRemoteValues(values)); err != nil {
		return nil, err
	}

	r.logger.Info("Updated lead", "id", id, "fields", len(values))
	return r.Get(ctx, id)
}

// Convert performs the one-directional lead→opportunity transition.
// Re-invoking on a record that is already an opportunity is an error,
// not a no-op. An opportunity must end up with a partner: the caller
// supplies one or the lead already has one.
func (r *LeadRepository) Convert(ctx context.Context, id int64, opts ConvertOptions) (*models.Lead, error) {
	lead, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if lead.Type == models.TypeOpportunity {
		return nil, &odoo.InvalidStateError{Model: leadModel, ID: id, State: models.TypeOpportunity}
	}

	if opts.PartnerID == 0 && lead.Partner == nil {
		return nil, &odoo.ValidationError{Field: "partner_id",
			Reason: "is required to convert a lead that has no partner"}
	}

	values := map[string]any{"type": models.TypeOpportunity}
	setIfInt(values, "partner_id", opts.PartnerID)
	setIfInt(values, "user_id", opts.UserID)
	setIfInt(values, "team_id", opts.TeamID)

	if err := odoo.Write(ctx, r.inv, leadModel, []int64{id}, values); err != nil {
		return nil, err
	}

	r.logger.Info("Converted lead to opportunity", "id", id)
	return r.Get(ctx, id)
}

// Activities returns the activities attached to a lead, most urgent
// deadline first. Activity records carry no custom fields and pass
// through unmapped.
func (r *LeadRepository) Activities(ctx context.Context, leadID int64) ([]*models.Activity, error) {
	// Confirm the lead exists so a bad id is NotFound, not an empty list.
	if _, err := r.Get(ctx, leadID); err != nil {
		return nil, err
	}

	domain := Domain{
		{Field: "res_model", Op: "=", Value: leadModel},
		{Field: "res_id", Op: "=", Value: leadID},
	}
	records, err := odoo.SearchRead(ctx, r.inv, activityModel, domain.Tuples(), odoo.SearchOptions{
		Fields: []string{"id", "activity_type_id", "summary", "date_deadline", "user_id", "state", "create_date"},
		Order:  "date_deadline desc",
	})
	if err != nil {
		return nil, err
	}

	activities := make([]*models.Activity, 0, len(records))
	for _, raw := range records {
		activities = append(activities, models.ActivityFromRecord(models.Record(raw)))
	}
	return activities, nil
}

func setIfString(values map[string]any, key, v string) {
	if v != "" {
		values[key] = v
	}
}

func setIfInt(values map[string]any, key string, v int64) {
	if v != 0 {
		values[key] = v
	}
}

func setIfFloat(values map[string]any, key string, v float64) {
	if v != 0 {
		values[key] = v
	}
}

func setPtrString(values map[string]any, key string, v *string) {
	if v != nil {
		values[key] = *v
	}
}

func setPtrInt(values map[string]any, key string, v *int64) {
	if v != nil {
		values[key] = *v
	}
}

func setPtrFloat(values map[string]any, key string, v *float64) {
	if v != nil {
		values[key] = *v
	}
}
