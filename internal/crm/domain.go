package crm

// Condition is one predicate of a remote query domain. Predicates
// combine with implicit AND.
type Condition struct {
	Field string
	Op    string
	Value any
}

// Domain is an ordered predicate sequence. Order follows the filter
// struct's declaration order so generated queries are stable.
type Domain []Condition

func (d *Domain) add(field, op string, value any) {
	*d = append(*d, Condition{Field: field, Op: op, Value: value})
}

// Tuples renders the domain in the wire shape the remote server
// expects: a list of [field, operator, value] triples.
func (d Domain) Tuples() []any {
	out := make([]any, len(d))
	for i, c := range d {
		out[i] = []any{c.Field, c.Op, c.Value}
	}
	return out
}

// LeadFilter is the sparse filter-parameter object for lead listing.
// Zero values mean "absent" and contribute no predicate. Field order
// here fixes the order of the generated domain.
type LeadFilter struct {
	Type          string
	Priority      string
	ProgramID     int64
	CanalContacto string
	StageID       int64
	TeamID        int64
	UserID        int64
	PartnerID     int64
	DateFrom      string
	DateTo        string
}

// Domain builds the predicate sequence, one per present parameter.
// Custom-field parameters are translated to their remote names.
func (f LeadFilter) Domain(fields *FieldMap) Domain {
	var d Domain
	if f.Type != "" {
		d.add("type", "=", f.Type)
	}
	if f.Priority != "" {
		d.add("priority", "=", f.Priority)
	}
	if f.ProgramID != 0 {
		d.add(fields.ToRemote("program_id"), "=", f.ProgramID)
	}
	if f.CanalContacto != "" {
		d.add(fields.ToRemote("canal_contacto"), "ilike", f.CanalContacto)
	}
	if f.StageID != 0 {
		d.add("stage_id", "=", f.StageID)
	}
	if f.TeamID != 0 {
		d.add("team_id", "=", f.TeamID)
	}
	if f.UserID != 0 {
		d.add("user_id", "=", f.UserID)
	}
	if f.PartnerID != 0 {
		d.add("partner_id", "=", f.PartnerID)
	}
	if f.DateFrom != "" {
		d.add("create_date", ">=", f.DateFrom)
	}
	if f.DateTo != "" {
		d.add("create_date", "<=", f.DateTo)
	}
	return d
}

// PartnerFilter is the sparse filter-parameter object for partner
// listing. IsCompany is tri-state; Customer/Supplier are boolean-ish
// role filters that translate to rank > 0.
type PartnerFilter struct {
	Name       string
	Email      string
	Phone      string
	IsCompany  *bool
	Customer   bool
	Supplier   bool
	CategoryID int64
	CountryID  int64
}

func (f PartnerFilter) Domain(_ *FieldMap) Domain {
	var d Domain
	if f.Name != "" {
		d.add("name", "ilike", f.Name)
	}
	if f.Email != "" {
		d.add("email", "ilike", f.Email)
	}
	if f.Phone != "" {
		d.add("phone", "ilike", f.Phone)
	}
	if f.IsCompany != nil {
		d.add("is_company", "=", *f.IsCompany)
	}
	if f.Customer {
		d.add("customer_rank", ">", 0)
	}
	if f.Supplier {
		d.add("supplier_rank", ">", 0)
	}
	if f.CategoryID != 0 {
		d.add("category_id", "in", []any{f.CategoryID})
	}
	if f.CountryID != 0 {
		d.add("country_id", "=", f.CountryID)
	}
	return d
}

// StageFilter scopes stage listing to a team.
type StageFilter struct {
	TeamID int64
}

func (f StageFilter) Domain(_ *FieldMap) Domain {
	var d Domain
	if f.TeamID != 0 {
		d.add("team_id", "=", f.TeamID)
	}
	return d
}

// ProgramFilter scopes program listing to active entries.
type ProgramFilter struct {
	ActiveOnly bool
}

func (f ProgramFilter) Domain(_ *FieldMap) Domain {
	var d Domain
	if f.ActiveOnly {
		d.add("active", "=", true)
	}
	return d
}

// DashboardFilter is the shared base filter of the dashboard queries.
type DashboardFilter struct {
	TeamID   int64
	UserID   int64
	DateFrom string
	DateTo   string
}

func (f DashboardFilter) Domain(_ *FieldMap) Domain {
	var d Domain
	if f.TeamID != 0 {
		d.add("team_id", "=", f.TeamID)
	}
	if f.UserID != 0 {
		d.add("user_id", "=", f.UserID)
	}
	if f.DateFrom != "" {
		d.add("create_date", ">=", f.DateFrom)
	}
	if f.DateTo != "" {
		d.add("create_date", "<=", f.DateTo)
	}
	return d
}
