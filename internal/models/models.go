// Package models holds the normalized views of remote CRM records. The
// gateway owns no storage; these types exist only for the duration of a
// tool call.
package models

// Lead/opportunity type discriminator values
const (
	TypeLead        = "lead"
	TypeOpportunity = "opportunity"
)

// Ref is a reference to another remote record (Odoo many2one).
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Lead is the normalized view of a crm.lead record, covering both
// leads and opportunities.
type Lead struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	ContactName     string  `json:"contact_name,omitempty"`
	PartnerName     string  `json:"partner_name,omitempty"`
	EmailFrom       string  `json:"email_from,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	Mobile          string  `json:"mobile,omitempty"`
	ExpectedRevenue float64 `json:"expected_revenue"`
	Probability     float64 `json:"probability"`
	Priority        string  `json:"priority"`
	CreateDate      string  `json:"create_date,omitempty"`
	WriteDate       string  `json:"write_date,omitempty"`
	DateDeadline    string  `json:"date_deadline,omitempty"`
	Stage           *Ref    `json:"stage,omitempty"`
	Team            *Ref    `json:"team,omitempty"`
	User            *Ref    `json:"user,omitempty"`
	Partner         *Ref    `json:"partner,omitempty"`
	Description     string  `json:"description,omitempty"`

	// Institution-specific attributes (reverse-mapped custom fields)
	Program         *Ref    `json:"program,omitempty"`
	CanalContacto   string  `json:"canal_contacto,omitempty"`
	ProgramaInteres string  `json:"programa_interes,omitempty"`
	FechaFirma      string  `json:"fecha_firma,omitempty"`
	Progress        float64 `json:"progress"`
	MauticExport    bool    `json:"mautic_export,omitempty"`
	MauticID        string  `json:"mautic_id,omitempty"`

	// Campaign attribution
	GrSource   string `json:"gr_source,omitempty"`
	GrCampaign string `json:"gr_campaign,omitempty"`
	GrTerm     string `json:"gr_term,omitempty"`

	Detail *LeadDetail `json:"detail,omitempty"`
}

// LeadDetail carries the extra attributes surfaced only by the
// single-record get operation.
type LeadDetail struct {
	Website             string `json:"website,omitempty"`
	Function            string `json:"function,omitempty"`
	Street              string `json:"street,omitempty"`
	Street2             string `json:"street2,omitempty"`
	City                string `json:"city,omitempty"`
	Zip                 string `json:"zip,omitempty"`
	DateOpen            string `json:"date_open,omitempty"`
	DateClosed          string `json:"date_closed,omitempty"`
	DateLastStageUpdate string `json:"date_last_stage_update,omitempty"`
	Active              bool   `json:"active"`
	Color               int64  `json:"color,omitempty"`
	DuracionConvenio    string `json:"duracion_convenio,omitempty"`
	CorreoExiste        bool   `json:"correo_existe,omitempty"`
	CorreoRevisado      bool   `json:"correo_revisado,omitempty"`
	BoolInteres         bool   `json:"bool_interes,omitempty"`
}

// Partner is the normalized view of a res.partner record.
type Partner struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"display_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	Website      string `json:"website,omitempty"`
	IsCompany    bool   `json:"is_company"`
	CustomerRank int64  `json:"customer_rank"`
	SupplierRank int64  `json:"supplier_rank"`
	VAT          string `json:"vat,omitempty"`
	Street       string `json:"street,omitempty"`
	Street2      string `json:"street2,omitempty"`
	City         string `json:"city,omitempty"`
	Zip          string `json:"zip,omitempty"`
	Country      *Ref   `json:"country,omitempty"`
	State        *Ref   `json:"state,omitempty"`
	Parent       *Ref   `json:"parent,omitempty"`
	Categories   []Ref  `json:"categories,omitempty"`
	CreateDate   string `json:"create_date,omitempty"`
	WriteDate    string `json:"write_date,omitempty"`
	Active       bool   `json:"active"`
}

// Stage is a pipeline step a lead/opportunity occupies. Read-only.
type Stage struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Sequence    int64   `json:"sequence"`
	Fold        bool    `json:"fold"`
	Probability float64 `json:"probability"`
	Team        *Ref    `json:"team,omitempty"`
}

// Team is a sales team. Read-only.
type Team struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	Leader      *Ref   `json:"leader,omitempty"`
	MemberCount int    `json:"member_count"`
}

// Program is an institution-specific catalog entry (stored remotely as
// a product template). Read-only.
type Program struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Active   bool    `json:"active"`
	Price    float64 `json:"price"`
	Category *Ref    `json:"category,omitempty"`
}

// Activity is a scheduled activity attached to a lead.
type Activity struct {
	ID           int64  `json:"id"`
	Type         *Ref   `json:"type,omitempty"`
	Summary      string `json:"summary,omitempty"`
	DateDeadline string `json:"date_deadline,omitempty"`
	State        string `json:"state,omitempty"`
	User         *Ref   `json:"user,omitempty"`
	CreateDate   string `json:"create_date,omitempty"`
}

// DashboardStats aggregates pipeline counts and revenue over the lead
// repository. The four underlying queries run independently; the
// numbers are not transactionally consistent with one another.
type DashboardStats struct {
	LeadsCount           int64   `json:"leads_count"`
	OpportunitiesCount   int64   `json:"opportunities_count"`
	WonCount             int64   `json:"won_count"`
	LostCount            int64   `json:"lost_count"`
	WinRate              float64 `json:"win_rate"`
	TotalExpectedRevenue float64 `json:"total_expected_revenue"`
	WeightedRevenue      float64 `json:"weighted_revenue"`
	ActivePipeline       int64   `json:"active_pipeline"`
}

// LeadFromRecord builds the list view of a lead from a normalized
// record.
func LeadFromRecord(rec Record) *Lead {
	lead := &Lead{
		ID:              rec.Int("id"),
		Name:            rec.Str("name"),
		Type:            rec.Str("type"),
		ContactName:     rec.Str("contact_name"),
		PartnerName:     rec.Str("partner_name"),
		EmailFrom:       rec.Str("email_from"),
		Phone:           rec.Str("phone"),
		Mobile:          rec.Str("mobile"),
		ExpectedRevenue: rec.Float("expected_revenue"),
		Probability:     rec.Float("probability"),
		Priority:        rec.Str("priority"),
		CreateDate:      rec.Str("create_date"),
		WriteDate:       rec.Str("write_date"),
		DateDeadline:    rec.Str("date_deadline"),
		Stage:           rec.Ref("stage_id"),
		Team:            rec.Ref("team_id"),
		User:            rec.Ref("user_id"),
		Partner:         rec.Ref("partner_id"),
		Description:     rec.Str("description"),
		Program:         rec.Ref("program_id"),
		CanalContacto:   rec.Str("canal_contacto"),
		ProgramaInteres: rec.Str("programa_interes"),
		FechaFirma:      rec.Str("fecha_firma"),
		Progress:        rec.Float("progress"),
		MauticExport:    rec.Bool("mautic_export"),
		MauticID:        rec.Str("mautic_id"),
		GrSource:        rec.Str("gr_source"),
		GrCampaign:      rec.Str("gr_campaingn"),
		GrTerm:          rec.Str("gr_term"),
	}
	if lead.Type == "" {
		lead.Type = TypeLead
	}
	if lead.Priority == "" {
		lead.Priority = "0"
	}
	return lead
}

// LeadDetailFromRecord builds the full single-record view.
func LeadDetailFromRecord(rec Record) *Lead {
	lead := LeadFromRecord(rec)
	lead.Detail = &LeadDetail{
		Website:             rec.Str("website"),
		Function:            rec.Str("function"),
		Street:              rec.Str("street"),
		Street2:             rec.Str("street2"),
		City:                rec.Str("city"),
		Zip:                 rec.Str("zip"),
		DateOpen:            rec.Str("date_open"),
		DateClosed:          rec.Str("date_closed"),
		DateLastStageUpdate: rec.Str("date_last_stage_update"),
		Active:              rec.Bool("active"),
		Color:               rec.Int("color"),
		DuracionConvenio:    rec.Str("duracion_convenio"),
		CorreoExiste:        rec.Bool("correo_existe"),
		CorreoRevisado:      rec.Bool("correo_revisado"),
		BoolInteres:         rec.Bool("bool_interes"),
	}
	return lead
}

// PartnerFromRecord builds the normalized view of a partner record.
func PartnerFromRecord(rec Record) *Partner {
	return &Partner{
		ID:           rec.Int("id"),
		Name:         rec.Str("name"),
		DisplayName:  rec.Str("display_name"),
		Email:        rec.Str("email"),
		Phone:        rec.Str("phone"),
		Mobile:       rec.Str("mobile"),
		Website:      rec.Str("website"),
		IsCompany:    rec.Bool("is_company"),
		CustomerRank: rec.Int("customer_rank"),
		SupplierRank: rec.Int("supplier_rank"),
		VAT:          rec.Str("vat"),
		Street:       rec.Str("street"),
		Street2:      rec.Str("street2"),
		City:         rec.Str("city"),
		Zip:          rec.Str("zip"),
		Country:      rec.Ref("country_id"),
		State:        rec.Ref("state_id"),
		Parent:       rec.Ref("parent_id"),
		Categories:   rec.Refs("category_id"),
		CreateDate:   rec.Str("create_date"),
		WriteDate:    rec.Str("write_date"),
		Active:       rec.Bool("active"),
	}
}

// StageFromRecord builds the normalized view of a crm.stage record.
func StageFromRecord(rec Record) *Stage {
	return &Stage{
		ID:          rec.Int("id"),
		Name:        rec.Str("name"),
		Sequence:    rec.Int("sequence"),
		Fold:        rec.Bool("fold"),
		Probability: rec.Float("probability"),
		Team:        rec.Ref("team_id"),
	}
}

// TeamFromRecord builds the normalized view of a crm.team record.
func TeamFromRecord(rec Record) *Team {
	return &Team{
		ID:          rec.Int("id"),
		Name:        rec.Str("name"),
		Active:      rec.Bool("active"),
		Leader:      rec.Ref("user_id"),
		MemberCount: len(rec.Refs("member_ids")),
	}
}

// ProgramFromRecord builds the normalized view of a program record.
func ProgramFromRecord(rec Record) *Program {
	return &Program{
		ID:       rec.Int("id"),
		Name:     rec.Str("name"),
		Active:   rec.Bool("active"),
		Price:    rec.Float("list_price"),
		Category: rec.Ref("categ_id"),
	}
}

// ActivityFromRecord builds the normalized view of a mail.activity
// record.
func ActivityFromRecord(rec Record) *Activity {
	return &Activity{
		ID:           rec.Int("id"),
		Type:         rec.Ref("activity_type_id"),
		Summary:      rec.Str("summary"),
		DateDeadline: rec.Str("date_deadline"),
		State:        rec.Str("state"),
		User:         rec.Ref("user_id"),
		CreateDate:   rec.Str("create_date"),
	}
}
