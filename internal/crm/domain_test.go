package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadFilterDomainEmpty(t *testing.T) {
	d := LeadFilter{}.Domain(DefaultFieldMap())
	assert.Empty(t, d)
	assert.Empty(t, d.Tuples())
}

func TestLeadFilterDomainOrder(t *testing.T) {
	f := LeadFilter{
		Type:      "opportunity",
		StageID:   3,
		ProgramID: 15,
	}
	d := f.Domain(DefaultFieldMap())

	assert.Equal(t, Domain{
		{Field: "type", Op: "=", Value: "opportunity"},
		{Field: "x_studio_programa_academico", Op: "=", Value: int64(15)},
		{Field: "stage_id", Op: "=", Value: int64(3)},
	}, d)
}

func TestLeadFilterDomainAllParams(t *testing.T) {
	f := LeadFilter{
		Type:          "lead",
		Priority:      "2",
		ProgramID:     15,
		CanalContacto: "web",
		StageID:       3,
		TeamID:        4,
		UserID:        5,
		PartnerID:     6,
		DateFrom:      "2026-01-01",
		DateTo:        "2026-06-30",
	}
	d := f.Domain(DefaultFieldMap())

	assert.Equal(t, Domain{
		{Field: "type", Op: "=", Value: "lead"},
		{Field: "priority", Op: "=", Value: "2"},
		{Field: "x_studio_programa_academico", Op: "=", Value: int64(15)},
		{Field: "x_studio_canal_de_contacto", Op: "ilike", Value: "web"},
		{Field: "stage_id", Op: "=", Value: int64(3)},
		{Field: "team_id", Op: "=", Value: int64(4)},
		{Field: "user_id", Op: "=", Value: int64(5)},
		{Field: "partner_id", Op: "=", Value: int64(6)},
		{Field: "create_date", Op: ">=", Value: "2026-01-01"},
		{Field: "create_date", Op: "<=", Value: "2026-06-30"},
	}, d)
}

func TestLeadFilterDateBoundsIndependent(t *testing.T) {
	d := LeadFilter{DateFrom: "2026-01-01"}.Domain(DefaultFieldMap())
	assert.Equal(t, Domain{{Field: "create_date", Op: ">=", Value: "2026-01-01"}}, d)

	d = LeadFilter{DateTo: "2026-06-30"}.Domain(DefaultFieldMap())
	assert.Equal(t, Domain{{Field: "create_date", Op: "<=", Value: "2026-06-30"}}, d)
}

func TestDomainTuples(t *testing.T) {
	d := Domain{
		{Field: "type", Op: "=", Value: "lead"},
		{Field: "stage_id", Op: "=", Value: int64(3)},
	}

	assert.Equal(t, []any{
		[]any{"type", "=", "lead"},
		[]any{"stage_id", "=", int64(3)},
	}, d.Tuples())
}

func TestPartnerFilterDomain(t *testing.T) {
	isCompany := true
	f := PartnerFilter{
		Name:       "acme",
		Email:      "info@",
		IsCompany:  &isCompany,
		Customer:   true,
		CategoryID: 7,
	}
	d := f.Domain(nil)

	assert.Equal(t, Domain{
		{Field: "name", Op: "ilike", Value: "acme"},
		{Field: "email", Op: "ilike", Value: "info@"},
		{Field: "is_company", Op: "=", Value: true},
		{Field: "customer_rank", Op: ">", Value: 0},
		{Field: "category_id", Op: "in", Value: []any{int64(7)}},
	}, d)
}

func TestPartnerFilterIsCompanyFalse(t *testing.T) {
	isCompany := false
	d := PartnerFilter{IsCompany: &isCompany}.Domain(nil)
	assert.Equal(t, Domain{{Field: "is_company", Op: "=", Value: false}}, d)
}

func TestProgramFilterDomain(t *testing.T) {
	assert.Empty(t, ProgramFilter{}.Domain(nil))
	assert.Equal(t, Domain{{Field: "active", Op: "=", Value: true}},
		ProgramFilter{ActiveOnly: true}.Domain(nil))
}

func TestDashboardFilterDomain(t *testing.T) {
	f := DashboardFilter{TeamID: 4, DateFrom: "2026-01-01"}
	assert.Equal(t, Domain{
		{Field: "team_id", Op: "=", Value: int64(4)},
		{Field: "create_date", Op: ">=", Value: "2026-01-01"},
	}, f.Domain(nil))
}
