package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAccessorsUnsetFields(t *testing.T) {
	// Odoo reports unset fields as boolean false
	rec := Record{
		"name":        false,
		"probability": false,
		"partner_id":  false,
		"active":      false,
	}

	assert.Equal(t, "", rec.Str("name"))
	assert.Equal(t, 0.0, rec.Float("probability"))
	assert.Nil(t, rec.Ref("partner_id"))
	assert.False(t, rec.Bool("active"))
	assert.Equal(t, int64(0), rec.Int("missing"))
}

func TestRecordRef(t *testing.T) {
	rec := Record{"stage_id": []any{int64(3), "Qualified"}}

	ref := rec.Ref("stage_id")
	require.NotNil(t, ref)
	assert.Equal(t, int64(3), ref.ID)
	assert.Equal(t, "Qualified", ref.Name)
}

func TestRecordRefsIDsAndPairs(t *testing.T) {
	idList := Record{"category_id": []any{int64(1), int64(4)}}
	refs := idList.Refs("category_id")
	require.Len(t, refs, 2)
	assert.Equal(t, int64(4), refs[1].ID)

	pairList := Record{"category_id": []any{[]any{int64(1), "Vendor"}, []any{int64(4), "VIP"}}}
	refs = pairList.Refs("category_id")
	require.Len(t, refs, 2)
	assert.Equal(t, "VIP", refs[1].Name)
}

func TestLeadFromRecord(t *testing.T) {
	rec := Record{
		"id":               int64(42),
		"name":             "Master in Data Science inquiry",
		"type":             "opportunity",
		"contact_name":     "Ana Ruiz",
		"email_from":       "ana@example.com",
		"expected_revenue": 4500.0,
		"probability":      60.0,
		"priority":         "2",
		"stage_id":         []any{int64(3), "Proposition"},
		"team_id":          []any{int64(1), "Admissions"},
		"program_id":       []any{int64(15), "MSc Data Science"},
		"canal_contacto":   "web",
		"progress":         40.0,
	}

	lead := LeadFromRecord(rec)
	assert.Equal(t, int64(42), lead.ID)
	assert.Equal(t, TypeOpportunity, lead.Type)
	assert.Equal(t, "Ana Ruiz", lead.ContactName)
	assert.Equal(t, 4500.0, lead.ExpectedRevenue)
	require.NotNil(t, lead.Program)
	assert.Equal(t, int64(15), lead.Program.ID)
	assert.Equal(t, "web", lead.CanalContacto)
	assert.Equal(t, 40.0, lead.Progress)
	assert.Nil(t, lead.Detail)
}

func TestLeadFromRecordDefaults(t *testing.T) {
	lead := LeadFromRecord(Record{"id": int64(1), "name": "Bare"})
	assert.Equal(t, TypeLead, lead.Type)
	assert.Equal(t, "0", lead.Priority)
}

func TestLeadDetailFromRecord(t *testing.T) {
	rec := Record{
		"id":             int64(7),
		"name":           "Detailed",
		"city":           "Barcelona",
		"active":         true,
		"correo_existe":  true,
		"correo_revisado": false,
	}

	lead := LeadDetailFromRecord(rec)
	require.NotNil(t, lead.Detail)
	assert.Equal(t, "Barcelona", lead.Detail.City)
	assert.True(t, lead.Detail.Active)
	assert.True(t, lead.Detail.CorreoExiste)
	assert.False(t, lead.Detail.CorreoRevisado)
}

func TestPartnerFromRecord(t *testing.T) {
	rec := Record{
		"id":            int64(9),
		"name":          "Acme",
		"is_company":    true,
		"customer_rank": int64(1),
		"supplier_rank": int64(0),
		"country_id":    []any{int64(68), "Spain"},
		"category_id":   []any{int64(2)},
		"active":        true,
	}

	p := PartnerFromRecord(rec)
	assert.True(t, p.IsCompany)
	assert.Equal(t, int64(1), p.CustomerRank)
	require.NotNil(t, p.Country)
	assert.Equal(t, "Spain", p.Country.Name)
	require.Len(t, p.Categories, 1)
}

func TestCatalogFromRecord(t *testing.T) {
	stage := StageFromRecord(Record{
		"id": int64(3), "name": "Won", "sequence": int64(70),
		"fold": true, "probability": 100.0,
	})
	assert.Equal(t, int64(70), stage.Sequence)
	assert.True(t, stage.Fold)

	team := TeamFromRecord(Record{
		"id": int64(1), "name": "Admissions", "active": true,
		"user_id":    []any{int64(5), "Marta"},
		"member_ids": []any{int64(5), int64(6), int64(7)},
	})
	assert.Equal(t, 3, team.MemberCount)
	require.NotNil(t, team.Leader)

	program := ProgramFromRecord(Record{
		"id": int64(15), "name": "MSc Data Science", "active": true,
		"list_price": 7900.0, "categ_id": []any{int64(2), "Masters"},
	})
	assert.Equal(t, 7900.0, program.Price)

	activity := ActivityFromRecord(Record{
		"id": int64(11), "summary": "Call back",
		"activity_type_id": []any{int64(2), "Call"},
		"state":            "overdue",
	})
	assert.Equal(t, "overdue", activity.State)
	require.NotNil(t, activity.Type)
}
