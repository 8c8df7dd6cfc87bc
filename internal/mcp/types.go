// Package mcp provides the Model Context Protocol server for the CRM
// gateway. It exposes the remote CRM (leads, opportunities, partners,
// stages, teams, academic programs) as callable tools for AI agents.
package mcp

import (
	"github.com/isep-edu/crm-gateway/internal/models"
)

// LeadListOutput is the response of the list_leads tool.
type LeadListOutput struct {
	Leads      []*models.Lead `json:"leads"`
	TotalCount int            `json:"total_count"`
	Message    string         `json:"message"`
}

// PartnerListOutput is the response of the list_partners tool.
type PartnerListOutput struct {
	Partners   []*models.Partner `json:"partners"`
	TotalCount int               `json:"total_count"`
	Message    string            `json:"message"`
}

// StageListOutput is the response of the list_crm_stages tool.
type StageListOutput struct {
	Stages     []*models.Stage `json:"stages"`
	TotalCount int             `json:"total_count"`
}

// TeamListOutput is the response of the list_crm_teams tool.
type TeamListOutput struct {
	Teams      []*models.Team `json:"teams"`
	TotalCount int            `json:"total_count"`
}

// ProgramListOutput is the response of the get_academic_programs tool.
type ProgramListOutput struct {
	Programs   []*models.Program `json:"programs"`
	TotalCount int               `json:"total_count"`
}

// ActivityListOutput is the response of the get_lead_activities tool.
type ActivityListOutput struct {
	LeadID     int64              `json:"lead_id"`
	Activities []*models.Activity `json:"activities"`
	TotalCount int                `json:"total_count"`
}

// InvoiceListOutput is the response of the list_vendor_bills and
// list_customer_invoices tools.
type InvoiceListOutput struct {
	Invoices   []*models.Invoice `json:"invoices"`
	TotalCount int               `json:"total_count"`
	Message    string            `json:"message"`
}

// PaymentListOutput is the response of the list_payments tool.
type PaymentListOutput struct {
	Payments   []*models.Payment `json:"payments"`
	TotalCount int               `json:"total_count"`
	Message    string            `json:"message"`
}

// CreateOutput is the response of the create_lead and create_partner
// tools.
type CreateOutput struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// ConvertOutput is the response of the convert_lead_to_opportunity
// tool.
type ConvertOutput struct {
	Opportunity *models.Lead `json:"opportunity"`
	Message     string       `json:"message"`
}
