package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/isep-edu/crm-gateway/internal/crm"
)

// toolLogger returns a logger scoped to one tool invocation with a
// correlation id.
func (s *Server) toolLogger(tool string) *slog.Logger {
	return s.logger.With("tool", tool, "request_id", uuid.NewString())
}

// errorResult maps a failed operation to a tool result. Domain errors
// (validation, not found, invalid state, remote faults) are reported to
// the agent as tool errors; context cancellation is fatal and aborts
// the call.
func (s *Server) errorResult(ctx context.Context, logger *slog.Logger, err error) (*mcp.CallToolResult, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	logger.Error("Tool call failed", "error", err)
	return mcp.NewToolResultError(err.Error()), nil
}

// handleListLeads implements the list_leads tool
func (s *Server) handleListLeads(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("list_leads")

	filter := crm.LeadFilter{
		Type:          req.GetString("type", ""),
		Priority:      req.GetString("priority", ""),
		ProgramID:     int64(req.GetInt("program_id", 0)),
		CanalContacto: req.GetString("canal_contacto", ""),
		StageID:       int64(req.GetInt("stage_id", 0)),
		TeamID:        int64(req.GetInt("team_id", 0)),
		UserID:        int64(req.GetInt("user_id", 0)),
		PartnerID:     int64(req.GetInt("partner_id", 0)),
		DateFrom:      req.GetString("date_from", ""),
		DateTo:        req.GetString("date_to", ""),
	}

	leads, err := s.leads.List(ctx, filter, req.GetInt("limit", 0))
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(LeadListOutput{
		Leads:      leads,
		TotalCount: len(leads),
		Message:    fmt.Sprintf("Found %d leads matching criteria", len(leads)),
	})
}

// handleGetLeadDetails implements the get_lead_details tool
func (s *Server) handleGetLeadDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("get_lead_details")

	id, err := req.RequireInt("lead_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	lead, err := s.leads.Get(ctx, int64(id))
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(lead)
}

// handleCreateLead implements the create_lead tool
func (s *Server) handleCreateLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("create_lead")

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := crm.LeadCreate{
		Name:            name,
		ContactName:     req.GetString("contact_name", ""),
		EmailFrom:       req.GetString("email_from", ""),
		Phone:           req.GetString("phone", ""),
		PartnerName:     req.GetString("partner_name", ""),
		Description:     req.GetString("description", ""),
		TeamID:          int64(req.GetInt("team_id", 0)),
		UserID:          int64(req.GetInt("user_id", 0)),
		ExpectedRevenue: req.GetFloat("expected_revenue", 0),
		ProgramID:       int64(req.GetInt("program_id", 0)),
		CanalContacto:   req.GetString("canal_contacto", ""),
		ProgramaInteres: req.GetString("programa_interes", ""),
	}

	id, err := s.leads.Create(ctx, in)
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(CreateOutput{
		ID:      id,
		Message: fmt.Sprintf("Created lead %d", id),
	})
}

// handleUpdateLead implements the update_lead tool
func (s *Server) handleUpdateLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("update_lead")

	id, err := req.RequireInt("lead_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := req.GetArguments()
	in := crm.LeadUpdate{
		Name:            optString(args, "name"),
		ContactName:     optString(args, "contact_name"),
		EmailFrom:       optString(args, "email_from"),
		Phone:           optString(args, "phone"),
		Description:     optString(args, "description"),
		StageID:         optInt(args, "stage_id"),
		TeamID:          optInt(args, "team_id"),
		UserID:          optInt(args, "user_id"),
		ExpectedRevenue: optFloat(args, "expected_revenue"),
		Probability:     optFloat(args, "probability"),
		Priority:        optString(args, "priority"),
		ProgramID:       optInt(args, "program_id"),
		CanalContacto:   optString(args, "canal_contacto"),
		ProgramaInteres: optString(args, "programa_interes"),
		Progress:        optFloat(args, "progress"),
	}

	lead, err := s.leads.Update(ctx, int64(id), in)
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(lead)
}

// handleConvertLead implements the convert_lead_to_opportunity tool
func (s *Server) handleConvertLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("convert_lead_to_opportunity")

	id, err := req.RequireInt("lead_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := crm.ConvertOptions{
		PartnerID: int64(req.GetInt("partner_id", 0)),
		UserID:    int64(req.GetInt("user_id", 0)),
		TeamID:    int64(req.GetInt("team_id", 0)),
	}

	lead, err := s.leads.Convert(ctx, int64(id), opts)
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(ConvertOutput{
		Opportunity: lead,
		Message:     fmt.Sprintf("Converted lead %d to opportunity", id),
	})
}

// handleListPartners implements the list_partners tool
func (s *Server) handleListPartners(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("list_partners")

	filter := crm.PartnerFilter{
		Name:       req.GetString("name", ""),
		Email:      req.GetString("email", ""),
		Phone:      req.GetString("phone", ""),
		IsCompany:  optBool(req.GetArguments(), "is_company"),
		Customer:   req.GetBool("customer_rank", false),
		Supplier:   req.GetBool("supplier_rank", false),
		CategoryID: int64(req.GetInt("category_id", 0)),
		CountryID:  int64(req.GetInt("country_id", 0)),
	}

	partners, err := s.partners.List(ctx, filter, req.GetInt("limit", 0))
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(PartnerListOutput{
		Partners:   partners,
		TotalCount: len(partners),
		Message:    fmt.Sprintf("Found %d partners matching criteria", len(partners)),
	})
}

// handleGetPartnerDetails implements the get_partner_details tool
func (s *Server) handleGetPartnerDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("get_partner_details")

	id, err := req.RequireInt("partner_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	partner, err := s.partners.Get(ctx, int64(id))
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(partner)
}

// handleCreatePartner implements the create_partner tool
func (s *Server) handleCreatePartner(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("create_partner")

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := crm.PartnerCreate{
		Name:         name,
		Email:        req.GetString("email", ""),
		Phone:        req.GetString("phone", ""),
		Mobile:       req.GetString("mobile", ""),
		IsCompany:    req.GetBool("is_company", false),
		Website:      req.GetString("website", ""),
		VAT:          req.GetString("vat", ""),
		Street:       req.GetString("street", ""),
		City:         req.GetString("city", ""),
		Zip:          req.GetString("zip", ""),
		CountryID:    int64(req.GetInt("country_id", 0)),
		CustomerRank: int64(req.GetInt("customer_rank", 0)),
		SupplierRank: int64(req.GetInt("supplier_rank", 0)),
		CategoryIDs:  intSlice(req.GetArguments(), "category_ids"),
	}

	id, err := s.partners.Create(ctx, in)
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(CreateOutput{
		ID:      id,
		Message: fmt.Sprintf("Created partner %d", id),
	})
}

// handleUpdatePartner implements the update_partner tool
func (s *Server) handleUpdatePartner(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("update_partner")

	id, err := req.RequireInt("partner_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := req.GetArguments()
	in := crm.PartnerUpdate{
		Name:         optString(args, "name"),
		Email:        optString(args, "email"),
		Phone:        optString(args, "phone"),
		Mobile:       optString(args, "mobile"),
		IsCompany:    optBool(args, "is_company"),
		Website:      optString(args, "website"),
		VAT:          optString(args, "vat"),
		Street:       optString(args, "street"),
		City:         optString(args, "city"),
		Zip:          optString(args, "zip"),
		CountryID:    optInt(args, "country_id"),
		CustomerRank: optInt(args, "customer_rank"),
		SupplierRank: optInt(args, "supplier_rank"),
		CategoryIDs:  intSlice(args, "category_ids"),
	}

	partner, err := s.partners.Update(ctx, int64(id), in)
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(partner)
}

// handleListStages implements the list_crm_stages tool
func (s *Server) handleListStages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("list_crm_stages")

	stages, err := s.catalog.Stages(ctx, crm.StageFilter{
		TeamID: int64(req.GetInt("team_id", 0)),
	})
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(StageListOutput{
		Stages:     stages,
		TotalCount: len(stages),
	})
}

// handleListTeams implements the list_crm_teams tool
func (s *Server) handleListTeams(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("list_crm_teams")

	teams, err := s.catalog.Teams(ctx)
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(TeamListOutput{
		Teams:      teams,
		TotalCount: len(teams),
	})
}

// handleGetLeadActivities implements the get_lead_activities tool
func (s *Server) handleGetLeadActivities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("get_lead_activities")

	id, err := req.RequireInt("lead_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	activities, err := s.leads.Activities(ctx, int64(id))
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(ActivityListOutput{
		LeadID:     int64(id),
		Activities: activities,
		TotalCount: len(activities),
	})
}

// handleGetAcademicPrograms implements the get_academic_programs tool
func (s *Server) handleGetAcademicPrograms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("get_academic_programs")

	programs, err := s.catalog.Programs(ctx, crm.ProgramFilter{
		ActiveOnly: req.GetBool("active_only", true),
	}, req.GetInt("limit", 0))
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(ProgramListOutput{
		Programs:   programs,
		TotalCount: len(programs),
	})
}

// invoiceFilter builds the shared filter of the two invoice tools
func invoiceFilter(req mcp.CallToolRequest) crm.InvoiceFilter {
	return crm.InvoiceFilter{
		PartnerID: int64(req.GetInt("partner_id", 0)),
		Pending:   req.GetBool("pending", false),
		DateFrom:  req.GetString("date_from", ""),
		DateTo:    req.GetString("date_to", ""),
	}
}

// handleListVendorBills implements the list_vendor_bills tool
func (s *Server) handleListVendorBills(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("list_vendor_bills")

	bills, err := s.accounting.VendorBills(ctx, invoiceFilter(req), req.GetInt("limit", 0))
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(InvoiceListOutput{
		Invoices:   bills,
		TotalCount: len(bills),
		Message:    fmt.Sprintf("Found %d vendor bills matching criteria", len(bills)),
	})
}

// handleListCustomerInvoices implements the list_customer_invoices tool
func (s *Server) handleListCustomerInvoices(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("list_customer_invoices")

	invoices, err := s.accounting.CustomerInvoices(ctx, invoiceFilter(req), req.GetInt("limit", 0))
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(InvoiceListOutput{
		Invoices:   invoices,
		TotalCount: len(invoices),
		Message:    fmt.Sprintf("Found %d customer invoices matching criteria", len(invoices)),
	})
}

// handleGetInvoiceDetails implements the get_invoice_details tool
func (s *Server) handleGetInvoiceDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("get_invoice_details")

	id, err := req.RequireInt("invoice_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	invoice, err := s.accounting.InvoiceDetails(ctx, int64(id))
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(invoice)
}

// handleListPayments implements the list_payments tool
func (s *Server) handleListPayments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("list_payments")

	filter := crm.PaymentFilter{
		PartnerID: int64(req.GetInt("partner_id", 0)),
		DateFrom:  req.GetString("date_from", ""),
		DateTo:    req.GetString("date_to", ""),
		InvoiceID: int64(req.GetInt("invoice_id", 0)),
	}

	payments, err := s.accounting.Payments(ctx, filter, req.GetInt("limit", 0))
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(PaymentListOutput{
		Payments:   payments,
		TotalCount: len(payments),
		Message:    fmt.Sprintf("Found %d payments matching criteria", len(payments)),
	})
}

// handleGetDashboardStats implements the get_crm_dashboard_stats tool
func (s *Server) handleGetDashboardStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := s.toolLogger("get_crm_dashboard_stats")

	stats, err := s.dashboard.Stats(ctx, crm.DashboardFilter{
		TeamID:   int64(req.GetInt("team_id", 0)),
		UserID:   int64(req.GetInt("user_id", 0)),
		DateFrom: req.GetString("date_from", ""),
		DateTo:   req.GetString("date_to", ""),
	})
	if err != nil {
		return s.errorResult(ctx, logger, err)
	}

	return s.jsonResult(stats)
}

// jsonResult formats data as indented JSON in a text result
func (s *Server) jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// Optional-argument helpers. JSON numbers arrive as float64; absence
// and presence must stay distinguishable for partial updates.

func optString(args map[string]any, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(args map[string]any, key string) *int64 {
	if v, ok := args[key].(float64); ok {
		n := int64(v)
		return &n
	}
	return nil
}

func optFloat(args map[string]any, key string) *float64 {
	if v, ok := args[key].(float64); ok {
		return &v
	}
	return nil
}

func optBool(args map[string]any, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}
	return nil
}

func intSlice(args map[string]any, key string) []int64 {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(raw))
	for _, item := range raw {
		if v, ok := item.(float64); ok {
			out = append(out, int64(v))
		}
	}
	return out
}
