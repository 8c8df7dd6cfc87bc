package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/isep-edu/crm-gateway/internal/crm"
)

// Server wraps the MCP server and provides the CRM gateway tools
type Server struct {
	mcpServer *server.MCPServer
	sseServer *server.SSEServer
	leads      *crm.LeadRepository
	partners   *crm.PartnerRepository
	catalog    *crm.CatalogRepository
	accounting *crm.AccountingRepository
	dashboard  *crm.Dashboard
	logger    *slog.Logger
	addr      string
	mu        sync.RWMutex
	running   bool
}

// Config holds configuration for the MCP server
type Config struct {
	// Address to listen on for the SSE transport (e.g., ":8080")
	Address string
}

// NewServer creates a new MCP server with the CRM tools registered
func NewServer(leads *crm.LeadRepository, partners *crm.PartnerRepository,
	catalog *crm.CatalogRepository, accounting *crm.AccountingRepository,
	dashboard *crm.Dashboard, logger *slog.Logger, cfg Config) *Server {

	mcpServer := server.NewMCPServer(
		"CRM Gateway",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(`You are the CRM gateway assistant. You have access to tools that
expose a remote CRM: leads and opportunities, partners (contacts and
companies), pipeline stages, sales teams, academic programs, and
aggregate dashboard statistics.

Key capabilities:
- List and filter leads/opportunities, including by academic program and contact channel
- Read, create, and update individual leads and partners
- Convert a lead into an opportunity (one-way transition)
- Inspect pipeline stages, sales teams, and the program catalog
- List vendor bills, customer invoices, and payments with their reconciliation state
- Compute pipeline statistics: counts, win rate, expected revenue

All records live in the remote CRM; nothing is stored locally. IDs
returned by one tool can be passed to the others.`),
	)

	s := &Server{
		mcpServer:  mcpServer,
		leads:      leads,
		partners:   partners,
		catalog:    catalog,
		accounting: accounting,
		dashboard:  dashboard,
		logger:     logger,
		addr:       cfg.Address,
	}

	s.registerTools()

	return s
}

// Start starts the MCP server on the configured address using the SSE
// transport. It blocks until the server stops.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("MCP server already running")
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("Starting MCP server", "address", s.addr)

	s.sseServer = server.NewSSEServer(s.mcpServer,
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
	)

	if err := s.sseServer.Start(s.addr); err != nil && err != http.ErrServerClosed {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}

// ServeStdio runs the server over stdin/stdout instead of SSE. Used
// when the gateway is launched directly by an MCP client.
func (s *Server) ServeStdio() error {
	s.logger.Info("Starting MCP server on stdio")
	return server.ServeStdio(s.mcpServer)
}

// Stop gracefully shuts down the SSE transport
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.logger.Info("Stopping MCP server")
	s.running = false

	if s.sseServer != nil {
		if err := s.sseServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown MCP server: %w", err)
		}
	}

	return nil
}

// IsRunning returns true if the SSE server is running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Address returns the server's listening address
func (s *Server) Address() string {
	return s.addr
}

// registerTools registers the CRM tools with the MCP server
func (s *Server) registerTools() {
	// list_leads - Query leads/opportunities with filters
	s.mcpServer.AddTool(
		mcp.NewTool("list_leads",
			mcp.WithDescription("List CRM leads and opportunities matching the given filters. All filters are optional and combine with AND. Returns newest records first."),
			mcp.WithString("type",
				mcp.Description("Record type"),
				mcp.Enum("lead", "opportunity"),
			),
			mcp.WithString("priority",
				mcp.Description("Priority level (0=normal, 1=low, 2=high, 3=very high)"),
			),
			mcp.WithNumber("program_id",
				mcp.Description("Filter by academic program id"),
			),
			mcp.WithString("canal_contacto",
				mcp.Description("Contact channel, partial match"),
			),
			mcp.WithNumber("stage_id",
				mcp.Description("Filter by pipeline stage id"),
			),
			mcp.WithNumber("team_id",
				mcp.Description("Filter by sales team id"),
			),
			mcp.WithNumber("user_id",
				mcp.Description("Filter by salesperson id"),
			),
			mcp.WithNumber("partner_id",
				mcp.Description("Filter by partner id"),
			),
			mcp.WithString("date_from",
				mcp.Description("Creation date lower bound (YYYY-MM-DD)"),
			),
			mcp.WithString("date_to",
				mcp.Description("Creation date upper bound (YYYY-MM-DD)"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of records to return"),
			),
		),
		s.handleListLeads,
	)

	// get_lead_details - Full view of one lead
	s.mcpServer.AddTool(
		mcp.NewTool("get_lead_details",
			mcp.WithDescription("Get the full detail view of a single lead or opportunity, including address, lifecycle dates, and institution-specific attributes."),
			mcp.WithNumber("lead_id",
				mcp.Required(),
				mcp.Description("Lead or opportunity id"),
			),
		),
		s.handleGetLeadDetails,
	)

	// create_lead - Create a new lead
	s.mcpServer.AddTool(
		mcp.NewTool("create_lead",
			mcp.WithDescription("Create a new lead. The record always starts as type 'lead'; use convert_lead_to_opportunity to promote it."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Lead title"),
			),
			mcp.WithString("contact_name",
				mcp.Description("Contact person name"),
			),
			mcp.WithString("email_from",
				mcp.Description("Contact email"),
			),
			mcp.WithString("phone",
				mcp.Description("Contact phone"),
			),
			mcp.WithString("partner_name",
				mcp.Description("Company name"),
			),
			mcp.WithString("description",
				mcp.Description("Internal notes"),
			),
			mcp.WithNumber("team_id",
				mcp.Description("Sales team id"),
			),
			mcp.WithNumber("user_id",
				mcp.Description("Salesperson id"),
			),
			mcp.WithNumber("expected_revenue",
				mcp.Description("Expected revenue"),
			),
			mcp.WithNumber("program_id",
				mcp.Description("Academic program id"),
			),
			mcp.WithString("canal_contacto",
				mcp.Description("Contact channel"),
			),
			mcp.WithString("programa_interes",
				mcp.Description("Program of interest, free text"),
			),
		),
		s.handleCreateLead,
	)

	// update_lead - Partial update of a lead
	s.mcpServer.AddTool(
		mcp.NewTool("update_lead",
			mcp.WithDescription("Update fields of an existing lead or opportunity. Only the supplied fields are written; at least one field is required."),
			mcp.WithNumber("lead_id",
				mcp.Required(),
				mcp.Description("Lead or opportunity id"),
			),
			mcp.WithString("name",
				mcp.Description("Lead title"),
			),
			mcp.WithString("contact_name",
				mcp.Description("Contact person name"),
			),
			mcp.WithString("email_from",
				mcp.Description("Contact email"),
			),
			mcp.WithString("phone",
				mcp.Description("Contact phone"),
			),
			mcp.WithString("description",
				mcp.Description("Internal notes"),
			),
			mcp.WithNumber("stage_id",
				mcp.Description("Pipeline stage id"),
			),
			mcp.WithNumber("team_id",
				mcp.Description("Sales team id"),
			),
			mcp.WithNumber("user_id",
				mcp.Description("Salesperson id"),
			),
			mcp.WithNumber("expected_revenue",
				mcp.Description("Expected revenue"),
			),
			mcp.WithNumber("probability",
				mcp.Description("Win probability (0-100)"),
			),
			mcp.WithString("priority",
				mcp.Description("Priority level"),
			),
			mcp.WithNumber("program_id",
				mcp.Description("Academic program id"),
			),
			mcp.WithString("canal_contacto",
				mcp.Description("Contact channel"),
			),
			mcp.WithString("programa_interes",
				mcp.Description("Program of interest, free text"),
			),
			mcp.WithNumber("progress",
				mcp.Description("Enrollment progress (0-100)"),
			),
		),
		s.handleUpdateLead,
	)

	// convert_lead_to_opportunity - One-way lifecycle transition
	s.mcpServer.AddTool(
		mcp.NewTool("convert_lead_to_opportunity",
			mcp.WithDescription("Convert a lead into an opportunity. The transition is one-way: converting a record that is already an opportunity fails. The opportunity must have a partner, either already on the lead or supplied here."),
			mcp.WithNumber("lead_id",
				mcp.Required(),
				mcp.Description("Lead id"),
			),
			mcp.WithNumber("partner_id",
				mcp.Description("Partner to attach to the opportunity"),
			),
			mcp.WithNumber("user_id",
				mcp.Description("Salesperson to assign"),
			),
			mcp.WithNumber("team_id",
				mcp.Description("Sales team to assign"),
			),
		),
		s.handleConvertLead,
	)

	// list_partners - Query contacts/companies
	s.mcpServer.AddTool(
		mcp.NewTool("list_partners",
			mcp.WithDescription("List partners (contacts and companies) matching the given filters. Name, email, and phone match partially. Returns records ordered by name."),
			mcp.WithString("name",
				mcp.Description("Name, partial match"),
			),
			mcp.WithString("email",
				mcp.Description("Email, partial match"),
			),
			mcp.WithString("phone",
				mcp.Description("Phone, partial match"),
			),
			mcp.WithBoolean("is_company",
				mcp.Description("True for companies only, false for individuals only"),
			),
			mcp.WithBoolean("customer_rank",
				mcp.Description("Only partners that are customers"),
			),
			mcp.WithBoolean("supplier_rank",
				mcp.Description("Only partners that are suppliers"),
			),
			mcp.WithNumber("category_id",
				mcp.Description("Filter by partner tag id"),
			),
			mcp.WithNumber("country_id",
				mcp.Description("Filter by country id"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of records to return"),
			),
		),
		s.handleListPartners,
	)

	// get_partner_details - Full view of one partner
	s.mcpServer.AddTool(
		mcp.NewTool("get_partner_details",
			mcp.WithDescription("Get the full detail view of a single partner, including address, tags, and customer/supplier ranks."),
			mcp.WithNumber("partner_id",
				mcp.Required(),
				mcp.Description("Partner id"),
			),
		),
		s.handleGetPartnerDetails,
	)

	// create_partner - Create a contact or company
	s.mcpServer.AddTool(
		mcp.NewTool("create_partner",
			mcp.WithDescription("Create a new partner (contact or company)."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Partner name"),
			),
			mcp.WithString("email",
				mcp.Description("Email address"),
			),
			mcp.WithString("phone",
				mcp.Description("Phone number"),
			),
			mcp.WithString("mobile",
				mcp.Description("Mobile number"),
			),
			mcp.WithBoolean("is_company",
				mcp.Description("True for a company, false for an individual"),
			),
			mcp.WithString("website",
				mcp.Description("Website URL"),
			),
			mcp.WithString("vat",
				mcp.Description("Tax identifier"),
			),
			mcp.WithString("street",
				mcp.Description("Street address"),
			),
			mcp.WithString("city",
				mcp.Description("City"),
			),
			mcp.WithString("zip",
				mcp.Description("Postal code"),
			),
			mcp.WithNumber("country_id",
				mcp.Description("Country id"),
			),
			mcp.WithNumber("customer_rank",
				mcp.Description("Customer rank (>0 marks the partner a customer)"),
			),
			mcp.WithNumber("supplier_rank",
				mcp.Description("Supplier rank (>0 marks the partner a supplier)"),
			),
			mcp.WithArray("category_ids",
				mcp.Description("Partner tag ids"),
				mcp.Items(map[string]any{"type": "number"}),
			),
		),
		s.handleCreatePartner,
	)

	// update_partner - Partial update of a partner
	s.mcpServer.AddTool(
		mcp.NewTool("update_partner",
			mcp.WithDescription("Update fields of an existing partner. Only the supplied fields are written; at least one field is required."),
			mcp.WithNumber("partner_id",
				mcp.Required(),
				mcp.Description("Partner id"),
			),
			mcp.WithString("name",
				mcp.Description("Partner name"),
			),
			mcp.WithString("email",
				mcp.Description("Email address"),
			),
			mcp.WithString("phone",
				mcp.Description("Phone number"),
			),
			mcp.WithString("mobile",
				mcp.Description("Mobile number"),
			),
			mcp.WithBoolean("is_company",
				mcp.Description("True for a company, false for an individual"),
			),
			mcp.WithString("website",
				mcp.Description("Website URL"),
			),
			mcp.WithString("vat",
				mcp.Description("Tax identifier"),
			),
			mcp.WithString("street",
				mcp.Description("Street address"),
			),
			mcp.WithString("city",
				mcp.Description("City"),
			),
			mcp.WithString("zip",
				mcp.Description("Postal code"),
			),
			mcp.WithNumber("country_id",
				mcp.Description("Country id"),
			),
			mcp.WithNumber("customer_rank",
				mcp.Description("Customer rank"),
			),
			mcp.WithNumber("supplier_rank",
				mcp.Description("Supplier rank"),
			),
			mcp.WithArray("category_ids",
				mcp.Description("Partner tag ids (replaces the existing set)"),
				mcp.Items(map[string]any{"type": "number"}),
			),
		),
		s.handleUpdatePartner,
	)

	// list_crm_stages - Pipeline stages
	s.mcpServer.AddTool(
		mcp.NewTool("list_crm_stages",
			mcp.WithDescription("List the pipeline stages in pipeline order, optionally scoped to one sales team."),
			mcp.WithNumber("team_id",
				mcp.Description("Filter by sales team id"),
			),
		),
		s.handleListStages,
	)

	// list_crm_teams - Sales teams
	s.mcpServer.AddTool(
		mcp.NewTool("list_crm_teams",
			mcp.WithDescription("List all sales teams with their leader and member count."),
		),
		s.handleListTeams,
	)

	// get_lead_activities - Activities attached to a lead
	s.mcpServer.AddTool(
		mcp.NewTool("get_lead_activities",
			mcp.WithDescription("List the scheduled activities attached to a lead or opportunity, most urgent deadline first."),
			mcp.WithNumber("lead_id",
				mcp.Required(),
				mcp.Description("Lead or opportunity id"),
			),
		),
		s.handleGetLeadActivities,
	)

	// get_academic_programs - Program catalog
	s.mcpServer.AddTool(
		mcp.NewTool("get_academic_programs",
			mcp.WithDescription("List the academic program catalog. By default only active programs are returned."),
			mcp.WithBoolean("active_only",
				mcp.Description("Only active programs (default true)"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of records to return"),
			),
		),
		s.handleGetAcademicPrograms,
	)

	// list_vendor_bills - Supplier invoices
	s.mcpServer.AddTool(
		mcp.NewTool("list_vendor_bills",
			mcp.WithDescription("List vendor bills (supplier invoices) with their payment status, newest first. All filters are optional."),
			mcp.WithNumber("partner_id",
				mcp.Description("Filter by supplier id"),
			),
			mcp.WithBoolean("pending",
				mcp.Description("Only bills that are not fully paid"),
			),
			mcp.WithString("date_from",
				mcp.Description("Invoice date lower bound (YYYY-MM-DD)"),
			),
			mcp.WithString("date_to",
				mcp.Description("Invoice date upper bound (YYYY-MM-DD)"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of records to return"),
			),
		),
		s.handleListVendorBills,
	)

	// list_customer_invoices - Customer invoices
	s.mcpServer.AddTool(
		mcp.NewTool("list_customer_invoices",
			mcp.WithDescription("List customer invoices with their payment status, newest first. All filters are optional."),
			mcp.WithNumber("partner_id",
				mcp.Description("Filter by customer id"),
			),
			mcp.WithBoolean("pending",
				mcp.Description("Only invoices that are not fully paid"),
			),
			mcp.WithString("date_from",
				mcp.Description("Invoice date lower bound (YYYY-MM-DD)"),
			),
			mcp.WithString("date_to",
				mcp.Description("Invoice date upper bound (YYYY-MM-DD)"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of records to return"),
			),
		),
		s.handleListCustomerInvoices,
	)

	// get_invoice_details - One invoice with line items
	s.mcpServer.AddTool(
		mcp.NewTool("get_invoice_details",
			mcp.WithDescription("Get one invoice (vendor bill or customer invoice) with its line items."),
			mcp.WithNumber("invoice_id",
				mcp.Required(),
				mcp.Description("Invoice id"),
			),
		),
		s.handleGetInvoiceDetails,
	)

	// list_payments - Payments, optionally scoped to an invoice
	s.mcpServer.AddTool(
		mcp.NewTool("list_payments",
			mcp.WithDescription("List payments with their reconciled invoices, newest first. All filters are optional."),
			mcp.WithNumber("partner_id",
				mcp.Description("Filter by partner id"),
			),
			mcp.WithString("date_from",
				mcp.Description("Payment date lower bound (YYYY-MM-DD)"),
			),
			mcp.WithString("date_to",
				mcp.Description("Payment date upper bound (YYYY-MM-DD)"),
			),
			mcp.WithNumber("invoice_id",
				mcp.Description("Only payments reconciled against this invoice"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of records to return"),
			),
		),
		s.handleListPayments,
	)

	// get_crm_dashboard_stats - Aggregate pipeline metrics
	s.mcpServer.AddTool(
		mcp.NewTool("get_crm_dashboard_stats",
			mcp.WithDescription("Compute aggregate pipeline statistics: lead/opportunity/won/lost counts, win rate, expected and probability-weighted revenue, and active pipeline size. All filters are optional."),
			mcp.WithNumber("team_id",
				mcp.Description("Scope to one sales team"),
			),
			mcp.WithNumber("user_id",
				mcp.Description("Scope to one salesperson"),
			),
			mcp.WithString("date_from",
				mcp.Description("Creation date lower bound (YYYY-MM-DD)"),
			),
			mcp.WithString("date_to",
				mcp.Description("Creation date upper bound (YYYY-MM-DD)"),
			),
		),
		s.handleGetDashboardStats,
	)
}
