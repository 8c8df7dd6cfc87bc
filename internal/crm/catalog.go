package crm

import (
	"context"
	"log/slog"

	"github.com/isep-edu/crm-gateway/internal/models"
	"github.com/isep-edu/crm-gateway/internal/odoo"
)

const (
	stageModel   = "crm.stage"
	teamModel    = "crm.team"
	programModel = "product.template"
)

// CatalogRepository serves the read-only reference entities: pipeline
// stages, sales teams, and the academic program catalog.
type CatalogRepository struct {
	inv    odoo.Invoker
	logger *slog.Logger
	opts   Options
}

func NewCatalogRepository(inv odoo.Invoker, logger *slog.Logger, opts Options) *CatalogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogRepository{inv: inv, logger: logger, opts: opts}
}

// Stages returns pipeline stages in pipeline order (sequence
// ascending), optionally scoped to one team.
func (r *CatalogRepository) Stages(ctx context.Context, filter StageFilter) ([]*models.Stage, error) {
	records, err := odoo.SearchRead(ctx, r.inv, stageModel, filter.Domain(nil).Tuples(), odoo.SearchOptions{
		Fields: []string{"id", "name", "sequence", "fold", "probability", "team_id"},
		Order:  "sequence asc",
	})
	if err != nil {
		return nil, err
	}

	stages := make([]*models.Stage, 0, len(records))
	for _, raw := range records {
		stages = append(stages, models.StageFromRecord(models.Record(raw)))
	}
	return stages, nil
}

// Teams returns all sales teams, ordered by name.
func (r *CatalogRepository) Teams(ctx context.Context) ([]*models.Team, error) {
	records, err := odoo.SearchRead(ctx, r.inv, teamModel, nil, odoo.SearchOptions{
		Fields: []string{"id", "name", "active", "user_id", "member_ids"},
		Order:  "name asc",
	})
	if err != nil {
		return nil, err
	}

	teams := make([]*models.Team, 0, len(records))
	for _, raw := range records {
		teams = append(teams, models.TeamFromRecord(models.Record(raw)))
	}
	return teams, nil
}

// Programs returns the academic program catalog, ordered by name.
// Programs live remotely as product templates.
func (r *CatalogRepository) Programs(ctx context.Context, filter ProgramFilter, limit int) ([]*models.Program, error) {
	records, err := odoo.SearchRead(ctx, r.inv, programModel, filter.Domain(nil).Tuples(), odoo.SearchOptions{
		Fields: []string{"id", "name", "active", "list_price", "categ_id"},
		Limit:  r.opts.clamp(limit),
		Order:  "name asc",
	})
	if err != nil {
		return nil, err
	}

	programs := make([]*models.Program, 0, len(records))
	for _, raw := range records {
		programs = append(programs, models.ProgramFromRecord(models.Record(raw)))
	}
	return programs, nil
}
