package crm

import (
	"context"
	"log/slog"
	"math"

	"github.com/isep-edu/crm-gateway/internal/models"
	"github.com/isep-edu/crm-gateway/internal/odoo"
)

// Dashboard computes aggregate pipeline metrics. Counts and revenue
// come from separate queries against the live server, so the figures
// are point-in-time approximations rather than one snapshot.
type Dashboard struct {
	inv    odoo.Invoker
	logger *slog.Logger

	// Probability at which an opportunity counts as won.
	wonProbability float64
}

func NewDashboard(inv odoo.Invoker, logger *slog.Logger, wonProbability float64) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	if wonProbability <= 0 {
		wonProbability = 100
	}
	return &Dashboard{inv: inv, logger: logger, wonProbability: wonProbability}
}

// Stats runs the aggregate queries scoped by the filter. win_rate is 0
// when there are no opportunities; it is never NaN.
func (d *Dashboard) Stats(ctx context.Context, filter DashboardFilter) (*models.DashboardStats, error) {
	base := filter.Domain(nil)
	stats := &models.DashboardStats{}

	var err error
	stats.LeadsCount, err = d.count(ctx, base, Condition{Field: "type", Op: "=", Value: models.TypeLead})
	if err != nil {
		return nil, err
	}

	stats.OpportunitiesCount, err = d.count(ctx, base, Condition{Field: "type", Op: "=", Value: models.TypeOpportunity})
	if err != nil {
		return nil, err
	}

	stats.WonCount, err = d.count(ctx, base,
		Condition{Field: "type", Op: "=", Value: models.TypeOpportunity},
		Condition{Field: "probability", Op: "=", Value: d.wonProbability})
	if err != nil {
		return nil, err
	}

	// Lost opportunities are archived with probability zeroed, so the
	// domain must ask for inactive records explicitly.
	stats.LostCount, err = d.count(ctx, base,
		Condition{Field: "type", Op: "=", Value: models.TypeOpportunity},
		Condition{Field: "active", Op: "=", Value: false},
		Condition{Field: "probability", Op: "=", Value: float64(0)})
	if err != nil {
		return nil, err
	}

	if stats.OpportunitiesCount > 0 {
		rate := float64(stats.WonCount) / float64(stats.OpportunitiesCount) * 100
		stats.WinRate = math.Round(rate*100) / 100
	}
	stats.ActivePipeline = stats.OpportunitiesCount - stats.WonCount - stats.LostCount

	revDomain := append(Domain{}, base...)
	revDomain.add("type", "=", models.TypeOpportunity)
	revDomain.add("expected_revenue", ">", float64(0))
	records, err := odoo.SearchRead(ctx, d.inv, leadModel, revDomain.Tuples(), odoo.SearchOptions{
		Fields: []string{"expected_revenue", "probability"},
	})
	if err != nil {
		return nil, err
	}
	for _, raw := range records {
		rec := models.Record(raw)
		revenue := rec.Float("expected_revenue")
		stats.TotalExpectedRevenue += revenue
		stats.WeightedRevenue += revenue * rec.Float("probability") / 100
	}
	stats.TotalExpectedRevenue = math.Round(stats.TotalExpectedRevenue*100) / 100
	stats.WeightedRevenue = math.Round(stats.WeightedRevenue*100) / 100

	d.logger.Debug("Computed dashboard stats",
		"leads", stats.LeadsCount,
		"opportunities", stats.OpportunitiesCount,
		"won", stats.WonCount,
		"lost", stats.LostCount)
	return stats, nil
}

func (d *Dashboard) count(ctx context.Context, base Domain, extra ...Condition) (int64, error) {
	domain := append(Domain{}, base...)
	domain = append(domain, extra...)
	return odoo.SearchCount(ctx, d.inv, leadModel, domain.Tuples())
}
