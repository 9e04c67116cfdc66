package resolver

import (
	"context"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/internal/transport/graphql/model"
)

// Analytics computes the aggregated recognition report for managers, HR,
// and cross-functional leads.
func (r *queryResolver) Analytics(ctx context.Context, filter *model.AnalyticsFilter) (*model.AnalyticsReport, error) {
	f := domain.AnalyticsFilter{}
	if filter != nil {
		f.Department = filter.Department
		f.DateFrom = filter.DateFrom
		f.DateTo = filter.DateTo
	}

	report, err := r.analytics.ComputeAnalytics(ctx, f)
	if err != nil {
		return nil, err
	}
	return model.NewAnalyticsReport(report), nil
}
