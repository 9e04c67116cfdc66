// Package analytics aggregates recognition statistics for managing roles.
// The source set is every valid recognition, not just what the caller
// could individually view: analytics is role-gated, and authorized roles
// intentionally see organization-wide numbers.
package analytics

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

// topN caps each ranking in the report.
const topN = 10

type entityStore interface {
	GetUser(id uuid.UUID) *domain.User
	ListValidRecognitions() []domain.Recognition
}

// Service computes analytics reports.
type Service struct {
	store entityStore
	log   *slog.Logger
}

// NewService creates an analytics Service.
func NewService(log *slog.Logger, store entityStore) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "analytics"),
	}
}

// ComputeAnalytics builds a report over the filtered recognition set.
// Requires an authenticated caller whose role is MANAGER, HR, or
// CROSS_FUNCTIONAL_LEAD.
func (s *Service) ComputeAnalytics(ctx context.Context, filter domain.AnalyticsFilter) (*domain.AnalyticsReport, error) {
	viewerID, ok := ctxutil.ViewerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	viewer := s.store.GetUser(viewerID)
	if viewer == nil || !viewer.Role.CanAccessAnalytics() {
		return nil, domain.ErrForbidden
	}

	recs := s.filtered(filter)

	report := &domain.AnalyticsReport{
		TotalRecognitions:     len(recs),
		RecognitionsByTeam:    s.teamStats(recs),
		RecognitionsByKeyword: keywordStats(recs),
		TopRecognizers:        s.senderStats(recs),
		TopRecipients:         s.recipientStats(recs),
	}

	s.log.DebugContext(ctx, "analytics computed",
		slog.String("viewer_id", viewerID.String()),
		slog.Int("recognitions", report.TotalRecognitions),
	)

	return report, nil
}

// filtered applies the department and inclusive date filters.
func (s *Service) filtered(filter domain.AnalyticsFilter) []domain.Recognition {
	recs := s.store.ListValidRecognitions()

	kept := recs[:0]
	for _, rec := range recs {
		if filter.Department != nil {
			recipient := s.store.GetUser(rec.RecipientID)
			if recipient == nil || !recipient.HasDepartment() || *recipient.Department != *filter.Department {
				continue
			}
		}
		if filter.DateFrom != nil && rec.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && rec.CreatedAt.After(*filter.DateTo) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}
