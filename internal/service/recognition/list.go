package recognition

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

// GetRecognition returns a single recognition, or nil when it does not
// exist or the caller may not see it. Invisible and missing are
// indistinguishable on purpose.
func (s *Service) GetRecognition(ctx context.Context, id uuid.UUID) (*domain.Recognition, error) {
	viewerID, _ := ctxutil.ViewerIDFromCtx(ctx)

	rec := s.store.GetRecognition(id)
	if rec == nil || !s.canView(rec, viewerID) {
		return nil, nil
	}
	return rec, nil
}

// ListRecognitions returns valid recognitions matching the filters,
// visibility-checked for the caller, newest first, then paginated.
// The visibility predicate runs after the caller's filters and before
// pagination, so pages never leak invisible items.
func (s *Service) ListRecognitions(ctx context.Context, input ListInput) ([]domain.Recognition, error) {
	viewerID, _ := ctxutil.ViewerIDFromCtx(ctx)

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	recs := s.store.ListValidRecognitions()

	filtered := recs[:0]
	for i := range recs {
		if !matches(&recs[i], input, s.store.GetUser) {
			continue
		}
		if !s.canView(&recs[i], viewerID) {
			continue
		}
		filtered = append(filtered, recs[i])
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	if offset >= len(filtered) {
		return []domain.Recognition{}, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func matches(rec *domain.Recognition, input ListInput, lookup domain.UserLookup) bool {
	if input.RecipientID != nil && rec.RecipientID != *input.RecipientID {
		return false
	}
	if input.SenderID != nil && !rec.Sender.Is(*input.SenderID) {
		return false
	}
	if input.Visibility != nil && rec.Visibility != *input.Visibility {
		return false
	}
	if input.Department != nil {
		recipient := lookup(rec.RecipientID)
		if recipient == nil || !recipient.HasDepartment() || *recipient.Department != *input.Department {
			return false
		}
	}
	if len(input.Keywords) > 0 && !matchesAnyKeyword(rec.Keywords, input.Keywords) {
		return false
	}
	return true
}

// matchesAnyKeyword reports whether any wanted keyword is a
// case-insensitive substring of any recognition keyword.
func matchesAnyKeyword(have, want []string) bool {
	for _, w := range want {
		w = strings.ToLower(w)
		for _, h := range have {
			if strings.Contains(strings.ToLower(h), w) {
				return true
			}
		}
	}
	return false
}
