package recognition

import (
	"context"
	"strings"

	"github.com/heartmarshall/kudos-backend/internal/domain"
	"github.com/heartmarshall/kudos-backend/pkg/ctxutil"
)

// SearchRecognitions returns visible recognitions whose message or any
// keyword contains the query, case-insensitively. Unpaginated, store order.
func (s *Service) SearchRecognitions(ctx context.Context, query string) ([]domain.Recognition, error) {
	viewerID, _ := ctxutil.ViewerIDFromCtx(ctx)

	term := strings.ToLower(query)
	recs := s.store.ListValidRecognitions()

	found := recs[:0]
	for i := range recs {
		if !s.canView(&recs[i], viewerID) {
			continue
		}
		if !matchesQuery(&recs[i], term) {
			continue
		}
		found = append(found, recs[i])
	}
	return found, nil
}

func matchesQuery(rec *domain.Recognition, term string) bool {
	if strings.Contains(strings.ToLower(rec.Message), term) {
		return true
	}
	for _, k := range rec.Keywords {
		if strings.Contains(strings.ToLower(k), term) {
			return true
		}
	}
	return false
}
