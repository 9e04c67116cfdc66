package analytics

import (
	"sort"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
)

// counter accumulates counts while remembering first-occurrence order, so
// rankings have a stable, deterministic tie-break: first seen wins.
type counter[K comparable] struct {
	counts map[K]int
	order  []K
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(key K) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// ranked returns keys sorted descending by count, stable on first-seen
// order, truncated to limit (no truncation when limit <= 0).
func (c *counter[K]) ranked(limit int) []K {
	keys := make([]K, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

// teamStats groups by recipient department, in first-occurrence order.
// Recipients without a department contribute nothing.
func (s *Service) teamStats(recs []domain.Recognition) []domain.TeamStat {
	c := newCounter[string]()
	for _, rec := range recs {
		recipient := s.store.GetUser(rec.RecipientID)
		if recipient == nil || !recipient.HasDepartment() {
			continue
		}
		c.add(*recipient.Department)
	}

	stats := make([]domain.TeamStat, 0, len(c.order))
	for _, dept := range c.order {
		stats = append(stats, domain.TeamStat{Department: dept, Count: c.counts[dept]})
	}
	return stats
}

// keywordStats flattens all keyword lists and ranks the top ten.
func keywordStats(recs []domain.Recognition) []domain.KeywordStat {
	c := newCounter[string]()
	for _, rec := range recs {
		for _, kw := range rec.Keywords {
			c.add(kw)
		}
	}

	top := c.ranked(topN)
	stats := make([]domain.KeywordStat, 0, len(top))
	for _, kw := range top {
		stats = append(stats, domain.KeywordStat{Keyword: kw, Count: c.counts[kw]})
	}
	return stats
}

// senderStats ranks senders of non-anonymous recognitions. Entries whose
// user no longer resolves are dropped after ranking, matching the
// reference behavior.
func (s *Service) senderStats(recs []domain.Recognition) []domain.UserStat {
	c := newCounter[uuid.UUID]()
	for _, rec := range recs {
		if senderID, known := rec.Sender.UserID(); known {
			c.add(senderID)
		}
	}
	return s.resolveStats(c)
}

// recipientStats ranks recipients.
func (s *Service) recipientStats(recs []domain.Recognition) []domain.UserStat {
	c := newCounter[uuid.UUID]()
	for _, rec := range recs {
		c.add(rec.RecipientID)
	}
	return s.resolveStats(c)
}

func (s *Service) resolveStats(c *counter[uuid.UUID]) []domain.UserStat {
	stats := make([]domain.UserStat, 0, topN)
	for _, id := range c.ranked(0) {
		user := s.store.GetUser(id)
		if user == nil {
			continue
		}
		stats = append(stats, domain.UserStat{User: user, Count: c.counts[id]})
		if len(stats) == topN {
			break
		}
	}
	return stats
}
