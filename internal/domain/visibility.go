package domain

import "github.com/google/uuid"

// UserLookup resolves a user ID to a User, or nil when it does not resolve.
type UserLookup func(id uuid.UUID) *User

// CanView decides whether the viewer may see the recognition. It is the
// single authority on read access: every listing, search, and field edge
// must pass candidates through it before returning them, regardless of
// what the caller already filtered.
//
// Rules, in order:
//   - nil viewer (unauthenticated) sees nothing;
//   - PUBLIC is visible to everyone;
//   - PRIVATE is visible to the sender and the recipient only;
//   - TEAM_ONLY is visible when viewer and recipient both resolve, both
//     have a department set, and the departments match;
//   - any other visibility value fails closed.
func CanView(rec *Recognition, viewerID uuid.UUID, lookup UserLookup) bool {
	if viewerID == uuid.Nil {
		return false
	}

	switch rec.Visibility {
	case VisibilityPublic:
		return true

	case VisibilityPrivate:
		return rec.Sender.Is(viewerID) || rec.RecipientID == viewerID

	case VisibilityTeamOnly:
		viewer := lookup(viewerID)
		recipient := lookup(rec.RecipientID)
		if viewer == nil || recipient == nil {
			return false
		}
		if !viewer.HasDepartment() || !recipient.HasDepartment() {
			return false
		}
		return *viewer.Department == *recipient.Department

	default:
		return false
	}
}
