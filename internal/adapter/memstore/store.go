// Package memstore is the in-process entity store. It owns the canonical
// User, Recognition, Reaction, and Comment records, enforces referential
// integrity on write, and re-derives recognition validity on every read.
//
// All operations run under a single mutex: the reference checks performed
// before an insert must be atomic with the insert itself. Listings iterate
// in first-insertion order, so repeated calls with no intervening writes
// return identical sequences.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
)

// Store holds all entities for a single process. Create with New and
// inject it into services; it is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	users     map[uuid.UUID]domain.User
	userOrder []uuid.UUID

	recognitions map[uuid.UUID]domain.Recognition
	recOrder     []uuid.UUID

	reactions     map[uuid.UUID]domain.Reaction
	reactionOrder []uuid.UUID

	comments     map[uuid.UUID]domain.Comment
	commentOrder []uuid.UUID
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:        make(map[uuid.UUID]domain.User),
		recognitions: make(map[uuid.UUID]domain.Recognition),
		reactions:    make(map[uuid.UUID]domain.Reaction),
		comments:     make(map[uuid.UUID]domain.Comment),
	}
}

// Ping reports store liveness for health checks.
func (s *Store) Ping(_ context.Context) error { return nil }

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// PutUser inserts or replaces a user by ID.
func (s *Store) PutUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID]; !exists {
		s.userOrder = append(s.userOrder, u.ID)
	}
	s.users[u.ID] = u
	return u
}

// GetUser returns the user with the given ID, or nil.
func (s *Store) GetUser(id uuid.UUID) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocked(id)
}

// GetUsers resolves a batch of user IDs in one call. Missing IDs are
// absent from the result map.
func (s *Store) GetUsers(ids []uuid.UUID) map[uuid.UUID]domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[uuid.UUID]domain.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			found[id] = u
		}
	}
	return found
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, s.users[id])
	}
	return users
}

// RemoveUser deletes a user by ID. Recognitions referencing the user are
// not touched: they become invalid and drop out of every read until
// Reconcile purges them or the user reappears.
func (s *Store) RemoveUser(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	s.userOrder = removeID(s.userOrder, id)
	return true
}

func (s *Store) userLocked(id uuid.UUID) *domain.User {
	if u, ok := s.users[id]; ok {
		return &u
	}
	return nil
}

// ---------------------------------------------------------------------------
// Recognitions
// ---------------------------------------------------------------------------

// PutRecognition inserts or replaces a recognition by ID after checking
// that the recipient, and the sender for non-anonymous recognitions,
// resolve to existing users. On a referential failure nothing is written.
// Replacing keeps the recognition's original listing position.
func (s *Store) PutRecognition(r domain.Recognition) (domain.Recognition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[r.RecipientID]; !ok {
		return domain.Recognition{}, domain.NewReferentialError("recognition", "recipient_id", r.RecipientID.String())
	}
	if senderID, known := r.Sender.UserID(); known {
		if _, ok := s.users[senderID]; !ok {
			return domain.Recognition{}, domain.NewReferentialError("recognition", "sender_id", senderID.String())
		}
	}

	if _, exists := s.recognitions[r.ID]; !exists {
		s.recOrder = append(s.recOrder, r.ID)
	}
	s.recognitions[r.ID] = r
	return r, nil
}

// GetRecognition returns the recognition with the given ID, or nil.
func (s *Store) GetRecognition(id uuid.UUID) *domain.Recognition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.recognitions[id]; ok {
		return &r
	}
	return nil
}

// ListRecognitions returns all recognitions, valid or not, in insertion order.
func (s *Store) ListRecognitions() []domain.Recognition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]domain.Recognition, 0, len(s.recOrder))
	for _, id := range s.recOrder {
		recs = append(recs, s.recognitions[id])
	}
	return recs
}

// ListValidRecognitions returns recognitions whose recipient and
// non-anonymous sender currently resolve. Validity is recomputed on every
// call against the live user index: a recognition invalidated by a
// removed user reappears as soon as the user does.
func (s *Store) ListValidRecognitions() []domain.Recognition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]domain.Recognition, 0, len(s.recOrder))
	for _, id := range s.recOrder {
		r := s.recognitions[id]
		if s.validLocked(&r) {
			recs = append(recs, r)
		}
	}
	return recs
}

// DeleteRecognition removes a recognition and, cascading, its reactions
// and comments. Returns false when the ID is unknown.
func (s *Store) DeleteRecognition(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recognitions[id]; !ok {
		return false
	}
	delete(s.recognitions, id)
	s.recOrder = removeID(s.recOrder, id)

	s.reactionOrder = s.purgeReactionsLocked(func(r domain.Reaction) bool {
		return r.RecognitionID == id
	})
	s.commentOrder = s.purgeCommentsLocked(func(c domain.Comment) bool {
		return c.RecognitionID == id
	})
	return true
}

func (s *Store) validLocked(r *domain.Recognition) bool {
	if _, ok := s.users[r.RecipientID]; !ok {
		return false
	}
	if senderID, known := r.Sender.UserID(); known {
		if _, ok := s.users[senderID]; !ok {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Reactions
// ---------------------------------------------------------------------------

// PutReaction inserts or replaces a reaction after checking that both the
// recognition and the user resolve.
func (s *Store) PutReaction(r domain.Reaction) (domain.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recognitions[r.RecognitionID]; !ok {
		return domain.Reaction{}, domain.NewReferentialError("reaction", "recognition_id", r.RecognitionID.String())
	}
	if _, ok := s.users[r.UserID]; !ok {
		return domain.Reaction{}, domain.NewReferentialError("reaction", "user_id", r.UserID.String())
	}

	if _, exists := s.reactions[r.ID]; !exists {
		s.reactionOrder = append(s.reactionOrder, r.ID)
	}
	s.reactions[r.ID] = r
	return r, nil
}

// ReactionsFor returns all reactions on a recognition in insertion order.
func (s *Store) ReactionsFor(recognitionID uuid.UUID) []domain.Reaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reactions []domain.Reaction
	for _, id := range s.reactionOrder {
		if r := s.reactions[id]; r.RecognitionID == recognitionID {
			reactions = append(reactions, r)
		}
	}
	return reactions
}

// ReactionsForMany groups reactions for a batch of recognition IDs in one
// call. Recognitions with no reactions are absent from the result map.
func (s *Store) ReactionsForMany(recognitionIDs []uuid.UUID) map[uuid.UUID][]domain.Reaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[uuid.UUID]struct{}, len(recognitionIDs))
	for _, id := range recognitionIDs {
		wanted[id] = struct{}{}
	}

	grouped := make(map[uuid.UUID][]domain.Reaction, len(recognitionIDs))
	for _, id := range s.reactionOrder {
		r := s.reactions[id]
		if _, ok := wanted[r.RecognitionID]; ok {
			grouped[r.RecognitionID] = append(grouped[r.RecognitionID], r)
		}
	}
	return grouped
}

// RemoveReaction deletes the given user's reaction with the given emoji on
// a recognition. Returns false when no such reaction exists.
func (s *Store) RemoveReaction(recognitionID, userID uuid.UUID, emoji string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.reactionOrder {
		r := s.reactions[id]
		if r.RecognitionID == recognitionID && r.UserID == userID && r.Emoji == emoji {
			delete(s.reactions, id)
			s.reactionOrder = removeID(s.reactionOrder, id)
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

// PutComment inserts or replaces a comment after checking that both the
// recognition and the user resolve.
func (s *Store) PutComment(c domain.Comment) (domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recognitions[c.RecognitionID]; !ok {
		return domain.Comment{}, domain.NewReferentialError("comment", "recognition_id", c.RecognitionID.String())
	}
	if _, ok := s.users[c.UserID]; !ok {
		return domain.Comment{}, domain.NewReferentialError("comment", "user_id", c.UserID.String())
	}

	if _, exists := s.comments[c.ID]; !exists {
		s.commentOrder = append(s.commentOrder, c.ID)
	}
	s.comments[c.ID] = c
	return c, nil
}

// GetComment returns the comment with the given ID, or nil.
func (s *Store) GetComment(id uuid.UUID) *domain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.comments[id]; ok {
		return &c
	}
	return nil
}

// CommentsFor returns all comments on a recognition in insertion order.
func (s *Store) CommentsFor(recognitionID uuid.UUID) []domain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var comments []domain.Comment
	for _, id := range s.commentOrder {
		if c := s.comments[id]; c.RecognitionID == recognitionID {
			comments = append(comments, c)
		}
	}
	return comments
}

// CommentsForMany groups comments for a batch of recognition IDs in one
// call. Recognitions with no comments are absent from the result map.
func (s *Store) CommentsForMany(recognitionIDs []uuid.UUID) map[uuid.UUID][]domain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[uuid.UUID]struct{}, len(recognitionIDs))
	for _, id := range recognitionIDs {
		wanted[id] = struct{}{}
	}

	grouped := make(map[uuid.UUID][]domain.Comment, len(recognitionIDs))
	for _, id := range s.commentOrder {
		c := s.comments[id]
		if _, ok := wanted[c.RecognitionID]; ok {
			grouped[c.RecognitionID] = append(grouped[c.RecognitionID], c)
		}
	}
	return grouped
}

// RemoveComment deletes a comment by ID. Returns false when unknown.
func (s *Store) RemoveComment(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return false
	}
	delete(s.comments, id)
	s.commentOrder = removeID(s.commentOrder, id)
	return true
}

// ---------------------------------------------------------------------------
// Reconcile
// ---------------------------------------------------------------------------

// ReconcileResult counts the entities purged by a Reconcile sweep.
type ReconcileResult struct {
	Recognitions int
	Reactions    int
	Comments     int
}

// Reconcile purges recognitions whose references no longer resolve, then
// reactions and comments orphaned by missing users or recognitions. It is
// an eventual-consistency sweep meant to run once after bulk seeding, not
// on every write.
func (s *Store) Reconcile() ReconcileResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res ReconcileResult

	kept := s.recOrder[:0]
	for _, id := range s.recOrder {
		r := s.recognitions[id]
		if s.validLocked(&r) {
			kept = append(kept, id)
			continue
		}
		delete(s.recognitions, id)
		res.Recognitions++
	}
	s.recOrder = kept

	before := len(s.reactionOrder)
	s.reactionOrder = s.purgeReactionsLocked(func(r domain.Reaction) bool {
		_, userOK := s.users[r.UserID]
		_, recOK := s.recognitions[r.RecognitionID]
		return !userOK || !recOK
	})
	res.Reactions = before - len(s.reactionOrder)

	before = len(s.commentOrder)
	s.commentOrder = s.purgeCommentsLocked(func(c domain.Comment) bool {
		_, userOK := s.users[c.UserID]
		_, recOK := s.recognitions[c.RecognitionID]
		return !userOK || !recOK
	})
	res.Comments = before - len(s.commentOrder)

	return res
}

func (s *Store) purgeReactionsLocked(drop func(domain.Reaction) bool) []uuid.UUID {
	kept := make([]uuid.UUID, 0, len(s.reactionOrder))
	for _, id := range s.reactionOrder {
		if drop(s.reactions[id]) {
			delete(s.reactions, id)
			continue
		}
		kept = append(kept, id)
	}
	return kept
}

func (s *Store) purgeCommentsLocked(drop func(domain.Comment) bool) []uuid.UUID {
	kept := make([]uuid.UUID, 0, len(s.commentOrder))
	for _, id := range s.commentOrder {
		if drop(s.comments[id]) {
			delete(s.comments, id)
			continue
		}
		kept = append(kept, id)
	}
	return kept
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
