package domain

import (
	"time"

	"github.com/google/uuid"
)

// Visibility is the access scope of a recognition.
type Visibility string

const (
	VisibilityPublic   Visibility = "PUBLIC"
	VisibilityPrivate  Visibility = "PRIVATE"
	VisibilityTeamOnly Visibility = "TEAM_ONLY"
)

func (v Visibility) String() string { return string(v) }

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityTeamOnly:
		return true
	}
	return false
}

// Sender is either a known user or anonymous. Anonymity is irreversible:
// the sender identity is never stored for anonymous recognitions, so this
// is a sum type rather than a nullable ID that could be confused with a
// dangling reference.
type Sender struct {
	userID uuid.UUID
	known  bool
}

// KnownSender returns a Sender for the given user.
func KnownSender(id uuid.UUID) Sender {
	return Sender{userID: id, known: true}
}

// AnonymousSender returns the anonymous Sender.
func AnonymousSender() Sender {
	return Sender{}
}

// IsAnonymous reports whether the sender chose to stay anonymous.
func (s Sender) IsAnonymous() bool { return !s.known }

// UserID returns the sender's user ID and true for known senders.
func (s Sender) UserID() (uuid.UUID, bool) {
	if !s.known {
		return uuid.Nil, false
	}
	return s.userID, true
}

// Is reports whether the sender is the given known user.
func (s Sender) Is(id uuid.UUID) bool {
	return s.known && s.userID == id
}

// Recognition is a message of appreciation from a sender (possibly
// anonymous) to a recipient.
type Recognition struct {
	ID          uuid.UUID
	Message     string
	Emojis      []string
	Visibility  Visibility
	Sender      Sender
	RecipientID uuid.UUID
	Keywords    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Reaction is a single-emoji response to a recognition.
type Reaction struct {
	ID            uuid.UUID
	RecognitionID uuid.UUID
	UserID        uuid.UUID
	Emoji         string
	CreatedAt     time.Time
}

// Comment is a free-text response to a recognition.
type Comment struct {
	ID            uuid.UUID
	RecognitionID uuid.UUID
	UserID        uuid.UUID
	Message       string
	CreatedAt     time.Time
}
