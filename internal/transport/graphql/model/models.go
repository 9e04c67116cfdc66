// Package model holds the GraphQL-facing types and their mapping from
// domain entities. Weak references (managerId, senderId) stay on the
// models so edge resolvers can batch them through dataloaders.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
)

// User mirrors the GraphQL User type.
type User struct {
	ID         uuid.UUID
	Email      string
	Name       string
	Role       domain.Role
	Department *string
	ManagerID  *uuid.UUID
	CreatedAt  time.Time
}

// Recognition mirrors the GraphQL Recognition type. SenderID is nil for
// anonymous recognitions; the sender edge resolves to null in that case.
type Recognition struct {
	ID          uuid.UUID
	Message     string
	Emojis      []string
	Visibility  domain.Visibility
	IsAnonymous bool
	SenderID    *uuid.UUID
	RecipientID uuid.UUID
	Keywords    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Reaction mirrors the GraphQL Reaction type.
type Reaction struct {
	ID            uuid.UUID
	RecognitionID uuid.UUID
	UserID        uuid.UUID
	Emoji         string
	CreatedAt     time.Time
}

// Comment mirrors the GraphQL Comment type.
type Comment struct {
	ID            uuid.UUID
	RecognitionID uuid.UUID
	UserID        uuid.UUID
	Message       string
	CreatedAt     time.Time
}

// TeamStat, KeywordStat, UserStat, and AnalyticsReport mirror the
// analytics result types.
type TeamStat struct {
	Department string
	Count      int
}

type KeywordStat struct {
	Keyword string
	Count   int
}

type UserStat struct {
	User  *User
	Count int
}

type AnalyticsReport struct {
	TotalRecognitions     int
	RecognitionsByTeam    []TeamStat
	RecognitionsByKeyword []KeywordStat
	TopRecognizers        []UserStat
	TopRecipients         []UserStat
}

// CreateRecognitionInput mirrors the GraphQL input type.
type CreateRecognitionInput struct {
	Message     string
	Emojis      []string
	Visibility  domain.Visibility
	IsAnonymous *bool
	RecipientID uuid.UUID
	Keywords    []string
}

// UpdateRecognitionInput mirrors the GraphQL input type.
type UpdateRecognitionInput struct {
	ID         uuid.UUID
	Message    *string
	Emojis     []string
	Visibility *domain.Visibility
	Keywords   []string
}

// RecognitionFilter mirrors the GraphQL input type. Filters combine
// conjunctively; keywords match by substring, OR'ed across the list.
type RecognitionFilter struct {
	RecipientID *uuid.UUID
	SenderID    *uuid.UUID
	Visibility  *domain.Visibility
	Department  *string
	Keywords    []string
}

// AnalyticsFilter mirrors the GraphQL input type.
type AnalyticsFilter struct {
	Department *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// AddReactionInput mirrors the GraphQL input type.
type AddReactionInput struct {
	RecognitionID uuid.UUID
	Emoji         string
}

// AddCommentInput mirrors the GraphQL input type.
type AddCommentInput struct {
	RecognitionID uuid.UUID
	Message       string
}
