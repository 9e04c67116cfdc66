package model

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/kudos-backend/internal/domain"
)

// NewUser maps a domain user onto the GraphQL model.
func NewUser(u *domain.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
		ManagerID:  u.ManagerID,
		CreatedAt:  u.CreatedAt,
	}
}

// NewUsers maps a slice of domain users.
func NewUsers(users []domain.User) []*User {
	out := make([]*User, 0, len(users))
	for i := range users {
		out = append(out, NewUser(&users[i]))
	}
	return out
}

// NewRecognition maps a domain recognition onto the GraphQL model,
// flattening the Sender sum type into isAnonymous + nullable senderId.
func NewRecognition(r *domain.Recognition) *Recognition {
	if r == nil {
		return nil
	}
	var senderID *uuid.UUID
	if id, known := r.Sender.UserID(); known {
		senderID = &id
	}
	return &Recognition{
		ID:          r.ID,
		Message:     r.Message,
		Emojis:      r.Emojis,
		Visibility:  r.Visibility,
		IsAnonymous: r.Sender.IsAnonymous(),
		SenderID:    senderID,
		RecipientID: r.RecipientID,
		Keywords:    r.Keywords,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// NewRecognitions maps a slice of domain recognitions.
func NewRecognitions(recs []domain.Recognition) []*Recognition {
	out := make([]*Recognition, 0, len(recs))
	for i := range recs {
		out = append(out, NewRecognition(&recs[i]))
	}
	return out
}

// NewReaction maps a domain reaction onto the GraphQL model.
func NewReaction(r *domain.Reaction) *Reaction {
	if r == nil {
		return nil
	}
	return &Reaction{
		ID:            r.ID,
		RecognitionID: r.RecognitionID,
		UserID:        r.UserID,
		Emoji:         r.Emoji,
		CreatedAt:     r.CreatedAt,
	}
}

// NewComment maps a domain comment onto the GraphQL model.
func NewComment(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:            c.ID,
		RecognitionID: c.RecognitionID,
		UserID:        c.UserID,
		Message:       c.Message,
		CreatedAt:     c.CreatedAt,
	}
}

// NewAnalyticsReport maps a domain report onto the GraphQL model.
func NewAnalyticsReport(r *domain.AnalyticsReport) *AnalyticsReport {
	if r == nil {
		return nil
	}
	report := &AnalyticsReport{
		TotalRecognitions:     r.TotalRecognitions,
		RecognitionsByTeam:    make([]TeamStat, 0, len(r.RecognitionsByTeam)),
		RecognitionsByKeyword: make([]KeywordStat, 0, len(r.RecognitionsByKeyword)),
		TopRecognizers:        make([]UserStat, 0, len(r.TopRecognizers)),
		TopRecipients:         make([]UserStat, 0, len(r.TopRecipients)),
	}
	for _, s := range r.RecognitionsByTeam {
		report.RecognitionsByTeam = append(report.RecognitionsByTeam, TeamStat(s))
	}
	for _, s := range r.RecognitionsByKeyword {
		report.RecognitionsByKeyword = append(report.RecognitionsByKeyword, KeywordStat(s))
	}
	for _, s := range r.TopRecognizers {
		report.TopRecognizers = append(report.TopRecognizers, UserStat{User: NewUser(s.User), Count: s.Count})
	}
	for _, s := range r.TopRecipients {
		report.TopRecipients = append(report.TopRecipients, UserStat{User: NewUser(s.User), Count: s.Count})
	}
	return report
}
