package domain

import "time"

// AnalyticsFilter narrows the recognition set fed into aggregation.
// Date bounds are inclusive when set.
type AnalyticsFilter struct {
	Department *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// TeamStat is a per-department recognition count.
type TeamStat struct {
	Department string
	Count      int
}

// KeywordStat is a per-keyword recognition count.
type KeywordStat struct {
	Keyword string
	Count   int
}

// UserStat is a per-user recognition count with the user resolved.
type UserStat struct {
	User  *User
	Count int
}

// AnalyticsReport aggregates a filtered recognition set. Rankings are
// sorted descending by count; ties keep first-encountered order.
type AnalyticsReport struct {
	TotalRecognitions     int
	RecognitionsByTeam    []TeamStat
	RecognitionsByKeyword []KeywordStat
	TopRecognizers        []UserStat
	TopRecipients         []UserStat
}
