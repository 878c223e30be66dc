package models

import "time"

// MatchCreatedEvent is published exactly once per pair, the instant the
// second positive decision lands. Consumed by messaging and notifications.
type MatchCreatedEvent struct {
	PairID    string    `json:"pairId"`
	MatchID   string    `json:"matchId"`
	ProfileA  string    `json:"profileA"`
	ProfileB  string    `json:"profileB"`
	CreatedAt time.Time `json:"createdAt"`
}

// DecisionRecordedEvent is published for every state-changing swipe.
// Consumed by analytics.
type DecisionRecordedEvent struct {
	ActorID   string    `json:"actorId"`
	SubjectID string    `json:"subjectId"`
	Verdict   string    `json:"verdict"`
	CreatedAt time.Time `json:"createdAt"`
}
