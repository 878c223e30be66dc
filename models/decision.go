package models

import "time"

// Decision is a single recorded swipe. At most one active decision exists
// per (actor, subject) pair; a re-swipe supersedes the previous one.
type Decision struct {
	ActorID   string    `dynamodbav:"actorId" json:"actorId"`
	SubjectID string    `dynamodbav:"subjectId" json:"subjectId"`
	Verdict   string    `dynamodbav:"verdict" json:"verdict"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// DecisionResult is returned by RecordDecision. Match is non-nil only when
// this decision completed a mutual match; Duplicate marks a no-op re-swipe
// with the identical verdict.
type DecisionResult struct {
	Decision  Decision `json:"decision"`
	Match     *Match   `json:"match,omitempty"`
	Duplicate bool     `json:"duplicate"`
}
