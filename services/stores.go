package services

import (
	"context"

	"coliving_server/models"
)

// ProfileStore is the read-only boundary to the profile-storage
// collaborator. GetProfile returns models.ErrProfileNotFound for unknown or
// soft-invalidated profiles.
type ProfileStore interface {
	GetProfile(ctx context.Context, profileID string) (*models.Profile, error)
	ListActive(ctx context.Context) ([]models.Profile, error)
}

// DecisionStore holds swipe decisions. Put overwrites any previous decision
// for the same (actor, subject) pair, so at most one active decision exists
// per pair.
type DecisionStore interface {
	Put(ctx context.Context, decision models.Decision) error
	Get(ctx context.Context, actorID, subjectID string) (*models.Decision, error)
	Latest(ctx context.Context, actorID string) (*models.Decision, error)
	Delete(ctx context.Context, actorID, subjectID string) error
	ListByActor(ctx context.Context, actorID string) ([]models.Decision, error)
}

// MatchStore holds mutual matches. CreateIfAbsent must be atomic with
// respect to concurrent calls for the same pair id: exactly one caller
// observes created=true.
type MatchStore interface {
	CreateIfAbsent(ctx context.Context, match models.Match) (created bool, err error)
	Get(ctx context.Context, pairID string) (*models.Match, error)
	ListByProfile(ctx context.Context, profileID string) ([]models.Match, error)
}

// GroupStore is the read-only boundary to the group-management
// collaborator. Size and single-membership invariants are enforced there,
// not here.
type GroupStore interface {
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
}

// VectorCache stores computed feature vectors keyed by profile id and
// attribute version. Misses return (nil, nil). A few seconds of staleness
// is acceptable; scores are advisory.
type VectorCache interface {
	Get(ctx context.Context, profileID string, version int64) (*models.FeatureVector, error)
	Set(ctx context.Context, vector *models.FeatureVector) error
}
