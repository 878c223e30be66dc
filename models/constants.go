package models

// Profile kinds
const (
	ProfileKindPerson   = "person"
	ProfileKindProperty = "property"
)

// Decision verdicts
const (
	VerdictLike      = "like"
	VerdictSuperLike = "superlike"
	VerdictPass      = "pass"
)

// Scoring dimensions
const (
	DimensionBudgetLocation = "budgetLocation"
	DimensionLifestyle      = "lifestyle"
	DimensionSocial         = "social"
	DimensionPractical      = "practical"
	DimensionValues         = "values"
)

// DimensionOrder is the canonical iteration order for dimensions. Scoring
// and serialization both follow it so results stay deterministic.
var DimensionOrder = []string{
	DimensionBudgetLocation,
	DimensionLifestyle,
	DimensionSocial,
	DimensionPractical,
	DimensionValues,
}

// DynamoDB table names
const (
	ProfilesTable  = "Profiles"
	DecisionsTable = "Decisions"
	MatchesTable   = "Matches"
	GroupsTable    = "Groups"
)

// DecisionsByActorIndex is the GSI used to list an actor's decisions by
// recency (actorId hash key, createdAt range key).
const DecisionsByActorIndex = "actorId-createdAt-index"

// IsPositiveVerdict reports whether a verdict counts toward a mutual match.
func IsPositiveVerdict(verdict string) bool {
	return verdict == VerdictLike || verdict == VerdictSuperLike
}

// IsValidVerdict reports whether the verdict is one of the known swipe actions.
func IsValidVerdict(verdict string) bool {
	switch verdict {
	case VerdictLike, VerdictSuperLike, VerdictPass:
		return true
	}
	return false
}
