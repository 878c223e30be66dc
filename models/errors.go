package models

import "errors"

// Sentinel errors surfaced to callers as explicit result variants. Handlers
// map them to user-facing responses instead of 500s.
var (
	// ErrProfileNotFound - the referenced profile does not exist or was
	// soft-invalidated.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrGroupNotFound - the referenced group does not exist.
	ErrGroupNotFound = errors.New("group not found")

	// ErrIncompleteProfile - a scoring dimension has zero attributes filled
	// in; the dimension is excluded and remaining weights renormalized.
	ErrIncompleteProfile = errors.New("profile incomplete for dimension")

	// ErrNothingToUndo - the actor has no undoable decision.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrAlreadyMatched - the most recent decision already produced a match;
	// undo requires an explicit unmatch instead.
	ErrAlreadyMatched = errors.New("decision already produced a match")

	// ErrSelfDecision - an actor cannot swipe on themselves.
	ErrSelfDecision = errors.New("cannot record a decision on yourself")

	// ErrInvalidVerdict - verdict is not like, superlike or pass.
	ErrInvalidVerdict = errors.New("invalid verdict")
)
