package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coliving_server/models"
)

func newTestDecisionService(t *testing.T) (*DecisionService, *MemoryProfileStore, *recorderPublisher) {
	t.Helper()
	profiles := NewMemoryProfileStore()
	recorder := &recorderPublisher{}
	service := NewDecisionService(
		NewMemoryDecisionStore(),
		NewMemoryMatchStore(),
		profiles,
		recorder,
		zap.NewNop(),
	)
	return service, profiles, recorder
}

func TestRecordDecisionValidation(t *testing.T) {
	service, profiles, _ := newTestDecisionService(t)
	profiles.Add(newTestProfile("alice", nil))
	profiles.Add(newTestProfile("bob", nil))
	ctx := context.Background()

	_, err := service.RecordDecision(ctx, "alice", "bob", "maybe")
	assert.ErrorIs(t, err, models.ErrInvalidVerdict)

	_, err = service.RecordDecision(ctx, "alice", "alice", models.VerdictLike)
	assert.ErrorIs(t, err, models.ErrSelfDecision)

	_, err = service.RecordDecision(ctx, "alice", "ghost", models.VerdictLike)
	assert.ErrorIs(t, err, models.ErrProfileNotFound)
}

func TestRecordDecisionMutualMatch(t *testing.T) {
	service, profiles, recorder := newTestDecisionService(t)
	profiles.Add(newTestProfile("alice", nil))
	profiles.Add(newTestProfile("bob", nil))
	ctx := context.Background()

	first, err := service.RecordDecision(ctx, "bob", "alice", models.VerdictLike)
	require.NoError(t, err)
	assert.Nil(t, first.Match)
	assert.False(t, first.Duplicate)

	second, err := service.RecordDecision(ctx, "alice", "bob", models.VerdictSuperLike)
	require.NoError(t, err)
	require.NotNil(t, second.Match)
	assert.Equal(t, "alice", second.Match.ProfileA)
	assert.Equal(t, "bob", second.Match.ProfileB)
	assert.Equal(t, models.PairKey("alice", "bob"), second.Match.PairID)

	events := recorder.matchEvents()
	require.Len(t, events, 1)
	assert.Equal(t, second.Match.MatchID, events[0].MatchID)
}

func TestRecordDecisionPassNeverMatches(t *testing.T) {
	service, profiles, recorder := newTestDecisionService(t)
	profiles.Add(newTestProfile("alice", nil))
	profiles.Add(newTestProfile("bob", nil))
	ctx := context.Background()

	_, err := service.RecordDecision(ctx, "bob", "alice", models.VerdictLike)
	require.NoError(t, err)

	result, err := service.RecordDecision(ctx, "alice", "bob", models.VerdictPass)
	require.NoError(t, err)
	assert.Nil(t, result.Match)
	assert.Empty(t, recorder.matchEvents())
}

func TestRecordDecisionIdempotent(t *testing.T) {
	service, profiles, recorder := newTestDecisionService(t)
	profiles.Add(newTestProfile("alice", nil))
	profiles.Add(newTestProfile("bob", nil))
	ctx := context.Background()

	_, err := service.RecordDecision(ctx, "alice", "bob", models.VerdictLike)
	require.NoError(t, err)
	require.Len(t, recorder.decisionEvents(), 1)

	// The identical re-swipe changes nothing and fires nothing.
	repeat, err := service.RecordDecision(ctx, "alice", "bob", models.VerdictLike)
	require.NoError(t, err)
	assert.True(t, repeat.Duplicate)
	assert.Len(t, recorder.decisionEvents(), 1)

	// A changed verdict supersedes the stored decision.
	changed, err := service.RecordDecision(ctx, "alice", "bob", models.VerdictPass)
	require.NoError(t, err)
	assert.False(t, changed.Duplicate)
	assert.Equal(t, models.VerdictPass, changed.Decision.Verdict)
	assert.Len(t, recorder.decisionEvents(), 2)

	stored, err := service.Decisions.Get(ctx, "alice", "bob")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.VerdictPass, stored.Verdict)
}

func TestRecordDecisionDuplicateAfterMatch(t *testing.T) {
	service, profiles, recorder := newTestDecisionService(t)
	profiles.Add(newTestProfile("alice", nil))
	profiles.Add(newTestProfile("bob", nil))
	ctx := context.Background()

	_, err := service.RecordDecision(ctx, "bob", "alice", models.VerdictLike)
	require.NoError(t, err)
	_, err = service.RecordDecision(ctx, "alice", "bob", models.VerdictLike)
	require.NoError(t, err)
	require.Len(t, recorder.matchEvents(), 1)

	// Re-swiping after the match reports the existing match without a
	// second event.
	repeat, err := service.RecordDecision(ctx, "alice", "bob", models.VerdictLike)
	require.NoError(t, err)
	assert.True(t, repeat.Duplicate)
	require.NotNil(t, repeat.Match)
	assert.Len(t, recorder.matchEvents(), 1)
}

func TestConcurrentMutualLikesCreateOneMatch(t *testing.T) {
	service, profiles, recorder := newTestDecisionService(t)
	profiles.Add(newTestProfile("alice", nil))
	profiles.Add(newTestProfile("bob", nil))
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		actor, subject := "alice", "bob"
		if i%2 == 1 {
			actor, subject = "bob", "alice"
		}
		go func(actor, subject string) {
			defer wg.Done()
			_, err := service.RecordDecision(ctx, actor, subject, models.VerdictLike)
			assert.NoError(t, err)
		}(actor, subject)
	}
	wg.Wait()

	matches, err := service.Matches.ListByProfile(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Len(t, recorder.matchEvents(), 1)
}

func TestUndoLast(t *testing.T) {
	service, profiles, _ := newTestDecisionService(t)
	profiles.Add(newTestProfile("alice", nil))
	profiles.Add(newTestProfile("bob", nil))
	profiles.Add(newTestProfile("carol", nil))
	ctx := context.Background()

	_, err := service.UndoLast(ctx, "alice")
	assert.ErrorIs(t, err, models.ErrNothingToUndo)

	// Force distinct timestamps so "latest" is unambiguous.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	service.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	_, err = service.RecordDecision(ctx, "alice", "bob", models.VerdictPass)
	require.NoError(t, err)
	_, err = service.RecordDecision(ctx, "alice", "carol", models.VerdictLike)
	require.NoError(t, err)

	restored, err := service.UndoLast(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "carol", restored.ProfileID)

	gone, err := service.Decisions.Get(ctx, "alice", "carol")
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Exactly one undo deep: the next undo reverts the pass on bob.
	restored, err = service.UndoLast(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "bob", restored.ProfileID)

	_, err = service.UndoLast(ctx, "alice")
	assert.ErrorIs(t, err, models.ErrNothingToUndo)
}

func TestUndoLastRefusesMatchedDecision(t *testing.T) {
	service, profiles, _ := newTestDecisionService(t)
	profiles.Add(newTestProfile("alice", nil))
	profiles.Add(newTestProfile("bob", nil))
	ctx := context.Background()

	_, err := service.RecordDecision(ctx, "bob", "alice", models.VerdictLike)
	require.NoError(t, err)
	_, err = service.RecordDecision(ctx, "alice", "bob", models.VerdictLike)
	require.NoError(t, err)

	_, err = service.UndoLast(ctx, "alice")
	assert.ErrorIs(t, err, models.ErrAlreadyMatched)

	// Decision and match are untouched.
	decision, err := service.Decisions.Get(ctx, "alice", "bob")
	require.NoError(t, err)
	require.NotNil(t, decision)
	match, err := service.Matches.Get(ctx, models.PairKey("alice", "bob"))
	require.NoError(t, err)
	assert.NotNil(t, match)
}

func TestMutualMatchScenario(t *testing.T) {
	// Two compatible seekers: overlapping budgets around 800 EUR, the same
	// preferred area, both quiet.
	profiles := NewMemoryProfileStore()
	profiles.Add(newTestProfile("anna", map[string]models.AttributeValue{
		AttrBudget:         models.SpanAttr(700, 900),
		AttrPreferredAreas: models.SetAttr("brussels"),
		AttrNoiseTolerance: models.NumberAttr(2),
	}))
	profiles.Add(newTestProfile("ben", map[string]models.AttributeValue{
		AttrBudget:         models.SpanAttr(720, 920),
		AttrPreferredAreas: models.SetAttr("brussels"),
		AttrNoiseTolerance: models.NumberAttr(3),
	}))

	features := newTestFeatureService(profiles)
	scorer := newTestScoreService()
	ctx := context.Background()

	vectorA, err := features.VectorForProfile(ctx, "anna")
	require.NoError(t, err)
	vectorB, err := features.VectorForProfile(ctx, "ben")
	require.NoError(t, err)
	score := scorer.Score(vectorA, vectorB)
	require.False(t, score.Insufficient)
	assert.Greater(t, score.Overall, 70)

	recorder := &recorderPublisher{}
	service := NewDecisionService(NewMemoryDecisionStore(), NewMemoryMatchStore(), profiles, recorder, zap.NewNop())

	_, err = service.RecordDecision(ctx, "anna", "ben", models.VerdictLike)
	require.NoError(t, err)
	result, err := service.RecordDecision(ctx, "ben", "anna", models.VerdictLike)
	require.NoError(t, err)
	require.NotNil(t, result.Match)
	assert.Len(t, recorder.matchEvents(), 1)

	// Re-swiping the matched pair stays a no-op.
	again, err := service.RecordDecision(ctx, "anna", "ben", models.VerdictLike)
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.Len(t, recorder.matchEvents(), 1)
}
