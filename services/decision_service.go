package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coliving_server/metrics"
	"coliving_server/models"
)

// DecisionService records swipe decisions idempotently and runs the mutual
// match detector after every positive verdict.
type DecisionService struct {
	Decisions DecisionStore
	Matches   MatchStore
	Profiles  ProfileStore
	Events    EventPublisher
	Log       *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewDecisionService(decisions DecisionStore, matches MatchStore, profiles ProfileStore, events EventPublisher, log *zap.Logger) *DecisionService {
	return &DecisionService{
		Decisions: decisions,
		Matches:   matches,
		Profiles:  profiles,
		Events:    events,
		Log:       log,
		now:       time.Now,
	}
}

// RecordDecision stores a swipe and detects a mutual match. Re-recording
// the identical (actor, subject, verdict) is a no-op: no second decision,
// no second event. A changed verdict supersedes the previous decision.
func (s *DecisionService) RecordDecision(ctx context.Context, actorID, subjectID, verdict string) (*models.DecisionResult, error) {
	if !models.IsValidVerdict(verdict) {
		return nil, models.ErrInvalidVerdict
	}
	if actorID == subjectID {
		return nil, models.ErrSelfDecision
	}
	if _, err := s.Profiles.GetProfile(ctx, subjectID); err != nil {
		return nil, err
	}

	existing, err := s.Decisions.Get(ctx, actorID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing decision: %w", err)
	}
	if existing != nil && existing.Verdict == verdict {
		metrics.DecisionsDuplicate.Inc()
		result := &models.DecisionResult{Decision: *existing, Duplicate: true}
		// The pair may already be matched; report it without re-firing events.
		match, err := s.Matches.Get(ctx, models.PairKey(actorID, subjectID))
		if err != nil {
			return nil, err
		}
		result.Match = match
		return result, nil
	}

	decision := models.Decision{
		ActorID:   actorID,
		SubjectID: subjectID,
		Verdict:   verdict,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Decisions.Put(ctx, decision); err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}
	metrics.DecisionsRecorded.WithLabelValues(verdict).Inc()

	_ = s.Events.PublishDecisionRecorded(ctx, models.DecisionRecordedEvent{
		ActorID:   actorID,
		SubjectID: subjectID,
		Verdict:   verdict,
		CreatedAt: decision.CreatedAt,
	})

	result := &models.DecisionResult{Decision: decision}
	if models.IsPositiveVerdict(verdict) {
		match, err := s.detectMatch(ctx, decision)
		if err != nil {
			return nil, err
		}
		result.Match = match
	}
	return result, nil
}

// detectMatch checks the opposite direction and, when both sides are
// positive, creates the match through the store's atomic create-if-absent.
// Only the caller that actually created the row publishes the event, so
// concurrent opposite-direction swipes still produce exactly one
// MatchCreated per pair.
func (s *DecisionService) detectMatch(ctx context.Context, decision models.Decision) (*models.Match, error) {
	reverse, err := s.Decisions.Get(ctx, decision.SubjectID, decision.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reverse decision: %w", err)
	}
	if reverse == nil || !models.IsPositiveVerdict(reverse.Verdict) {
		return nil, nil
	}

	pairID := models.PairKey(decision.ActorID, decision.SubjectID)
	a, b := decision.ActorID, decision.SubjectID
	if b < a {
		a, b = b, a
	}
	match := models.Match{
		PairID:    pairID,
		MatchID:   uuid.NewString(),
		ProfileA:  a,
		ProfileB:  b,
		CreatedAt: s.now().UTC(),
	}

	created, err := s.Matches.CreateIfAbsent(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	if !created {
		// Lost the race or already matched earlier; the winner published.
		return s.Matches.Get(ctx, pairID)
	}

	metrics.MatchesCreated.Inc()
	s.Log.Info("match created",
		zap.String("pairId", pairID),
		zap.String("matchId", match.MatchID),
	)
	_ = s.Events.PublishMatchCreated(ctx, models.MatchCreatedEvent{
		PairID:    match.PairID,
		MatchID:   match.MatchID,
		ProfileA:  match.ProfileA,
		ProfileB:  match.ProfileB,
		CreatedAt: match.CreatedAt,
	})
	return &match, nil
}

// UndoLast reverts the actor's single most recent decision and returns the
// restored subject profile. It fails with ErrNothingToUndo when no decision
// exists and ErrAlreadyMatched when the decision already produced a match
// (the match and both decisions stay untouched).
func (s *DecisionService) UndoLast(ctx context.Context, actorID string) (*models.Profile, error) {
	latest, err := s.Decisions.Latest(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest decision: %w", err)
	}
	if latest == nil {
		metrics.UndoResults.WithLabelValues("nothing").Inc()
		return nil, models.ErrNothingToUndo
	}

	match, err := s.Matches.Get(ctx, models.PairKey(actorID, latest.SubjectID))
	if err != nil {
		return nil, err
	}
	if match != nil {
		metrics.UndoResults.WithLabelValues("already_matched").Inc()
		return nil, models.ErrAlreadyMatched
	}

	if err := s.Decisions.Delete(ctx, actorID, latest.SubjectID); err != nil {
		return nil, fmt.Errorf("failed to delete decision: %w", err)
	}
	metrics.UndoResults.WithLabelValues("undone").Inc()
	s.Log.Info("decision undone",
		zap.String("actorId", actorID),
		zap.String("subjectId", latest.SubjectID),
	)

	return s.Profiles.GetProfile(ctx, latest.SubjectID)
}
