package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"coliving_server/config"
	"coliving_server/metrics"
	"coliving_server/models"
)

// FeedEntry is one candidate presented to a swiping user.
type FeedEntry struct {
	Profile models.Profile            `json:"profile"`
	Score   models.CompatibilityScore `json:"score"`
}

// FeedService builds the next batch of candidates for an actor. The
// ordering is strictly deterministic: score descending, profile id
// ascending, with insufficient-data candidates appended at the end so
// incomplete profiles stay discoverable without polluting the ranking.
type FeedService struct {
	Profiles  ProfileStore
	Decisions DecisionStore
	Matches   MatchStore
	Features  *FeatureService
	Scorer    *ScoreService
	Feed      config.FeedConfig
	Log       *zap.Logger
}

// NextBatch returns up to batchSize candidates for the actor, excluding the
// actor themselves, every subject they already decided on, and every
// existing match. Refreshing with unchanged inputs returns the same
// ordering.
func (fs *FeedService) NextBatch(ctx context.Context, actorID string, batchSize int) ([]FeedEntry, error) {
	metrics.FeedRequests.Inc()

	if batchSize <= 0 {
		batchSize = fs.Feed.DefaultBatchSize
	}
	if batchSize > fs.Feed.MaxBatchSize {
		batchSize = fs.Feed.MaxBatchSize
	}

	actorVector, err := fs.Features.VectorForProfile(ctx, actorID)
	if err != nil {
		return nil, err
	}

	excluded, err := fs.excludedSubjects(ctx, actorID)
	if err != nil {
		return nil, err
	}

	candidates, err := fs.Profiles.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var ranked, insufficient []FeedEntry
	for i := range candidates {
		candidate := candidates[i]
		if candidate.ProfileID == actorID || excluded[candidate.ProfileID] {
			continue
		}

		candidateVector, err := fs.Features.VectorFor(ctx, &candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to build vector for %s: %w", candidate.ProfileID, err)
		}
		score := fs.Scorer.Score(actorVector, candidateVector)

		entry := FeedEntry{Profile: candidate, Score: score}
		if score.Insufficient {
			insufficient = append(insufficient, entry)
		} else {
			ranked = append(ranked, entry)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score.Raw != ranked[j].Score.Raw {
			return ranked[i].Score.Raw > ranked[j].Score.Raw
		}
		return ranked[i].Profile.ProfileID < ranked[j].Profile.ProfileID
	})
	sort.SliceStable(insufficient, func(i, j int) bool {
		return insufficient[i].Profile.ProfileID < insufficient[j].Profile.ProfileID
	})

	batch := append(ranked, insufficient...)
	if len(batch) > batchSize {
		batch = batch[:batchSize]
	}

	metrics.FeedBatchSize.Observe(float64(len(batch)))
	fs.Log.Debug("feed batch built",
		zap.String("actorId", actorID),
		zap.Int("candidates", len(batch)),
	)
	return batch, nil
}

// excludedSubjects collects every profile the actor already decided on or
// matched with. Matches are excluded independently of decisions.
func (fs *FeedService) excludedSubjects(ctx context.Context, actorID string) (map[string]bool, error) {
	excluded := make(map[string]bool)

	decisions, err := fs.Decisions.ListByActor(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions for %s: %w", actorID, err)
	}
	for _, d := range decisions {
		excluded[d.SubjectID] = true
	}

	matches, err := fs.Matches.ListByProfile(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for %s: %w", actorID, err)
	}
	for _, m := range matches {
		if m.ProfileA == actorID {
			excluded[m.ProfileB] = true
		} else {
			excluded[m.ProfileA] = true
		}
	}
	return excluded, nil
}
