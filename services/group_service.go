package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"coliving_server/models"
)

// GroupService aggregates pairwise compatibility into group-level scores.
// Group membership invariants (size 2-4, one group per profile) are owned
// by the group-management collaborator; the member list is consumed as
// given.
type GroupService struct {
	Groups   GroupStore
	Features *FeatureService
	Scorer   *ScoreService
	Log      *zap.Logger
}

// ScoreCandidateForGroup scores a candidate against every current member
// and aggregates as the minimum (ranking key) alongside the average
// (display). A group is only as compatible as its weakest link, so the
// minimum is what candidates are ranked by. Member pairs without enough
// data are skipped from both aggregates; when no pair is scoreable the
// whole result is Insufficient.
func (gs *GroupService) ScoreCandidateForGroup(ctx context.Context, candidateID, groupID string) (*models.GroupCompatibilityScore, error) {
	group, err := gs.Groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return gs.scoreCandidate(ctx, candidateID, group)
}

func (gs *GroupService) scoreCandidate(ctx context.Context, candidateID string, group *models.Group) (*models.GroupCompatibilityScore, error) {
	candidateVector, err := gs.Features.VectorForProfile(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	result := &models.GroupCompatibilityScore{
		CandidateID: candidateID,
		GroupID:     group.GroupID,
	}

	minRaw := math.Inf(1)
	sumRaw := 0.0
	scoreable := 0

	for _, memberID := range group.MemberIDs {
		if memberID == candidateID {
			continue
		}
		memberVector, err := gs.Features.VectorForProfile(ctx, memberID)
		if err != nil {
			return nil, fmt.Errorf("failed to build vector for member %s: %w", memberID, err)
		}

		score := gs.Scorer.Score(candidateVector, memberVector)
		result.PerMember = append(result.PerMember, models.MemberScore{
			MemberID:     memberID,
			Overall:      score.Overall,
			Raw:          score.Raw,
			Insufficient: score.Insufficient,
		})
		if score.Insufficient {
			continue
		}

		scoreable++
		sumRaw += score.Raw
		if score.Raw < minRaw {
			minRaw = score.Raw
		}
	}

	if scoreable == 0 {
		result.Insufficient = true
		return result, nil
	}

	result.RawMinimum = minRaw
	result.Minimum = int(math.Round(minRaw))
	result.Average = sumRaw / float64(scoreable)
	return result, nil
}

// RankCandidates orders candidates for a group: minimum score descending,
// then average descending, then candidate id ascending so the ordering is
// deterministic. Candidates without enough data come last, id ascending.
func (gs *GroupService) RankCandidates(ctx context.Context, groupID string, candidateIDs []string) ([]models.GroupCompatibilityScore, error) {
	group, err := gs.Groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	scores := make([]models.GroupCompatibilityScore, 0, len(candidateIDs))
	for _, candidateID := range candidateIDs {
		score, err := gs.scoreCandidate(ctx, candidateID, group)
		if err != nil {
			return nil, err
		}
		scores = append(scores, *score)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.Insufficient != b.Insufficient {
			return !a.Insufficient
		}
		if a.Insufficient {
			return a.CandidateID < b.CandidateID
		}
		if a.RawMinimum != b.RawMinimum {
			return a.RawMinimum > b.RawMinimum
		}
		if a.Average != b.Average {
			return a.Average > b.Average
		}
		return a.CandidateID < b.CandidateID
	})
	return scores, nil
}
