package services

import (
	"context"
	"errors"
	"fmt"

	"coliving_server/models"
)

// MatchService serves match queries for dashboards and messaging.
type MatchService struct {
	Matches  MatchStore
	Profiles ProfileStore
}

// MatchedProfile pairs a match with the counterpart's profile summary.
type MatchedProfile struct {
	MatchID     string `json:"matchId"`
	PairID      string `json:"pairId"`
	ProfileID   string `json:"profileId"`
	DisplayName string `json:"displayName,omitempty"`
	Kind        string `json:"kind"`
}

// GetCurrentMatches lists the matches for a profile, enriched with the
// counterpart profile. Counterparts that were soft-invalidated since the
// match are skipped rather than failing the whole listing.
func (ms *MatchService) GetCurrentMatches(ctx context.Context, profileID string) ([]MatchedProfile, error) {
	matches, err := ms.Matches.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for %s: %w", profileID, err)
	}

	matched := make([]MatchedProfile, 0, len(matches))
	for _, m := range matches {
		otherID := m.ProfileA
		if otherID == profileID {
			otherID = m.ProfileB
		}

		other, err := ms.Profiles.GetProfile(ctx, otherID)
		if err != nil {
			if errors.Is(err, models.ErrProfileNotFound) {
				continue
			}
			return nil, err
		}

		matched = append(matched, MatchedProfile{
			MatchID:     m.MatchID,
			PairID:      m.PairID,
			ProfileID:   other.ProfileID,
			DisplayName: other.DisplayName,
			Kind:        other.Kind,
		})
	}
	return matched, nil
}

// IsMatched reports whether the unordered pair already has a match.
func (ms *MatchService) IsMatched(ctx context.Context, a, b string) (bool, error) {
	match, err := ms.Matches.Get(ctx, models.PairKey(a, b))
	if err != nil {
		return false, err
	}
	return match != nil, nil
}
