package services

// In-memory store implementations. Used by tests and local development in
// place of DynamoDB; the match store reproduces the same create-if-absent
// atomicity under a mutex.

import (
	"context"
	"sort"
	"sync"

	"coliving_server/models"
)

// MemoryProfileStore is a map-backed ProfileStore.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]models.Profile)}
}

// Add inserts or replaces a profile.
func (s *MemoryProfileStore) Add(profile models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ProfileID] = profile
}

func (s *MemoryProfileStore) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[profileID]
	if !ok || !profile.Active {
		return nil, models.ErrProfileNotFound
	}
	copied := profile
	return &copied, nil
}

func (s *MemoryProfileStore) ListActive(ctx context.Context) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profiles := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		if p.Active {
			profiles = append(profiles, p)
		}
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ProfileID < profiles[j].ProfileID
	})
	return profiles, nil
}

// MemoryDecisionStore is a map-backed DecisionStore keyed by (actor, subject).
type MemoryDecisionStore struct {
	mu        sync.RWMutex
	decisions map[string]map[string]models.Decision
}

func NewMemoryDecisionStore() *MemoryDecisionStore {
	return &MemoryDecisionStore{decisions: make(map[string]map[string]models.Decision)}
}

func (s *MemoryDecisionStore) Put(ctx context.Context, decision models.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byActor, ok := s.decisions[decision.ActorID]
	if !ok {
		byActor = make(map[string]models.Decision)
		s.decisions[decision.ActorID] = byActor
	}
	byActor[decision.SubjectID] = decision
	return nil
}

func (s *MemoryDecisionStore) Get(ctx context.Context, actorID, subjectID string) (*models.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	decision, ok := s.decisions[actorID][subjectID]
	if !ok {
		return nil, nil
	}
	copied := decision
	return &copied, nil
}

func (s *MemoryDecisionStore) Latest(ctx context.Context, actorID string) (*models.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Decision
	for subjectID := range s.decisions[actorID] {
		decision := s.decisions[actorID][subjectID]
		if latest == nil || decision.CreatedAt.After(latest.CreatedAt) {
			copied := decision
			latest = &copied
		}
	}
	return latest, nil
}

func (s *MemoryDecisionStore) Delete(ctx context.Context, actorID, subjectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.decisions[actorID], subjectID)
	return nil
}

func (s *MemoryDecisionStore) ListByActor(ctx context.Context, actorID string) ([]models.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	decisions := make([]models.Decision, 0, len(s.decisions[actorID]))
	for _, d := range s.decisions[actorID] {
		decisions = append(decisions, d)
	}
	sort.Slice(decisions, func(i, j int) bool {
		return decisions[i].CreatedAt.Before(decisions[j].CreatedAt)
	})
	return decisions, nil
}

// MemoryMatchStore is a map-backed MatchStore. CreateIfAbsent holds the
// write lock across check and insert so exactly one concurrent caller wins.
type MemoryMatchStore struct {
	mu      sync.RWMutex
	matches map[string]models.Match
}

func NewMemoryMatchStore() *MemoryMatchStore {
	return &MemoryMatchStore{matches: make(map[string]models.Match)}
}

func (s *MemoryMatchStore) CreateIfAbsent(ctx context.Context, match models.Match) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.matches[match.PairID]; exists {
		return false, nil
	}
	s.matches[match.PairID] = match
	return true, nil
}

func (s *MemoryMatchStore) Get(ctx context.Context, pairID string) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[pairID]
	if !ok {
		return nil, nil
	}
	copied := match
	return &copied, nil
}

func (s *MemoryMatchStore) ListByProfile(ctx context.Context, profileID string) ([]models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []models.Match
	for _, m := range s.matches {
		if m.ProfileA == profileID || m.ProfileB == profileID {
			matches = append(matches, m)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].PairID < matches[j].PairID
	})
	return matches, nil
}

// MemoryGroupStore is a map-backed GroupStore.
type MemoryGroupStore struct {
	mu     sync.RWMutex
	groups map[string]models.Group
}

func NewMemoryGroupStore() *MemoryGroupStore {
	return &MemoryGroupStore{groups: make(map[string]models.Group)}
}

// Add inserts or replaces a group.
func (s *MemoryGroupStore) Add(group models.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[group.GroupID] = group
}

func (s *MemoryGroupStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups[groupID]
	if !ok {
		return nil, models.ErrGroupNotFound
	}
	copied := group
	return &copied, nil
}
