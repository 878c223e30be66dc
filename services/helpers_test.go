package services

import (
	"context"
	"sync"
	"time"

	"coliving_server/config"
	"coliving_server/logger"
	"coliving_server/models"
)

// ==========================
// Profile Builders
// ==========================

func newTestProfile(id string, attrs map[string]models.AttributeValue) models.Profile {
	return models.Profile{
		ProfileID:   id,
		Kind:        models.ProfileKindPerson,
		DisplayName: "Test " + id,
		Attributes:  attrs,
		AttrVersion: 1,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

// valuesOnlyProfile fills in just the coreValues attribute, so pairwise
// scores reduce to ((jaccard + neutral) / 2) * 100 on the values dimension.
func valuesOnlyProfile(id string, core ...string) models.Profile {
	return newTestProfile(id, map[string]models.AttributeValue{
		AttrCoreValues: models.SetAttr(core...),
	})
}

func completeProfileAttrs() map[string]models.AttributeValue {
	return map[string]models.AttributeValue{
		AttrBudget:         models.SpanAttr(700, 900),
		AttrPreferredAreas: models.SetAttr("Ixelles", "Saint-Gilles"),
		AttrSleepSchedule:  models.CategoryAttr("early"),
		AttrCleanliness:    models.NumberAttr(8),
		AttrSmoking:        models.CategoryAttr("no"),
		AttrNoiseTolerance: models.NumberAttr(3),
		AttrSocialEnergy:   models.NumberAttr(6),
		AttrEventInterest:  models.CategoryAttr("medium"),
		AttrGuestFrequency: models.CategoryAttr("sometimes"),
		AttrPets:           models.CategoryAttr("no"),
		AttrMoveInWindow:   models.SpanAttr(100, 130),
		AttrLeaseDuration:  models.SpanAttr(6, 12),
		AttrCoreValues:     models.SetAttr("sustainability", "quiet home"),
		AttrDealBreakers:   models.SetAttr("smoking indoors"),
	}
}

// ==========================
// Service Builders
// ==========================

func newTestFeatureService(profiles *MemoryProfileStore) *FeatureService {
	return &FeatureService{
		Profiles: profiles,
		Cache:    NewMemoryVectorCache(),
		Scoring:  config.DefaultScoring(),
		Log:      logger.NewNop(),
	}
}

func newTestScoreService() *ScoreService {
	return &ScoreService{Scoring: config.DefaultScoring()}
}

// ==========================
// Recording Event Publisher
// ==========================

// recorderPublisher captures published events; safe for concurrent use.
type recorderPublisher struct {
	mu        sync.Mutex
	matches   []models.MatchCreatedEvent
	decisions []models.DecisionRecordedEvent
}

func (r *recorderPublisher) PublishMatchCreated(ctx context.Context, event models.MatchCreatedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = append(r.matches, event)
	return nil
}

func (r *recorderPublisher) PublishDecisionRecorded(ctx context.Context, event models.DecisionRecordedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions = append(r.decisions, event)
	return nil
}

func (r *recorderPublisher) matchEvents() []models.MatchCreatedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.MatchCreatedEvent, len(r.matches))
	copy(out, r.matches)
	return out
}

func (r *recorderPublisher) decisionEvents() []models.DecisionRecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.DecisionRecordedEvent, len(r.decisions))
	copy(out, r.decisions)
	return out
}
