package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"coliving_server/models"
	"coliving_server/utils"
)

// DynamoProfileStore reads profiles from the Profiles table.
type DynamoProfileStore struct {
	Dynamo *DynamoService
}

func (s *DynamoProfileStore) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	key := map[string]types.AttributeValue{
		"profileId": &types.AttributeValueMemberS{Value: profileID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.ProfilesTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", profileID, err)
	}
	if item == nil {
		return nil, models.ErrProfileNotFound
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", profileID, err)
	}
	if !profile.Active {
		return nil, models.ErrProfileNotFound
	}
	return &profile, nil
}

func (s *DynamoProfileStore) ListActive(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := s.Dynamo.ScanWithFilter(ctx, models.ProfilesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractBool(item, "active")
	}, &profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to list active profiles: %w", err)
	}
	return profiles, nil
}

// DynamoDecisionStore persists decisions in the Decisions table
// (PK actorId, SK subjectId) with a GSI by actorId+createdAt for undo.
type DynamoDecisionStore struct {
	Dynamo *DynamoService
}

// decisionRow mirrors models.Decision with createdAt stored as RFC3339Nano
// so the GSI range key sorts chronologically.
type decisionRow struct {
	ActorID   string `dynamodbav:"actorId"`
	SubjectID string `dynamodbav:"subjectId"`
	Verdict   string `dynamodbav:"verdict"`
	CreatedAt string `dynamodbav:"createdAt"`
}

func toDecisionRow(d models.Decision) decisionRow {
	return decisionRow{
		ActorID:   d.ActorID,
		SubjectID: d.SubjectID,
		Verdict:   d.Verdict,
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromDecisionRow(row decisionRow) (models.Decision, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return models.Decision{}, fmt.Errorf("bad createdAt on decision %s/%s: %w", row.ActorID, row.SubjectID, err)
	}
	return models.Decision{
		ActorID:   row.ActorID,
		SubjectID: row.SubjectID,
		Verdict:   row.Verdict,
		CreatedAt: createdAt,
	}, nil
}

func (s *DynamoDecisionStore) Put(ctx context.Context, decision models.Decision) error {
	return s.Dynamo.PutItem(ctx, models.DecisionsTable, toDecisionRow(decision))
}

func (s *DynamoDecisionStore) Get(ctx context.Context, actorID, subjectID string) (*models.Decision, error) {
	key := map[string]types.AttributeValue{
		"actorId":   &types.AttributeValueMemberS{Value: actorID},
		"subjectId": &types.AttributeValueMemberS{Value: subjectID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.DecisionsTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var row decisionRow
	if err := attributevalue.UnmarshalMap(item, &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decision: %w", err)
	}
	decision, err := fromDecisionRow(row)
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

func (s *DynamoDecisionStore) Latest(ctx context.Context, actorID string) (*models.Decision, error) {
	keyCondition := "actorId = :actor"
	expressionValues := map[string]types.AttributeValue{
		":actor": &types.AttributeValueMemberS{Value: actorID},
	}
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.DecisionsTable, models.DecisionsByActorIndex,
		keyCondition, expressionValues, 1, true)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var row decisionRow
	if err := attributevalue.UnmarshalMap(items[0], &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decision: %w", err)
	}
	decision, err := fromDecisionRow(row)
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

func (s *DynamoDecisionStore) Delete(ctx context.Context, actorID, subjectID string) error {
	key := map[string]types.AttributeValue{
		"actorId":   &types.AttributeValueMemberS{Value: actorID},
		"subjectId": &types.AttributeValueMemberS{Value: subjectID},
	}
	return s.Dynamo.DeleteItem(ctx, models.DecisionsTable, key)
}

func (s *DynamoDecisionStore) ListByActor(ctx context.Context, actorID string) ([]models.Decision, error) {
	keyCondition := "actorId = :actor"
	expressionValues := map[string]types.AttributeValue{
		":actor": &types.AttributeValueMemberS{Value: actorID},
	}
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.DecisionsTable, models.DecisionsByActorIndex,
		keyCondition, expressionValues, 0, false)
	if err != nil {
		return nil, err
	}

	decisions := make([]models.Decision, 0, len(items))
	for _, item := range items {
		var row decisionRow
		if err := attributevalue.UnmarshalMap(item, &row); err != nil {
			return nil, fmt.Errorf("failed to unmarshal decision: %w", err)
		}
		decision, err := fromDecisionRow(row)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, decision)
	}
	return decisions, nil
}

// DynamoMatchStore persists matches keyed by the unordered pair id. The
// conditional put makes check-then-create a single atomic step, which is
// what guarantees exactly one MatchCreated event per pair under concurrent
// opposite-direction swipes.
type DynamoMatchStore struct {
	Dynamo *DynamoService
}

func (s *DynamoMatchStore) CreateIfAbsent(ctx context.Context, match models.Match) (bool, error) {
	return s.Dynamo.PutItemIfAbsent(ctx, models.MatchesTable, "pairId", match)
}

func (s *DynamoMatchStore) Get(ctx context.Context, pairID string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"pairId": &types.AttributeValueMemberS{Value: pairID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

func (s *DynamoMatchStore) ListByProfile(ctx context.Context, profileID string) ([]models.Match, error) {
	var matches []models.Match
	err := s.Dynamo.ScanWithFilter(ctx, models.MatchesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "profileA") == profileID ||
			utils.ExtractString(item, "profileB") == profileID
	}, &matches)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for %s: %w", profileID, err)
	}
	return matches, nil
}

// DynamoGroupStore reads search-party groups from the Groups table.
type DynamoGroupStore struct {
	Dynamo *DynamoService
}

func (s *DynamoGroupStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	key := map[string]types.AttributeValue{
		"groupId": &types.AttributeValueMemberS{Value: groupID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.GroupsTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group %s: %w", groupID, err)
	}
	if item == nil {
		return nil, models.ErrGroupNotFound
	}

	var group models.Group
	if err := attributevalue.UnmarshalMap(item, &group); err != nil {
		return nil, fmt.Errorf("failed to unmarshal group %s: %w", groupID, err)
	}
	return &group, nil
}
