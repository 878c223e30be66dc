package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	socketio "github.com/googollee/go-socket.io"
	"go.uber.org/zap"

	"coliving_server/models"
)

// EventPublisher delivers engine events to external collaborators
// (messaging, notifications, analytics).
type EventPublisher interface {
	PublishMatchCreated(ctx context.Context, event models.MatchCreatedEvent) error
	PublishDecisionRecorded(ctx context.Context, event models.DecisionRecordedEvent) error
}

// SNSPublisher publishes events as JSON to SNS topics. A topic with an
// empty ARN is skipped, so environments can enable the two streams
// independently.
type SNSPublisher struct {
	Client           *sns.Client
	MatchTopicARN    string
	DecisionTopicARN string
}

func (p *SNSPublisher) PublishMatchCreated(ctx context.Context, event models.MatchCreatedEvent) error {
	return p.publish(ctx, p.MatchTopicARN, event)
}

func (p *SNSPublisher) PublishDecisionRecorded(ctx context.Context, event models.DecisionRecordedEvent) error {
	return p.publish(ctx, p.DecisionTopicARN, event)
}

func (p *SNSPublisher) publish(ctx context.Context, topicARN string, event interface{}) error {
	if topicARN == "" {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	_, err = p.Client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Message:  aws.String(string(payload)),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topicARN, err)
	}
	return nil
}

// SocketPublisher pushes match events to both participants' rooms so open
// swipe sessions see "it's a match" immediately. Decision events are not
// broadcast; they only feed analytics.
type SocketPublisher struct {
	Server *socketio.Server
}

func (p *SocketPublisher) PublishMatchCreated(ctx context.Context, event models.MatchCreatedEvent) error {
	p.Server.BroadcastToRoom("/", event.ProfileA, "matchCreated", event)
	p.Server.BroadcastToRoom("/", event.ProfileB, "matchCreated", event)
	return nil
}

func (p *SocketPublisher) PublishDecisionRecorded(ctx context.Context, event models.DecisionRecordedEvent) error {
	return nil
}

// MultiPublisher fans an event out to every configured publisher. Delivery
// failures are logged and do not fail the swipe; the match row is already
// durable at this point.
type MultiPublisher struct {
	Publishers []EventPublisher
	Log        *zap.Logger
}

func (p *MultiPublisher) PublishMatchCreated(ctx context.Context, event models.MatchCreatedEvent) error {
	for _, pub := range p.Publishers {
		if err := pub.PublishMatchCreated(ctx, event); err != nil {
			p.Log.Error("failed to publish match event", zap.String("pairId", event.PairID), zap.Error(err))
		}
	}
	return nil
}

func (p *MultiPublisher) PublishDecisionRecorded(ctx context.Context, event models.DecisionRecordedEvent) error {
	for _, pub := range p.Publishers {
		if err := pub.PublishDecisionRecorded(ctx, event); err != nil {
			p.Log.Error("failed to publish decision event", zap.String("actorId", event.ActorID), zap.Error(err))
		}
	}
	return nil
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) PublishMatchCreated(ctx context.Context, event models.MatchCreatedEvent) error {
	return nil
}

func (NopPublisher) PublishDecisionRecorded(ctx context.Context, event models.DecisionRecordedEvent) error {
	return nil
}
