package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

const (
	streamName = "DROPSHIP"

	SubjectProductImported = "dropship.product.imported"
	SubjectProductPushed   = "dropship.product.pushed"
)

// Event is the audit payload published for catalog activity.
type Event struct {
	Subject   string                 `json:"-"`
	TenantID  string                 `json:"tenantId"`
	ActorID   string                 `json:"actorId,omitempty"`
	ProductID string                 `json:"productId"`
	StoreID   string                 `json:"storeId,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Publisher publishes catalog audit events to NATS JetStream. A nil
// *Publisher is safe to call; every method is a no-op, so the service
// runs unchanged when NATS is not configured.
type Publisher struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the dropship stream exists.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("dropship-catalog-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: []string{"dropship.>"},
	})
	if err != nil && err != nats.ErrStreamNameAlreadyInUse {
		logger.WithError(err).Warn("Failed to ensure dropship stream (may already exist)")
	}

	return &Publisher{
		nc:     nc,
		js:     js,
		logger: logger.WithField("component", "dropship-events"),
	}, nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p != nil && p.nc != nil {
		p.nc.Close()
	}
}

// PublishProductImported publishes an audit event for an inventory import.
func (p *Publisher) PublishProductImported(ctx context.Context, tenantID, actorID, productID string, variantCount int) {
	p.publish(ctx, Event{
		Subject:   SubjectProductImported,
		TenantID:  tenantID,
		ActorID:   actorID,
		ProductID: productID,
		Data:      map[string]interface{}{"variantCount": variantCount},
	})
}

// PublishProductPushed publishes an audit event for a store push.
func (p *Publisher) PublishProductPushed(ctx context.Context, tenantID, actorID, productID, storeID, externalID string) {
	p.publish(ctx, Event{
		Subject:   SubjectProductPushed,
		TenantID:  tenantID,
		ActorID:   actorID,
		ProductID: productID,
		StoreID:   storeID,
		Data:      map[string]interface{}{"externalProductId": externalID},
	})
}

// publish sends the event; failures are logged, never surfaced to the
// request path.
func (p *Publisher) publish(ctx context.Context, event Event) {
	if p == nil || p.js == nil {
		return
	}
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).Error("Failed to marshal event")
		return
	}

	if _, err := p.js.Publish(event.Subject, data, nats.Context(ctx)); err != nil {
		p.logger.WithError(err).WithField("subject", event.Subject).Warn("Failed to publish event")
	}
}
