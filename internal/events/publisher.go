package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"

	"dashboard-service/internal/model"
)

// Publisher announces dashboard changes on the message bus so downstream
// consumers (notification routing, audit trail) can react. Publishing is
// best effort; callers fire these from a goroutine and never fail the
// originating request on a publish error.
type Publisher interface {
	PublishAlertCreated(alert *model.Alert) error
	PublishAlertUpdated(alert *model.Alert) error
	PublishAlertDeleted(alertID int) error
	PublishUserRoleChanged(userID uuid.UUID, role string) error
	PublishUserDeleted(userID uuid.UUID) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (Publisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type AlertCreatedEvent struct {
	EventType  string          `json:"event_type"`
	AlertID    int             `json:"alert_id"`
	ProductID  int             `json:"product_id"`
	Threshold  decimal.Decimal `json:"threshold"`
	CreatedBy  uuid.UUID       `json:"created_by"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type AlertUpdatedEvent struct {
	EventType  string          `json:"event_type"`
	AlertID    int             `json:"alert_id"`
	ProductID  int             `json:"product_id"`
	Threshold  decimal.Decimal `json:"threshold"`
	IsActive   bool            `json:"is_active"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type AlertDeletedEvent struct {
	EventType  string    `json:"event_type"`
	AlertID    int       `json:"alert_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type UserRoleChangedEvent struct {
	EventType  string    `json:"event_type"`
	UserID     uuid.UUID `json:"user_id"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

type UserDeletedEvent struct {
	EventType  string    `json:"event_type"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (p *NatsPublisher) PublishAlertCreated(alert *model.Alert) error {
	event := AlertCreatedEvent{
		EventType:  "alert.created",
		AlertID:    alert.ID,
		ProductID:  alert.ProductID,
		Threshold:  alert.Threshold,
		CreatedBy:  alert.CreatedBy,
		OccurredAt: time.Now(),
	}

	return p.publish("alert.created", event)
}

func (p *NatsPublisher) PublishAlertUpdated(alert *model.Alert) error {
	event := AlertUpdatedEvent{
		EventType:  "alert.updated",
		AlertID:    alert.ID,
		ProductID:  alert.ProductID,
		Threshold:  alert.Threshold,
		IsActive:   alert.IsActive,
		OccurredAt: time.Now(),
	}

	return p.publish("alert.updated", event)
}

func (p *NatsPublisher) PublishAlertDeleted(alertID int) error {
	event := AlertDeletedEvent{
		EventType:  "alert.deleted",
		AlertID:    alertID,
		OccurredAt: time.Now(),
	}

	return p.publish("alert.deleted", event)
}

func (p *NatsPublisher) PublishUserRoleChanged(userID uuid.UUID, role string) error {
	event := UserRoleChangedEvent{
		EventType:  "user.role_changed",
		UserID:     userID,
		Role:       role,
		OccurredAt: time.Now(),
	}

	return p.publish("user.role_changed", event)
}

func (p *NatsPublisher) PublishUserDeleted(userID uuid.UUID) error {
	event := UserDeletedEvent{
		EventType:  "user.deleted",
		UserID:     userID,
		OccurredAt: time.Now(),
	}

	return p.publish("user.deleted", event)
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	log.Printf("Published event to NATS on subject '%s'", subject)

	return nil
}
