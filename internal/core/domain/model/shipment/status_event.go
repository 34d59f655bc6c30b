package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var (
	ErrStatusEventIsNotConstructed = errors.New("StatusEvent must be created via NewStatusEvent constructor")
	ErrStatusEventAlreadyPublished = errors.New("status event already published")
)

// EventType classifies status events. Only status changes are recorded here.
type EventType int

const (
	UnknownEventType EventType = iota
	StatusChange
)

func (t EventType) String() string {
	if t == StatusChange {
		return "STATUS_CHANGE"
	}
	return "UNKNOWN"
}

func ParseEventType(s string) (EventType, error) {
	if s == StatusChange.String() {
		return StatusChange, nil
	}
	return UnknownEventType, errs.NewValueIsInvalidErrorWithCause("event type is invalid", fmt.Errorf("%q is not a valid event type", s))
}

// StatusEvent is the audit record of one accepted status change. Its audit
// fields are immutable; the only later change is the outbox publication mark.
type StatusEvent struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	status      Status
	eventType   EventType
	description string
	location    *string
	createdAt   time.Time
	createdBy   string
	publishedAt *time.Time
	guard       guard.ConstructorGuard
}

// NewStatusEvent records entering status. A blank description is replaced
// with "Status changed to <STATUS>".
func NewStatusEvent(
	shipmentID kernel.UUID,
	status Status,
	description string,
	location *string,
	createdBy string,
	at time.Time,
) (*StatusEvent, error) {
	if strings.TrimSpace(description) == "" {
		description = fmt.Sprintf("Status changed to %s", status)
	}
	return RestoreStatusEvent(kernel.NewUUID(), shipmentID, status, StatusChange, description, location, at, createdBy, nil)
}

func RestoreStatusEvent(
	id kernel.UUID,
	shipmentID kernel.UUID,
	status Status,
	eventType EventType,
	description string,
	location *string,
	createdAt time.Time,
	createdBy string,
	publishedAt *time.Time,
) (*StatusEvent, error) {
	var errList []error
	errList = append(errList, id.Validate(), shipmentID.Validate(), status.Validate())
	if eventType != StatusChange {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("event type is invalid", fmt.Errorf("%d is not a valid event type", eventType)))
	}
	if strings.TrimSpace(createdBy) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("createdBy"))
	}
	if createdAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("createdAt"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	if location != nil && strings.TrimSpace(*location) == "" {
		location = nil
	}

	return &StatusEvent{
		id:          id,
		shipmentID:  shipmentID,
		status:      status,
		eventType:   eventType,
		description: description,
		location:    copyString(location),
		createdAt:   createdAt.UTC(),
		createdBy:   createdBy,
		publishedAt: utcCopy(publishedAt),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (e *StatusEvent) Validate() error {
	if e == nil {
		return ErrStatusEventIsNotConstructed
	}
	return e.guard.Validate(ErrStatusEventIsNotConstructed)
}

func (e *StatusEvent) ID() kernel.UUID { return e.id }
func (e *StatusEvent) ShipmentID() kernel.UUID { return e.shipmentID }
func (e *StatusEvent) Status() Status { return e.status }
func (e *StatusEvent) EventType() EventType { return e.eventType }
func (e *StatusEvent) Description() string { return e.description }
func (e *StatusEvent) Location() *string { return copyString(e.location) }
func (e *StatusEvent) CreatedAt() time.Time { return e.createdAt }
func (e *StatusEvent) CreatedBy() string { return e.createdBy }
func (e *StatusEvent) PublishedAt() *time.Time { return copyTime(e.publishedAt) }

func (e *StatusEvent) IsPublished() bool {
	return e.publishedAt != nil
}

// MarkPublished stamps the time the event left the outbox.
func (e *StatusEvent) MarkPublished(at time.Time) error {
	if e.publishedAt != nil {
		return ErrStatusEventAlreadyPublished
	}
	t := at.UTC()
	e.publishedAt = &t
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
