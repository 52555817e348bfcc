package services

import "time"

const (
	EventCertificateIssued    = "certificate.issued"
	EventCertificateValidated = "certificate.validated"
	EventIntegrityMismatch    = "certificate.integrity_mismatch"
	EventCertificateStatusSet = "certificate.status_changed"
)

type Event struct {
	Type       string    `json:"type"`
	UniqueCode string    `json:"unique_code"`
	Valid      *bool     `json:"is_valid,omitempty"`
	Message    string    `json:"message,omitempty"`
	At         time.Time `json:"at"`
}

// EventPublisher must not block the caller.
type EventPublisher interface {
	Publish(event Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
