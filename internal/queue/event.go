// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them as audit log entries.
package queue

import "time"

// Audit actions emitted by the application.
const (
	ActionOnboardingCompleted  = "onboarding.completed"
	ActionPropertyPublished    = "property.published"
	ActionApplicationSubmitted = "application.submitted"
)

// AuditQueueName is the durable queue audit events travel through.
const AuditQueueName = "audit.events"

// AuditEvent is published when a domain action worth auditing happens. It
// carries enough information for the consumer to persist a log entry without
// querying the primary database.
type AuditEvent struct {
	Action   string         `json:"action"`
	ActorID  string         `json:"actor_id"`
	Entity   string         `json:"entity,omitempty"`
	EntityID string         `json:"entity_id,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
	At       time.Time      `json:"at"`
}
