package model

import (
	"time"

	"github.com/locaflow/locaflow/internal/odm"
)

// AuditLog is one recorded domain event, written by the audit consumer from
// messages on the audit queue.
type AuditLog struct {
	ID       string         `bson:"_id" json:"id"`
	Action   string         `bson:"action" json:"action"`
	ActorID  string         `bson:"actorId" json:"actorId"`
	Entity   string         `bson:"entity,omitempty" json:"entity,omitempty"`
	EntityID string         `bson:"entityId,omitempty" json:"entityId,omitempty"`
	Details  map[string]any `bson:"details,omitempty" json:"details,omitempty"`
	At       time.Time      `bson:"at" json:"at"`
}

// AuditLogSchema declares the audit_logs collection.
var AuditLogSchema = odm.Schema{
	"action":   {Kind: odm.String, Required: true},
	"actorId":  {Kind: odm.String, Required: true},
	"entity":   {Kind: odm.String},
	"entityId": {Kind: odm.String},
	"details":  {Kind: odm.Object},
	"at":       {Kind: odm.Date, Required: true},
}
