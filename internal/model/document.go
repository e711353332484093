package model

import (
	"time"

	"github.com/locaflow/locaflow/internal/odm"
)

// Document kinds accepted for compliance uploads.
const (
	DocumentEnergyReport = "energy_report"
	DocumentInsurance    = "insurance"
	DocumentGasCert      = "gas_certificate"
	DocumentIdentity     = "identity"
	DocumentOther        = "other"
)

// Document is the metadata record of an uploaded compliance file. The binary
// itself lives in external storage; only the location is kept here.
type Document struct {
	ID         string    `bson:"_id" json:"id"`
	OwnerID    string    `bson:"ownerId" json:"ownerId"`
	PropertyID string    `bson:"propertyId,omitempty" json:"propertyId,omitempty"`
	Kind       string    `bson:"kind" json:"kind"`
	Name       string    `bson:"name" json:"name"`
	URL        string    `bson:"url" json:"url"`
	SizeBytes  int64     `bson:"sizeBytes,omitempty" json:"sizeBytes,omitempty"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// DocumentSchema declares the documents collection.
var DocumentSchema = odm.Schema{
	"ownerId":    {Kind: odm.String, Required: true},
	"propertyId": {Kind: odm.String},
	"kind": {Kind: odm.String, Required: true,
		Enum: []string{DocumentEnergyReport, DocumentInsurance, DocumentGasCert, DocumentIdentity, DocumentOther}},
	"name":       {Kind: odm.String, Required: true},
	"url":        {Kind: odm.String, Required: true},
	"sizeBytes":  {Kind: odm.Number},
	"uploadedAt": {Kind: odm.Date},
}
