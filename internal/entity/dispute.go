package entity

import (
	"github.com/google/uuid"
)

// db model
type Dispute struct {
	Id              uuid.UUID `json:"id" db:"id"`
	TripId          uuid.UUID `json:"tripId" db:"trip_id"`
	LoadId          uuid.UUID `json:"loadId" db:"load_id"`
	FiledBy         uuid.UUID `json:"filedBy" db:"filed_by"`
	IssueType       string    `json:"issueType" db:"issue_type"`
	Description     string    `json:"description" db:"description"`
	EvidenceUrls    []string  `json:"evidenceUrls" db:"evidence_urls"`
	Status          string    `json:"status" db:"status"`
	CarrierResponse string    `json:"carrierResponse" db:"carrier_response"`
	ResolutionNote  string    `json:"resolutionNote" db:"resolution_note"`
	ResolvedBy      uuid.UUID `json:"resolvedBy" db:"resolved_by"`
	ResolvedAt      string    `json:"resolvedAt" db:"resolved_at"`
	CreatedAt       string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type FileDisputeInput struct {
	TripId       string   // given
	ShipperId    string   // given
	IssueType    string   // given
	Description  string   // given
	EvidenceUrls []string // given, optional
	// Status should be set: "open"
	// Id and CreatedAt set automatically
}

// controller model
type DisputeOutputModel struct {
	Id              string   `json:"id"`
	TripId          string   `json:"tripId"`
	LoadId          string   `json:"loadId"`
	FiledBy         string   `json:"filedBy"`
	IssueType       string   `json:"issueType"`
	Description     string   `json:"description"`
	EvidenceUrls    []string `json:"evidenceUrls,omitempty"`
	Status          string   `json:"status"`
	CarrierResponse string   `json:"carrierResponse,omitempty"`
	ResolutionNote  string   `json:"resolutionNote,omitempty"`
	ResolvedBy      string   `json:"resolvedBy,omitempty"`
	ResolvedAt      string   `json:"resolvedAt,omitempty"`
	CreatedAt       string   `json:"createdAt"`
}
