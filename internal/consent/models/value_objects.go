package models

import (
	dErrors "aegis/pkg/domain-errors"
)

// Status represents the lifecycle state of a consent record.
// Expiry is never written by a background process; StatusExpired only appears
// as a derived value from ComputeStatus.
type Status string

const (
	StatusPending Status = "pending"
	StatusGranted Status = "granted"
	StatusDenied  Status = "denied"
	StatusRevoked Status = "revoked"
	StatusExpired Status = "expired"
)

// ValidStatuses is the single source of truth for all valid consent statuses.
var ValidStatuses = map[Status]bool{
	StatusPending: true,
	StatusGranted: true,
	StatusDenied:  true,
	StatusRevoked: true,
	StatusExpired: true,
}

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	return ValidStatuses[s]
}

// ParseStatus converts a string into a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "invalid consent status: "+s)
	}
	return status, nil
}

// Method labels how consent was collected.
type Method string

const (
	MethodEmail  Method = "email"
	MethodForm   Method = "form"
	MethodVerbal Method = "verbal"
)

// Unknown collection methods are tolerated; the method is descriptive
// metadata, not a gate.
func (m Method) OrDefault() Method {
	if m == "" {
		return MethodEmail
	}
	return m
}
