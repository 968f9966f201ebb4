package handler

import (
	"strings"

	"aegis/internal/consent/models"
	dErrors "aegis/pkg/domain-errors"
)

// parseRecordFilter converts query parameters into a domain RecordFilter.
// Returns nil if no filters are specified.
// Returns validation error if the status value is invalid.
func parseRecordFilter(status, consentType string) (*models.RecordFilter, error) {
	status = strings.TrimSpace(status)
	consentType = strings.TrimSpace(consentType)

	filter := &models.RecordFilter{}

	if status != "" {
		parsedStatus, err := models.ParseStatus(status)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid status filter")
		}
		filter.Status = &parsedStatus
	}

	if consentType != "" {
		filter.ConsentType = &consentType
	}

	if filter.Status == nil && filter.ConsentType == nil {
		return nil, nil
	}

	return filter, nil
}
