package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobtracker/internal/common"
)

const (
	msgNoFields     = "No fields to update"
	msgFirmNotFound = "Firm not found"
)

// resourceMessages holds the client-facing messages of one collection.
type resourceMessages struct {
	invalidID string
	notFound  string
	list      string
	get       string
	create    string
	update    string
	delete    string
}

var (
	jobMessages = resourceMessages{
		invalidID: "Invalid job ID",
		notFound:  "Job not found",
		list:      "Failed to fetch jobs",
		get:       "Failed to fetch job",
		create:    "Failed to create job",
		update:    "Failed to update job",
		delete:    "Failed to delete job",
	}
	recruiterMessages = resourceMessages{
		invalidID: "Invalid recruiter ID",
		notFound:  "Recruiter not found",
		list:      "Failed to fetch recruiters",
		get:       "Failed to fetch recruiter",
		create:    "Failed to create recruiter",
		update:    "Failed to update recruiter",
		delete:    "Failed to delete recruiter",
	}
	firmMessages = resourceMessages{
		invalidID: "Invalid recruiting firm ID",
		notFound:  "Recruiting firm not found",
		list:      "Failed to fetch recruiting firms",
		get:       "Failed to fetch recruiting firm",
		create:    "Failed to create recruiting firm",
		update:    "Failed to update recruiting firm",
		delete:    "Failed to delete recruiting firm",
	}
)

// fail maps a service error to its HTTP form; fallback is the message of
// an unexpected failure.
func (m resourceMessages) fail(err error, fallback string) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return httpError(http.StatusNotFound, m.notFound)
	case errors.Is(err, common.ErrorNoFields):
		return httpError(http.StatusBadRequest, msgNoFields)
	case errors.Is(err, common.ErrorReferenceNotFound):
		return httpError(http.StatusBadRequest, msgFirmNotFound)
	default:
		return internalError(fallback, err)
	}
}
