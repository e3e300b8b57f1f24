package models

import "time"

type JobStatus string

const (
	JobStatusApplied      JobStatus = "applied"
	JobStatusInterviewing JobStatus = "interviewing"
	JobStatusOffered      JobStatus = "offered"
	JobStatusRejected     JobStatus = "rejected"
	JobStatusAccepted     JobStatus = "accepted"
)

// JobStatuses lists every accepted status in display order.
var JobStatuses = []JobStatus{
	JobStatusApplied,
	JobStatusInterviewing,
	JobStatusOffered,
	JobStatusRejected,
	JobStatusAccepted,
}

type Job struct {
	ID          string     `json:"id"`
	Company     string     `json:"company"`
	Role        string     `json:"role"`
	Status      *JobStatus `json:"status"`
	AppliedDate *Date      `json:"applied_date"`
	Notes       *string    `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// JobPatch carries the fields of a partial update; nil means "leave as is".
type JobPatch struct {
	Company     *string
	Role        *string
	Status      *JobStatus
	AppliedDate *Date
	Notes       *string
}
