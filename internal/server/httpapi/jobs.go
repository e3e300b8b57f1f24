package httpapi

import (
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

type CreateJobRequest struct {
	AppliedDate *string `json:"applied_date" validate:"omitnil,isodate" msg:"applied_date must be a valid date (YYYY-MM-DD)"`
	Company     string  `json:"company" validate:"required" msg:"company is required"`
	Notes       *string `json:"notes"`
	Role        string  `json:"role" validate:"required" msg:"role is required"`
	Status      *string `json:"status" validate:"omitnil,oneof=applied interviewing offered rejected accepted" msg:"status must be one of: applied, interviewing, offered, rejected, accepted"`
}

// Model converts a validated request.
func (r *CreateJobRequest) Model() *models.Job {
	return &models.Job{
		Company:     r.Company,
		Role:        r.Role,
		Status:      jobStatus(r.Status),
		AppliedDate: date(r.AppliedDate),
		Notes:       r.Notes,
	}
}

type PatchJobRequest struct {
	AppliedDate *string `json:"applied_date" validate:"omitnil,isodate" msg:"applied_date must be a valid date (YYYY-MM-DD)"`
	Company     *string `json:"company" validate:"omitnil,min=1" msg:"company is required"`
	Notes       *string `json:"notes"`
	Role        *string `json:"role" validate:"omitnil,min=1" msg:"role is required"`
	Status      *string `json:"status" validate:"omitnil,oneof=applied interviewing offered rejected accepted" msg:"status must be one of: applied, interviewing, offered, rejected, accepted"`
}

func (r PatchJobRequest) Empty() bool {
	return r.AppliedDate == nil && r.Company == nil && r.Notes == nil && r.Role == nil && r.Status == nil
}

func (r *PatchJobRequest) Patch() models.JobPatch {
	return models.JobPatch{
		Company:     r.Company,
		Role:        r.Role,
		Status:      jobStatus(r.Status),
		AppliedDate: date(r.AppliedDate),
		Notes:       r.Notes,
	}
}

func jobStatus(s *string) *models.JobStatus {
	if s == nil {
		return nil
	}
	st := models.JobStatus(*s)
	return &st
}

// date assumes s already passed the isodate rule.
func date(s *string) *models.Date {
	if s == nil {
		return nil
	}
	d, err := models.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}
