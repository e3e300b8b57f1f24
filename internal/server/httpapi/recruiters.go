package httpapi

import "github.com/dmitrijs2005/jobtracker/internal/server/models"

type CreateRecruiterRequest struct {
	Email       *string `json:"email" validate:"omitnil,email" msg:"email must be valid"`
	FirmID      *string `json:"firm_id" validate:"omitnil,uuid" msg:"firm_id must be a valid UUID"`
	LinkedInURL *string `json:"linkedin_url" validate:"omitnil,url" msg:"linkedin_url must be a valid URL"`
	Name        string  `json:"name" validate:"required" msg:"name is required"`
	Notes       *string `json:"notes"`
	Phone       *string `json:"phone"`
	Title       *string `json:"title"`
}

func (r *CreateRecruiterRequest) Model() *models.Recruiter {
	return &models.Recruiter{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Title:       r.Title,
		LinkedInURL: r.LinkedInURL,
		FirmID:      r.FirmID,
		Notes:       r.Notes,
	}
}

type PatchRecruiterRequest struct {
	Email       *string `json:"email" validate:"omitnil,email" msg:"email must be valid"`
	FirmID      *string `json:"firm_id" validate:"omitnil,uuid" msg:"firm_id must be a valid UUID"`
	LinkedInURL *string `json:"linkedin_url" validate:"omitnil,url" msg:"linkedin_url must be a valid URL"`
	Name        *string `json:"name" validate:"omitnil,min=1" msg:"name is required"`
	Notes       *string `json:"notes"`
	Phone       *string `json:"phone"`
	Title       *string `json:"title"`
}

func (r PatchRecruiterRequest) Empty() bool {
	return r.Email == nil && r.FirmID == nil && r.LinkedInURL == nil && r.Name == nil &&
		r.Notes == nil && r.Phone == nil && r.Title == nil
}

func (r *PatchRecruiterRequest) Patch() models.RecruiterPatch {
	return models.RecruiterPatch{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Title:       r.Title,
		LinkedInURL: r.LinkedInURL,
		FirmID:      r.FirmID,
		Notes:       r.Notes,
	}
}

type CreateRecruitingFirmRequest struct {
	LinkedInURL *string `json:"linkedin_url" validate:"omitnil,url" msg:"linkedin_url must be a valid URL"`
	Name        string  `json:"name" validate:"required" msg:"name is required"`
	Notes       *string `json:"notes"`
	Website     *string `json:"website" validate:"omitnil,url" msg:"website must be a valid URL"`
}

func (r *CreateRecruitingFirmRequest) Model() *models.RecruitingFirm {
	return &models.RecruitingFirm{
		Name:        r.Name,
		Website:     r.Website,
		LinkedInURL: r.LinkedInURL,
		Notes:       r.Notes,
	}
}

type PatchRecruitingFirmRequest struct {
	LinkedInURL *string `json:"linkedin_url" validate:"omitnil,url" msg:"linkedin_url must be a valid URL"`
	Name        *string `json:"name" validate:"omitnil,min=1" msg:"name is required"`
	Notes       *string `json:"notes"`
	Website     *string `json:"website" validate:"omitnil,url" msg:"website must be a valid URL"`
}

func (r PatchRecruitingFirmRequest) Empty() bool {
	return r.LinkedInURL == nil && r.Name == nil && r.Notes == nil && r.Website == nil
}

func (r *PatchRecruitingFirmRequest) Patch() models.RecruitingFirmPatch {
	return models.RecruitingFirmPatch{
		Name:        r.Name,
		Website:     r.Website,
		LinkedInURL: r.LinkedInURL,
		Notes:       r.Notes,
	}
}
