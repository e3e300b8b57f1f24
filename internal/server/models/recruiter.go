package models

import "time"

type Recruiter struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Title       *string   `json:"title"`
	LinkedInURL *string   `json:"linkedin_url"`
	FirmID      *string   `json:"firm_id"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RecruiterPatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Title       *string
	LinkedInURL *string
	FirmID      *string
	Notes       *string
}

type RecruitingFirm struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Website     *string   `json:"website"`
	LinkedInURL *string   `json:"linkedin_url"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RecruitingFirmPatch struct {
	Name        *string
	Website     *string
	LinkedInURL *string
	Notes       *string
}
