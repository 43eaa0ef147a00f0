package model

import "time"

// Application is a candidate's application to a job, joined with the job's
// company. It is read-only here and identifies exactly one conversation.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	JobTitle    string    `json:"job_title"`
	CompanyID   int64     `json:"company_id"`
	ApplicantID int64     `json:"applicant_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *Application) IsApplicant(userID int64) bool {
	return a.ApplicantID == userID
}
