package models

import "time"

// Application statuses.
const (
	StatusPending   = "PENDING"
	StatusInReview  = "IN_REVIEW"
	StatusInterview = "INTERVIEW"
	StatusRejected  = "REJECTED"
)

// Application links a student to a job they applied for.
type Application struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"studentId"`
	JobID       int64     `json:"jobId"`
	AppliedDate time.Time `json:"appliedDate"`
	Status      string    `json:"status"`
}

// ApplicationSummary is the read model for a student's application list,
// joined with the job it targets.
type ApplicationSummary struct {
	JobTitle    string    `json:"jobTitle"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	AppliedDate time.Time `json:"appliedDate"`
	Status      string    `json:"status"`
	JobID       int64     `json:"jobId"`
}
