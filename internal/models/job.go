package models

// Job is a posted opening.
type Job struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	JobType      string `json:"jobType"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}
