package dto

type ApplyRequest struct {
	StudentID int64 `json:"studentId"`
	JobID     int64 `json:"jobId"`
}
