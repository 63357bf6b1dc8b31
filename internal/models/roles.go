package models

// Role names carry the ROLE_ prefix convention used in tokens and route
// policies. Clients send the bare name ("student"); the HTTP layer prefixes it.
const (
	RoleAdmin     = "ROLE_ADMIN"
	RoleStudent   = "ROLE_STUDENT"
	RoleRecruiter = "ROLE_RECRUITER"
)

// Role is immutable reference data, seeded once at startup.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
