package models

import "time"

// Student is a job-seeker profile with its nested sections. Children are
// owned by the profile: updates replace them wholesale.
type Student struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Location   string       `json:"location"`
	Avatar     string       `json:"avatar"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []Skill      `json:"skills"`
}

type Education struct {
	ID        int64   `json:"id"`
	School    string  `json:"school"`
	Degree    string  `json:"degree"`
	StartYear int     `json:"startYear"`
	EndYear   int     `json:"endYear"`
	GPA       float64 `json:"gpa"`
}

type Experience struct {
	ID          int64     `json:"id"`
	Role        string    `json:"role"`
	Company     string    `json:"company"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Description string    `json:"description"`
}

type Skill struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
