package storage

import (
	"context"
	"errors"

	"github.com/aruna-2201/zidio-prj/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore is the identity gateway: users and the seeded role set.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindRoleByName(ctx context.Context, name string) (models.Role, error)
	SaveUser(ctx context.Context, user models.User) (models.User, error)
	CountRoles(ctx context.Context) (int64, error)
	SeedDefaultRoles(ctx context.Context) error
}

// StudentStore persists student profiles with their nested sections.
type StudentStore interface {
	GetStudent(ctx context.Context, id int64) (models.Student, error)
	CreateStudent(ctx context.Context, student models.Student) (models.Student, error)
	UpdateStudent(ctx context.Context, id int64, student models.Student) (models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

// JobStore persists job postings.
type JobStore interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
	GetJob(ctx context.Context, id int64) (models.Job, error)
	CreateJob(ctx context.Context, job models.Job) (models.Job, error)
}

// ApplicationStore persists job applications.
type ApplicationStore interface {
	ListApplicationsByStudent(ctx context.Context, studentID int64) ([]models.ApplicationSummary, error)
	CreateApplication(ctx context.Context, app models.Application) (models.Application, error)
}

// Store bundles everything the HTTP layer needs.
type Store interface {
	UserStore
	StudentStore
	JobStore
	ApplicationStore
}
