// Package memory provides an in-memory storage.Store used in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps everything in maps guarded by one mutex.
type Store struct {
	mu           sync.Mutex
	users        map[int64]models.User
	roles        map[int64]models.Role
	students     map[int64]models.Student
	jobs         map[int64]models.Job
	applications map[int64]models.Application
	nextID       int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[int64]models.User),
		roles:        make(map[int64]models.Role),
		students:     make(map[int64]models.Student),
		jobs:         make(map[int64]models.Job),
		applications: make(map[int64]models.Application),
	}
}

func (s *Store) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) FindRoleByName(_ context.Context, name string) (models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return models.Role{}, storage.ErrNotFound
}

func (s *Store) SaveUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = s.nextIDLocked()
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) CountRoles(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.roles)), nil
}

func (s *Store) SeedDefaultRoles(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range []string{models.RoleAdmin, models.RoleStudent, models.RoleRecruiter} {
		exists := false
		for _, r := range s.roles {
			if r.Name == name {
				exists = true
				break
			}
		}
		if !exists {
			id := s.nextIDLocked()
			s.roles[id] = models.Role{ID: id, Name: name}
		}
	}
	return nil
}

// UserCount reports how many users exist. Test helper.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Store) GetStudent(_ context.Context, id int64) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	student, ok := s.students[id]
	if !ok {
		return models.Student{}, storage.ErrNotFound
	}
	return student, nil
}

func (s *Store) CreateStudent(_ context.Context, student models.Student) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	student.ID = s.nextIDLocked()
	s.students[student.ID] = student
	return student, nil
}

func (s *Store) UpdateStudent(_ context.Context, id int64, student models.Student) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return models.Student{}, storage.ErrNotFound
	}
	student.ID = id
	s.students[id] = student
	return student, nil
}

func (s *Store) DeleteStudent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.students, id)
	return nil
}

func (s *Store) ListJobs(_ context.Context) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (s *Store) GetJob(_ context.Context, id int64) (models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return models.Job{}, storage.ErrNotFound
	}
	return job, nil
}

func (s *Store) CreateJob(_ context.Context, job models.Job) (models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.ID = s.nextIDLocked()
	s.jobs[job.ID] = job
	return job, nil
}

func (s *Store) ListApplicationsByStudent(_ context.Context, studentID int64) ([]models.ApplicationSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ApplicationSummary
	for _, a := range s.applications {
		if a.StudentID != studentID {
			continue
		}
		job, ok := s.jobs[a.JobID]
		if !ok {
			continue
		}
		out = append(out, models.ApplicationSummary{
			JobTitle:    job.Title,
			Company:     job.Company,
			Location:    job.Location,
			AppliedDate: a.AppliedDate,
			Status:      a.Status,
			JobID:       job.ID,
		})
	}
	return out, nil
}

func (s *Store) CreateApplication(_ context.Context, app models.Application) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[app.StudentID]; !ok {
		return models.Application{}, storage.ErrNotFound
	}
	if _, ok := s.jobs[app.JobID]; !ok {
		return models.Application{}, storage.ErrNotFound
	}
	app.ID = s.nextIDLocked()
	s.applications[app.ID] = app
	return app, nil
}
