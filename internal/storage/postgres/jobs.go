package postgres

import (
	"context"
	"errors"

	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/storage"
	"github.com/jackc/pgx/v5"
)

// ListJobs returns every posting, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]models.Job, error) {
	const query = `
	SELECT id, title, company, location, job_type, description, requirements
	FROM jobs
	ORDER BY id DESC;`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.JobType, &j.Description, &j.Requirements); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// GetJob fetches a posting by ID.
func (s *Store) GetJob(ctx context.Context, id int64) (models.Job, error) {
	const query = `
	SELECT id, title, company, location, job_type, description, requirements
	FROM jobs
	WHERE id = $1;`

	var j models.Job
	row := s.pool.QueryRow(ctx, query, id)
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.JobType, &j.Description, &j.Requirements); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Job{}, storage.ErrNotFound
		}
		return models.Job{}, err
	}
	return j, nil
}

// CreateJob inserts a posting.
func (s *Store) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	const insert = `
	INSERT INTO jobs (title, company, location, job_type, description, requirements)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id;`

	row := s.pool.QueryRow(ctx, insert, job.Title, job.Company, job.Location, job.JobType, job.Description, job.Requirements)
	if err := row.Scan(&job.ID); err != nil {
		return models.Job{}, err
	}
	return job, nil
}
