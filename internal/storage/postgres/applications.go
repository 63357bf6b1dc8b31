package postgres

import (
	"context"
	"errors"

	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/storage"
	"github.com/jackc/pgx/v5/pgconn"
)

// ListApplicationsByStudent returns a student's applications joined with the
// jobs they target.
func (s *Store) ListApplicationsByStudent(ctx context.Context, studentID int64) ([]models.ApplicationSummary, error) {
	const query = `
	SELECT j.title, j.company, j.location, a.applied_date, a.status, j.id
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	WHERE a.student_id = $1
	ORDER BY a.id DESC;`

	rows, err := s.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ApplicationSummary
	for rows.Next() {
		var a models.ApplicationSummary
		if err := rows.Scan(&a.JobTitle, &a.Company, &a.Location, &a.AppliedDate, &a.Status, &a.JobID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateApplication inserts an application. A missing student or job surfaces
// as ErrNotFound via the foreign keys.
func (s *Store) CreateApplication(ctx context.Context, app models.Application) (models.Application, error) {
	const insert = `
	INSERT INTO applications (student_id, job_id, applied_date, status)
	VALUES ($1, $2, $3, $4)
	RETURNING id;`

	row := s.pool.QueryRow(ctx, insert, app.StudentID, app.JobID, app.AppliedDate, app.Status)
	if err := row.Scan(&app.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return models.Application{}, storage.ErrNotFound
		}
		return models.Application{}, err
	}
	return app, nil
}
