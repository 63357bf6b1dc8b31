package postgres

import (
	"context"
	"errors"

	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/storage"
	"github.com/jackc/pgx/v5"
)

// GetStudent fetches a profile with its nested sections.
func (s *Store) GetStudent(ctx context.Context, id int64) (models.Student, error) {
	const query = `
	SELECT id, name, email, phone, location, avatar
	FROM students
	WHERE id = $1;`

	var student models.Student
	row := s.pool.QueryRow(ctx, query, id)
	if err := row.Scan(&student.ID, &student.Name, &student.Email, &student.Phone, &student.Location, &student.Avatar); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Student{}, storage.ErrNotFound
		}
		return models.Student{}, err
	}

	var err error
	if student.Education, err = s.studentEducation(ctx, id); err != nil {
		return models.Student{}, err
	}
	if student.Experience, err = s.studentExperience(ctx, id); err != nil {
		return models.Student{}, err
	}
	if student.Skills, err = s.studentSkills(ctx, id); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// CreateStudent inserts a profile and its children in one transaction.
func (s *Store) CreateStudent(ctx context.Context, student models.Student) (models.Student, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Student{}, err
	}
	defer tx.Rollback(ctx)

	const insert = `
	INSERT INTO students (name, email, phone, location, avatar)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id;`

	row := tx.QueryRow(ctx, insert, student.Name, student.Email, student.Phone, student.Location, student.Avatar)
	if err := row.Scan(&student.ID); err != nil {
		return models.Student{}, err
	}

	if err := insertChildren(ctx, tx, &student); err != nil {
		return models.Student{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// UpdateStudent rewrites the profile and replaces its children wholesale, the
// same way the profile editor submits them.
func (s *Store) UpdateStudent(ctx context.Context, id int64, student models.Student) (models.Student, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Student{}, err
	}
	defer tx.Rollback(ctx)

	const update = `
	UPDATE students
	SET name = $2, email = $3, phone = $4, location = $5, avatar = $6
	WHERE id = $1;`

	tag, err := tx.Exec(ctx, update, id, student.Name, student.Email, student.Phone, student.Location, student.Avatar)
	if err != nil {
		return models.Student{}, err
	}
	if tag.RowsAffected() == 0 {
		return models.Student{}, storage.ErrNotFound
	}

	for _, table := range []string{"education", "experience", "skills"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE student_id = $1;`, id); err != nil {
			return models.Student{}, err
		}
	}

	student.ID = id
	if err := insertChildren(ctx, tx, &student); err != nil {
		return models.Student{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// DeleteStudent removes a profile; children cascade.
func (s *Store) DeleteStudent(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM students WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func insertChildren(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	for i, edu := range student.Education {
		row := tx.QueryRow(ctx,
			`INSERT INTO education (student_id, school, degree, start_year, end_year, gpa)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
			student.ID, edu.School, edu.Degree, edu.StartYear, edu.EndYear, edu.GPA)
		if err := row.Scan(&student.Education[i].ID); err != nil {
			return err
		}
	}
	for i, exp := range student.Experience {
		row := tx.QueryRow(ctx,
			`INSERT INTO experience (student_id, role, company, start_date, end_date, description)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
			student.ID, exp.Role, exp.Company, exp.StartDate, exp.EndDate, exp.Description)
		if err := row.Scan(&student.Experience[i].ID); err != nil {
			return err
		}
	}
	for i, skill := range student.Skills {
		row := tx.QueryRow(ctx,
			`INSERT INTO skills (student_id, name, description) VALUES ($1, $2, $3) RETURNING id;`,
			student.ID, skill.Name, skill.Description)
		if err := row.Scan(&student.Skills[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) studentEducation(ctx context.Context, studentID int64) ([]models.Education, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, school, degree, start_year, end_year, gpa FROM education WHERE student_id = $1 ORDER BY id;`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Education
	for rows.Next() {
		var e models.Education
		if err := rows.Scan(&e.ID, &e.School, &e.Degree, &e.StartYear, &e.EndYear, &e.GPA); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) studentExperience(ctx context.Context, studentID int64) ([]models.Experience, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, role, company, start_date, end_date, description FROM experience WHERE student_id = $1 ORDER BY id;`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Experience
	for rows.Next() {
		var e models.Experience
		if err := rows.Scan(&e.ID, &e.Role, &e.Company, &e.StartDate, &e.EndDate, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) studentSkills(ctx context.Context, studentID int64) ([]models.Skill, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description FROM skills WHERE student_id = $1 ORDER BY id;`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Skill
	for rows.Next() {
		var sk models.Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Description); err != nil {
			return nil, err
		}
		out = append(out, sk)
	}
	return out, rows.Err()
}
