package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, name, content, ats_score, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Name,
		[]byte(resume.Content),
		nullableScore(resume.ATSScore),
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

// Update overwrites an owned resume and returns the stored row.
func (r *PGRepo) Update(ctx context.Context, resume Resume) (Resume, error) {
	const query = `
UPDATE resumes
SET name = $3, content = $4, ats_score = $5, updated_at = $6
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, name, content, ats_score, created_at, updated_at`
	row := r.DB.QueryRowContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Name,
		[]byte(resume.Content),
		nullableScore(resume.ATSScore),
		resume.UpdatedAt,
	)
	return scanResume(row)
}

// GetByID returns a resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
SELECT id, user_id, name, content, ats_score, created_at, updated_at
FROM resumes
WHERE id = $1 AND user_id = $2
LIMIT 1`
	return scanResume(r.DB.QueryRowContext(ctx, query, resumeID, userID))
}

// ListByUser lists a user's resumes ordered by most recent update.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	const query = `
SELECT id, user_id, name, content, ats_score, created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC, id`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// Delete removes an owned resume.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	const query = `DELETE FROM resumes WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var content []byte
	var score sql.NullFloat64
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Name,
		&content,
		&score,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	resume.Content = content
	if score.Valid {
		v := score.Float64
		resume.ATSScore = &v
	}
	return resume, nil
}

func nullableScore(score *float64) any {
	if score == nil {
		return nil
	}
	return *score
}

var _ Repo = (*PGRepo)(nil)
