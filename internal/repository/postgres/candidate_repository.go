package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hr-platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const dateLayout = "2006-01-02"

type candidateRepo struct {
	db *pgxpool.Pool
}

// NewCandidateRepository creates a new candidate repository instance
func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCandidate(row rowScanner) (*domain.Candidate, error) {
	var c domain.Candidate
	var dob time.Time
	if err := row.Scan(&c.ID, &c.FullName, &dob, &c.Email, &c.Phone, &c.Skills); err != nil {
		return nil, err
	}
	c.DateOfBirth = dob.Format(dateLayout)
	if c.Skills == nil {
		c.Skills = []domain.SkillRef{}
	}
	return &c, nil
}

func (r *candidateRepo) Query(ctx context.Context, f domain.CandidateFilter) ([]domain.Candidate, int64, error) {
	q := buildCandidateQuery(f)

	var total int64
	if err := r.db.QueryRow(ctx, q.Count, q.CountArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	candidates := []domain.Candidate{}
	if total == 0 {
		return candidates, 0, nil
	}

	rows, err := r.db.Query(ctx, q.List, q.ListArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate candidates: %w", err)
	}

	return candidates, total, nil
}

func (r *candidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates c WHERE c.id = $1`, candidateColumns)
	c, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *candidateRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM candidates WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check candidate: %w", err)
	}
	return exists, nil
}

// Create inserts the candidate row and its relation rows in one transaction.
func (r *candidateRepo) Create(ctx context.Context, candidate *domain.Candidate, skillIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO candidates (full_name, date_of_birth, email, phone)
		VALUES ($1, $2::date, $3, $4)
		RETURNING id
	`, candidate.FullName, candidate.DateOfBirth, candidate.Email, candidate.Phone).Scan(&candidate.ID)
	if err != nil {
		return mapError(err)
	}

	if err := insertRelations(ctx, tx, candidate.ID, skillIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *candidateRepo) Update(ctx context.Context, candidate *domain.Candidate) error {
	result, err := r.db.Exec(ctx, `
		UPDATE candidates
		SET full_name = $1, date_of_birth = $2::date, email = $3, phone = $4
		WHERE id = $5
	`, candidate.FullName, candidate.DateOfBirth, candidate.Email, candidate.Phone, candidate.ID)
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddSkills locks the candidate row for the duration of the insert so a
// concurrent delete cannot interleave.
func (r *candidateRepo) AddSkills(ctx context.Context, candidateID int64, skillIDs []int64) error {
	if len(skillIDs) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `SELECT id FROM candidates WHERE id = $1 FOR SHARE`, candidateID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock candidate: %w", err)
	}

	if err := insertRelations(ctx, tx, candidateID, skillIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *candidateRepo) RemoveSkill(ctx context.Context, candidateID, skillID int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM candidate_skills WHERE candidate_id = $1 AND skill_id = $2`,
		candidateID, skillID,
	)
	if err != nil {
		return fmt.Errorf("remove skill: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// insertRelations adds one (candidate, skill) row per id; pairs that already
// exist are left alone.
func insertRelations(ctx context.Context, tx pgx.Tx, candidateID int64, skillIDs []int64) error {
	if len(skillIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO candidate_skills (candidate_id, skill_id)
		SELECT $1, UNNEST($2::bigint[])
		ON CONFLICT (candidate_id, skill_id) DO NOTHING
	`, candidateID, pq.Array(skillIDs))
	if err != nil {
		return mapError(err)
	}
	return nil
}
