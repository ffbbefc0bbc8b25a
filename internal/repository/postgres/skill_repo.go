package postgres

import (
	"context"
	"fmt"
	"strings"

	"hr-platform/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type skillRepo struct {
	db *pgxpool.Pool
}

// NewSkillRepository creates a new skill repository instance
func NewSkillRepository(db *pgxpool.Pool) domain.SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) List(ctx context.Context, query string, limit, offset int) ([]domain.Skill, int64, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIndex := 1

	if term := strings.TrimSpace(query); term != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, likePattern(term))
		argIndex++
	}
	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM skills WHERE %s`, whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count skills: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT id, name
		FROM skills
		WHERE %s
		ORDER BY name ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, 0, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate skills: %w", err)
	}

	return skills, total, nil
}

func (r *skillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	var s domain.Skill
	err := r.db.QueryRow(ctx, `SELECT id, name FROM skills WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *skillRepo) Create(ctx context.Context, skill *domain.Skill) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO skills (name) VALUES ($1) RETURNING id, name`,
		skill.Name,
	).Scan(&skill.ID, &skill.Name)
	return mapError(err)
}

func (r *skillRepo) Update(ctx context.Context, skill *domain.Skill) error {
	result, err := r.db.Exec(ctx, `UPDATE skills SET name = $1 WHERE id = $2`, skill.Name, skill.ID)
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the skill; candidate_skills rows go with it via ON DELETE CASCADE.
func (r *skillRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *skillRepo) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id FROM skills WHERE id = ANY($1::bigint[])`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("lookup skill ids: %w", err)
	}
	defer rows.Close()

	var existing []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan skill id: %w", err)
		}
		existing = append(existing, id)
	}
	return existing, rows.Err()
}
