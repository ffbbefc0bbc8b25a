package postgres

import (
	"errors"
	"fmt"
	"strings"

	"hr-platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories classify.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Relation FK constraint on the candidate side; named in 000001_init.
const candidateFKConstraint = "fk_candidate_skills_candidate"

// mapError classifies driver errors into the domain store errors, keeping the
// driver error in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %w", domain.ErrDuplicate, err)
		case foreignKeyViolation:
			// the candidate vanished between the existence check and the insert
			if pgErr.ConstraintName == candidateFKConstraint {
				return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
			}
			return fmt.Errorf("%w: %w", domain.ErrMissingReference, err)
		}
	}
	return err
}

// likePattern turns a search term into a substring ILIKE pattern with the
// wildcard characters escaped.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
