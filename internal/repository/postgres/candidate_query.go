package postgres

import (
	"fmt"
	"strings"

	"hr-platform/internal/domain"

	"github.com/lib/pq"
)

// sortColumns maps each SortField onto the column it orders by.
var sortColumns = map[domain.SortField]string{
	domain.SortByName:        "c.full_name",
	domain.SortByDateOfBirth: "c.date_of_birth",
	domain.SortByEmail:       "c.email",
	domain.SortByPhone:       "c.phone",
}

// candidateColumns is the projection shared by Query and GetByID. Skills are
// aggregated per candidate as a JSON array ordered by name.
const candidateColumns = `
	c.id,
	c.full_name,
	c.date_of_birth,
	c.email,
	c.phone,
	COALESCE((
		SELECT json_agg(json_build_object('id', s.id, 'name', s.name) ORDER BY s.name, s.id)
		FROM candidate_skills cs
		JOIN skills s ON s.id = cs.skill_id
		WHERE cs.candidate_id = c.id
	), '[]'::json) AS skills`

// candidateQuery holds the SQL generated for one filter.
type candidateQuery struct {
	Count     string
	CountArgs []interface{}
	List      string
	ListArgs  []interface{}
}

// buildCandidateQuery renders the count and page queries for f. Conditions
// are conjunctive; an empty skill set adds no predicate.
func buildCandidateQuery(f domain.CandidateFilter) candidateQuery {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIndex := 1

	if f.Name != "" {
		conditions = append(conditions, fmt.Sprintf("c.full_name ILIKE $%d", argIndex))
		args = append(args, likePattern(f.Name))
		argIndex++
	}

	if len(f.SkillIDs) > 0 {
		switch f.Match {
		case domain.MatchAll:
			conditions = append(conditions, fmt.Sprintf(`(
				SELECT COUNT(DISTINCT cs.skill_id)
				FROM candidate_skills cs
				WHERE cs.candidate_id = c.id AND cs.skill_id = ANY($%d::bigint[])
			) = $%d`, argIndex, argIndex+1))
			args = append(args, pq.Array(f.SkillIDs), len(f.SkillIDs))
			argIndex += 2
		default:
			conditions = append(conditions, fmt.Sprintf(`EXISTS (
				SELECT 1
				FROM candidate_skills cs
				WHERE cs.candidate_id = c.id AND cs.skill_id = ANY($%d::bigint[])
			)`, argIndex))
			args = append(args, pq.Array(f.SkillIDs))
			argIndex++
		}
	}

	whereClause := strings.Join(conditions, " AND ")

	sortColumn, ok := sortColumns[f.SortBy]
	if !ok {
		sortColumn = sortColumns[domain.SortByName]
	}
	sortOrder := "ASC"
	if f.SortDir == domain.SortDesc {
		sortOrder = "DESC"
	}

	countArgs := make([]interface{}, len(args))
	copy(countArgs, args)

	list := fmt.Sprintf(`
		SELECT %s
		FROM candidates c
		WHERE %s
		ORDER BY %s %s, c.id ASC
		LIMIT $%d OFFSET $%d
	`, candidateColumns, whereClause, sortColumn, sortOrder, argIndex, argIndex+1)

	return candidateQuery{
		Count:     fmt.Sprintf(`SELECT COUNT(*) FROM candidates c WHERE %s`, whereClause),
		CountArgs: countArgs,
		List:      list,
		ListArgs:  append(args, f.Limit(), f.Offset()),
	}
}
