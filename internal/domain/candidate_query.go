package domain

import "strings"

// MatchMode decides how a skill id set filters candidates.
type MatchMode int

const (
	// MatchAny keeps candidates holding at least one of the skills.
	MatchAny MatchMode = iota
	// MatchAll keeps candidates holding every skill; extra skills are allowed.
	MatchAll
)

func (m MatchMode) String() string {
	if m == MatchAll {
		return "all"
	}
	return "any"
}

// SortField is the closed set of candidate sort keys.
type SortField int

const (
	SortByName SortField = iota
	SortByDateOfBirth
	SortByEmail
	SortByPhone
)

var sortFieldNames = map[string]SortField{
	"name":  SortByName,
	"dob":   SortByDateOfBirth,
	"email": SortByEmail,
	"phone": SortByPhone,
}

func (f SortField) String() string {
	for name, field := range sortFieldNames {
		if field == f {
			return name
		}
	}
	return "name"
}

// ParseSortField maps a case-insensitive name onto a SortField; unknown names sort by name.
func ParseSortField(s string) SortField {
	if f, ok := sortFieldNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f
	}
	return SortByName
}

type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

func (d SortDirection) String() string {
	if d == SortDesc {
		return "desc"
	}
	return "asc"
}

// CandidateQuery is the raw, caller-supplied candidate search.
type CandidateQuery struct {
	Name     string
	SkillIDs []int64
	Match    string // "any" | "all"
	Page     int
	PageSize int
	SortBy   string // "name" | "dob" | "email" | "phone"
	SortDir  string // "asc" | "desc"
}

// CandidateFilter is a normalized CandidateQuery, ready for a store.
type CandidateFilter struct {
	Name     string
	SkillIDs []int64
	Match    MatchMode
	SortBy   SortField
	SortDir  SortDirection
	Page     int
	PageSize int
}

// Normalize never fails: out-of-range paging and unknown enum values fall
// back to defaults.
func (q CandidateQuery) Normalize() CandidateFilter {
	page, pageSize := NormalizePage(q.Page, q.PageSize)

	match := MatchAny
	if strings.EqualFold(strings.TrimSpace(q.Match), "all") {
		match = MatchAll
	}

	dir := SortAsc
	if strings.EqualFold(strings.TrimSpace(q.SortDir), "desc") {
		dir = SortDesc
	}

	return CandidateFilter{
		Name:     strings.TrimSpace(q.Name),
		SkillIDs: DedupeIDs(q.SkillIDs),
		Match:    match,
		SortBy:   ParseSortField(q.SortBy),
		SortDir:  dir,
		Page:     page,
		PageSize: pageSize,
	}
}

func (f CandidateFilter) Limit() int {
	return f.PageSize
}

func (f CandidateFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// DedupeIDs drops repeated ids, keeping first-occurrence order.
func DedupeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// MissingIDs returns the ids in want that are absent from have, in want's order.
func MissingIDs(want, have []int64) []int64 {
	present := make(map[int64]struct{}, len(have))
	for _, id := range have {
		present[id] = struct{}{}
	}
	var missing []int64
	for _, id := range want {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
