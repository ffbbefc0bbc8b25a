// Package memory is a process-local relation store with the same semantics as
// the postgres repositories: case-insensitive uniqueness, FK checks and
// cascading deletes. It backs STORE_DRIVER=memory and the usecase tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"hr-platform/internal/domain"
)

type candidateRow struct {
	id          int64
	fullName    string
	dateOfBirth string
	email       string
	phone       string
}

type skillRow struct {
	id   int64
	name string
}

// Store holds the three tables. All access goes through mu.
type Store struct {
	mu sync.RWMutex

	nextCandidateID int64
	nextSkillID     int64

	candidates map[int64]*candidateRow
	skills     map[int64]*skillRow

	// association indexed by either key
	skillsByCandidate map[int64]map[int64]struct{}
	candidatesBySkill map[int64]map[int64]struct{}
}

func NewStore() *Store {
	return &Store{
		candidates:        make(map[int64]*candidateRow),
		skills:            make(map[int64]*skillRow),
		skillsByCandidate: make(map[int64]map[int64]struct{}),
		candidatesBySkill: make(map[int64]map[int64]struct{}),
	}
}

// Ping always succeeds once the context is live.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) link(candidateID, skillID int64) {
	if s.skillsByCandidate[candidateID] == nil {
		s.skillsByCandidate[candidateID] = make(map[int64]struct{})
	}
	if s.candidatesBySkill[skillID] == nil {
		s.candidatesBySkill[skillID] = make(map[int64]struct{})
	}
	s.skillsByCandidate[candidateID][skillID] = struct{}{}
	s.candidatesBySkill[skillID][candidateID] = struct{}{}
}

func (s *Store) unlink(candidateID, skillID int64) bool {
	if _, ok := s.skillsByCandidate[candidateID][skillID]; !ok {
		return false
	}
	delete(s.skillsByCandidate[candidateID], skillID)
	delete(s.candidatesBySkill[skillID], candidateID)
	return true
}

// skillRefs projects a candidate's skills ordered by name.
func (s *Store) skillRefs(candidateID int64) []domain.SkillRef {
	refs := make([]domain.SkillRef, 0, len(s.skillsByCandidate[candidateID]))
	for skillID := range s.skillsByCandidate[candidateID] {
		if sk, ok := s.skills[skillID]; ok {
			refs = append(refs, domain.SkillRef{ID: sk.id, Name: sk.name})
		}
	}
	slices.SortFunc(refs, func(a, b domain.SkillRef) int {
		if c := compareFold(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return refs
}

func (s *Store) project(row *candidateRow) domain.Candidate {
	return domain.Candidate{
		ID:          row.id,
		FullName:    row.fullName,
		DateOfBirth: row.dateOfBirth,
		Email:       row.email,
		Phone:       row.phone,
		Skills:      s.skillRefs(row.id),
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
