package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"hr-platform/internal/domain"
)

// comparators maps each SortField onto an ascending comparison.
var comparators = map[domain.SortField]func(a, b *candidateRow) int{
	domain.SortByName: func(a, b *candidateRow) int {
		return compareFold(a.fullName, b.fullName)
	},
	domain.SortByDateOfBirth: func(a, b *candidateRow) int {
		// YYYY-MM-DD orders lexically
		return strings.Compare(a.dateOfBirth, b.dateOfBirth)
	},
	domain.SortByEmail: func(a, b *candidateRow) int {
		return compareFold(a.email, b.email)
	},
	domain.SortByPhone: func(a, b *candidateRow) int {
		return strings.Compare(a.phone, b.phone)
	},
}

type candidateRepo struct {
	store *Store
}

func NewCandidateRepository(store *Store) domain.CandidateRepository {
	return &candidateRepo{store: store}
}

func (r *candidateRepo) Query(ctx context.Context, f domain.CandidateFilter) ([]domain.Candidate, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	term := strings.ToLower(f.Name)
	var matched []*candidateRow
	for _, id := range sortedKeys(r.store.candidates) {
		row := r.store.candidates[id]
		if term != "" && !strings.Contains(strings.ToLower(row.fullName), term) {
			continue
		}
		if !r.matchesSkills(row.id, f.SkillIDs, f.Match) {
			continue
		}
		matched = append(matched, row)
	}

	compare, ok := comparators[f.SortBy]
	if !ok {
		compare = comparators[domain.SortByName]
	}
	slices.SortStableFunc(matched, func(a, b *candidateRow) int {
		if f.SortDir == domain.SortDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})

	rows := page(matched, f.Limit(), f.Offset())
	candidates := make([]domain.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, r.store.project(row))
	}
	return candidates, int64(len(matched)), nil
}

// matchesSkills applies the skill-set predicate. Callers hold a lock.
func (r *candidateRepo) matchesSkills(candidateID int64, skillIDs []int64, mode domain.MatchMode) bool {
	if len(skillIDs) == 0 {
		return true
	}
	held := r.store.skillsByCandidate[candidateID]
	hits := 0
	for _, id := range skillIDs {
		if _, ok := held[id]; ok {
			hits++
		}
	}
	if mode == domain.MatchAll {
		return hits == len(skillIDs)
	}
	return hits > 0
}

func (r *candidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.candidates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := r.store.project(row)
	return &c, nil
}

func (r *candidateRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.candidates[id]
	return ok, nil
}

// Create checks every constraint before writing so a failure leaves no rows behind.
func (r *candidateRepo) Create(ctx context.Context, candidate *domain.Candidate, skillIDs []int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.emailTaken(candidate.Email, 0) {
		return fmt.Errorf("%w: candidate email %q", domain.ErrDuplicate, candidate.Email)
	}
	if err := r.checkSkills(skillIDs); err != nil {
		return err
	}

	r.store.nextCandidateID++
	candidate.ID = r.store.nextCandidateID
	r.store.candidates[candidate.ID] = &candidateRow{
		id:          candidate.ID,
		fullName:    candidate.FullName,
		dateOfBirth: candidate.DateOfBirth,
		email:       candidate.Email,
		phone:       candidate.Phone,
	}
	for _, skillID := range skillIDs {
		r.store.link(candidate.ID, skillID)
	}
	return nil
}

func (r *candidateRepo) Update(ctx context.Context, candidate *domain.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.candidates[candidate.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.emailTaken(candidate.Email, candidate.ID) {
		return fmt.Errorf("%w: candidate email %q", domain.ErrDuplicate, candidate.Email)
	}
	row.fullName = candidate.FullName
	row.dateOfBirth = candidate.DateOfBirth
	row.email = candidate.Email
	row.phone = candidate.Phone
	return nil
}

// Delete removes the candidate and its relation rows.
func (r *candidateRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.candidates[id]; !ok {
		return domain.ErrNotFound
	}
	for skillID := range r.store.skillsByCandidate[id] {
		delete(r.store.candidatesBySkill[skillID], id)
	}
	delete(r.store.skillsByCandidate, id)
	delete(r.store.candidates, id)
	return nil
}

func (r *candidateRepo) AddSkills(ctx context.Context, candidateID int64, skillIDs []int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.candidates[candidateID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkSkills(skillIDs); err != nil {
		return err
	}
	for _, skillID := range skillIDs {
		r.store.link(candidateID, skillID)
	}
	return nil
}

func (r *candidateRepo) RemoveSkill(ctx context.Context, candidateID, skillID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.unlink(candidateID, skillID) {
		return domain.ErrNotFound
	}
	return nil
}

// emailTaken compares case-insensitively. Callers hold the write lock.
func (r *candidateRepo) emailTaken(email string, exceptID int64) bool {
	for _, row := range r.store.candidates {
		if row.id != exceptID && strings.EqualFold(row.email, email) {
			return true
		}
	}
	return false
}

// checkSkills is the FK check on candidate_skills.skill_id.
func (r *candidateRepo) checkSkills(skillIDs []int64) error {
	for _, id := range skillIDs {
		if _, ok := r.store.skills[id]; !ok {
			return fmt.Errorf("%w: skill %d", domain.ErrMissingReference, id)
		}
	}
	return nil
}
